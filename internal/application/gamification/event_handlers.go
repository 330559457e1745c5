package gamification

import (
	"context"
	"fmt"

	"github.com/cargoflow/backend/internal/domain/billing"
	"github.com/cargoflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InvoicePaidHandler reacts to paid invoices by running the milestone sweep,
// so milestone badges are awarded shortly after the qualifying payment instead
// of waiting for the nightly ranking job.
type InvoicePaidHandler struct {
	rankingService *RankingService
	logger         *zap.Logger
}

// NewInvoicePaidHandler creates a new handler for invoice paid events
func NewInvoicePaidHandler(rankingService *RankingService, logger *zap.Logger) *InvoicePaidHandler {
	return &InvoicePaidHandler{
		rankingService: rankingService,
		logger:         logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *InvoicePaidHandler) EventTypes() []string {
	return []string{billing.EventTypeInvoicePaid}
}

// Handle processes an InvoicePaidEvent by sweeping milestone thresholds
func (h *InvoicePaidHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	paidEvent, ok := event.(*billing.InvoicePaidEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", billing.EventTypeInvoicePaid),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			billing.EventTypeInvoicePaid, event.EventType())
	}

	h.logger.Info("processing invoice paid event for milestone sweep",
		zap.String("invoice_id", paidEvent.AggregateID().String()),
		zap.String("invoice_number", paidEvent.InvoiceNumber),
		zap.String("amount", paidEvent.Amount),
	)

	awarded, err := h.rankingService.RunMilestones(ctx)
	if err != nil {
		h.logger.Error("milestone sweep failed",
			zap.String("invoice_id", paidEvent.AggregateID().String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to run milestone sweep: %w", err)
	}

	if awarded > 0 {
		h.logger.Info("milestones awarded after invoice payment",
			zap.String("invoice_number", paidEvent.InvoiceNumber),
			zap.Int("awarded", awarded),
		)
	}

	return nil
}

// Ensure InvoicePaidHandler implements shared.EventHandler
var _ shared.EventHandler = (*InvoicePaidHandler)(nil)
