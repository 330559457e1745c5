package settlement

import (
	"time"

	"github.com/cargoflow/backend/internal/domain/settlement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSettlementRequest batches an agent's paid, unsettled invoices
// for a period into one settlement
type CreateSettlementRequest struct {
	AgentID     uuid.UUID  `json:"agent_id" binding:"required"`
	Type        string     `json:"type" binding:"required,oneof=PAYMENT_TO_AGENT COLLECTION_FROM_AGENT"`
	PeriodStart time.Time  `json:"period_start" binding:"required"`
	PeriodEnd   time.Time  `json:"period_end" binding:"required"`
	CreatedBy   *uuid.UUID `json:"-"`
}

// PaySettlementRequest settles an approved batch through a bank account
type PaySettlementRequest struct {
	BankAccountID uuid.UUID `json:"bank_account_id" binding:"required"`
	PaymentRef    string    `json:"payment_ref" binding:"required,max=100"`
}

// SettlementItemResponse represents one allocated invoice in API responses
type SettlementItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Amount        decimal.Decimal `json:"amount"`
}

// SettlementResponse represents a settlement in API responses
type SettlementResponse struct {
	ID               uuid.UUID                `json:"id"`
	SettlementNumber string                   `json:"settlement_number"`
	AgentID          uuid.UUID                `json:"agent_id"`
	Type             string                   `json:"type"`
	PeriodStart      time.Time                `json:"period_start"`
	PeriodEnd        time.Time                `json:"period_end"`
	TotalAmount      decimal.Decimal          `json:"total_amount"`
	Currency         string                   `json:"currency"`
	TotalAmountTZS   decimal.Decimal          `json:"total_amount_tzs"`
	Status           string                   `json:"status"`
	ApprovedBy       *uuid.UUID               `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time               `json:"approved_at,omitempty"`
	PaidAt           *time.Time               `json:"paid_at,omitempty"`
	PaymentRef       string                   `json:"payment_ref,omitempty"`
	CancelReason     string                   `json:"cancel_reason,omitempty"`
	Items            []SettlementItemResponse `json:"items,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// ToSettlementResponse maps a domain settlement to its response shape
func ToSettlementResponse(s *settlement.Settlement) SettlementResponse {
	items := make([]SettlementItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = SettlementItemResponse{
			ID:            item.ID,
			InvoiceID:     item.InvoiceID,
			InvoiceNumber: item.InvoiceNumber,
			Amount:        item.Amount,
		}
	}

	return SettlementResponse{
		ID:               s.ID,
		SettlementNumber: s.SettlementNumber,
		AgentID:          s.AgentID,
		Type:             string(s.Type),
		PeriodStart:      s.PeriodStart,
		PeriodEnd:        s.PeriodEnd,
		TotalAmount:      s.TotalAmount,
		Currency:         s.Currency.String(),
		TotalAmountTZS:   s.TotalAmountTZS,
		Status:           s.Status.String(),
		ApprovedBy:       s.ApprovedBy,
		ApprovedAt:       s.ApprovedAt,
		PaidAt:           s.PaidAt,
		PaymentRef:       s.PaymentRef,
		CancelReason:     s.CancelReason,
		Items:            items,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
