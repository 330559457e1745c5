package settlement

import (
	"context"
	"time"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SettlementFilter defines filtering options for settlement queries
type SettlementFilter struct {
	shared.Filter
	AgentID  *uuid.UUID
	Status   *Status
	Type     *Type
	FromDate *time.Time
	ToDate   *time.Time
}

// SettlementRepository persists Settlement aggregates together with
// their items
type SettlementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Settlement, error)
	FindByNumber(ctx context.Context, number string) (*Settlement, error)
	FindAll(ctx context.Context, filter SettlementFilter) ([]Settlement, int64, error)
	FindByAgent(ctx context.Context, agentID uuid.UUID, filter shared.Filter) ([]Settlement, int64, error)
	// Save stores the settlement and all its items in one transaction.
	// The invoice reference on each item is unique across open
	// settlements, so a concurrent batch over the same invoice fails.
	Save(ctx context.Context, settlement *Settlement) error
	// GenerateSettlementNumber produces the next STL-YYYY-NNNNN number
	GenerateSettlementNumber(ctx context.Context) (string, error)
}
