package gamification

import (
	"context"
	"time"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeScore is one row of a ranking query: an employee and their
// aggregate value for a (metric, period) cell
type EmployeeScore struct {
	EmployeeID uuid.UUID
	Value      decimal.Decimal
}

// BadgeRepository persists badge awards
type BadgeRepository interface {
	// Exists reports whether an award is already recorded for the cell
	Exists(ctx context.Context, employeeID uuid.UUID, metric Metric, period Period, periodStart time.Time) (bool, error)
	FindByEmployee(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) ([]EmployeeBadge, int64, error)
	// Save inserts the badge; the unique index on
	// (employee, metric, period, period_start) makes concurrent runs
	// collide instead of double-awarding
	Save(ctx context.Context, badge *EmployeeBadge) error
}

// MilestoneRepository persists milestone records
type MilestoneRepository interface {
	Exists(ctx context.Context, employeeID uuid.UUID, milestoneType MilestoneType, threshold int64) (bool, error)
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]EmployeeMilestone, error)
	Save(ctx context.Context, milestone *EmployeeMilestone) error
}

// NotificationRepository persists user notifications
type NotificationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	FindByRecipient(ctx context.Context, recipientID uuid.UUID, filter shared.Filter) ([]Notification, int64, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
	Save(ctx context.Context, notification *Notification) error
}

// ScoreReader runs the per-metric aggregation queries the ranking
// engine sorts. Implementations read billing and partner tables; the
// engine itself never touches those contexts directly.
type ScoreReader interface {
	// ScoresSince returns per-employee aggregates for one metric from
	// the given instant, ordered by value descending
	ScoresSince(ctx context.Context, metric Metric, since time.Time) ([]EmployeeScore, error)
}
