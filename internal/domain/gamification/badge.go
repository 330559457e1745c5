package gamification

import (
	"time"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Metric is the performance dimension a badge rewards
type Metric string

const (
	MetricRevenue   Metric = "REVENUE"   // sum of paid invoice amounts in TZS
	MetricInvoices  Metric = "INVOICES"  // invoices created
	MetricEstimates Metric = "ESTIMATES" // estimates created
	MetricShipments Metric = "SHIPMENTS" // shipments created
)

// AllMetrics lists every metric the ranking engine scores
func AllMetrics() []Metric {
	return []Metric{MetricRevenue, MetricInvoices, MetricEstimates, MetricShipments}
}

// IsValid checks if the metric is valid
func (m Metric) IsValid() bool {
	switch m {
	case MetricRevenue, MetricInvoices, MetricEstimates, MetricShipments:
		return true
	}
	return false
}

// Period is the rolling window a ranking run covers
type Period string

const (
	PeriodWeekly    Period = "WEEKLY"
	PeriodMonthly   Period = "MONTHLY"
	PeriodQuarterly Period = "QUARTERLY"
	PeriodYearly    Period = "YEARLY"
)

// AllPeriods lists every period the ranking engine scores
func AllPeriods() []Period {
	return []Period{PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly}
}

// IsValid checks if the period is valid
func (p Period) IsValid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	}
	return false
}

// Start returns the beginning of the period containing ref
func (p Period) Start(ref time.Time) time.Time {
	ref = ref.UTC()
	switch p {
	case PeriodWeekly:
		// weeks start on Monday
		offset := (int(ref.Weekday()) + 6) % 7
		day := ref.AddDate(0, 0, -offset)
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	case PeriodMonthly:
		return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	case PeriodQuarterly:
		quarterMonth := time.Month(((int(ref.Month())-1)/3)*3 + 1)
		return time.Date(ref.Year(), quarterMonth, 1, 0, 0, 0, 0, time.UTC)
	case PeriodYearly:
		return time.Date(ref.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
}

// Tier is the award level for ranks one through three
type Tier string

const (
	TierGold   Tier = "GOLD"
	TierSilver Tier = "SILVER"
	TierBronze Tier = "BRONZE"
)

// TierForRank maps a zero-based rank to its tier
func TierForRank(rank int) (Tier, bool) {
	switch rank {
	case 0:
		return TierGold, true
	case 1:
		return TierSilver, true
	case 2:
		return TierBronze, true
	}
	return "", false
}

// EmployeeBadge is an append-only award record. One badge exists per
// (employee, metric, period, period start); re-running the ranking
// for the same window never duplicates it.
type EmployeeBadge struct {
	shared.BaseEntity
	EmployeeID  uuid.UUID       `json:"employee_id"`
	Metric      Metric          `json:"metric"`
	Period      Period          `json:"period"`
	PeriodStart time.Time       `json:"period_start"`
	Tier        Tier            `json:"tier"`
	Value       decimal.Decimal `json:"value"`
}

// NewEmployeeBadge creates a badge award
func NewEmployeeBadge(employeeID uuid.UUID, metric Metric, period Period, periodStart time.Time, tier Tier, value decimal.Decimal) (*EmployeeBadge, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee ID cannot be empty")
	}
	if !metric.IsValid() {
		return nil, shared.NewDomainError("INVALID_METRIC", "Badge metric is not valid")
	}
	if !period.IsValid() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Badge period is not valid")
	}
	if tier != TierGold && tier != TierSilver && tier != TierBronze {
		return nil, shared.NewDomainError("INVALID_TIER", "Badge tier is not valid")
	}
	if !value.IsPositive() {
		return nil, shared.NewDomainError("INVALID_VALUE", "A zero score earns no badge")
	}

	return &EmployeeBadge{
		BaseEntity:  shared.NewBaseEntity(),
		EmployeeID:  employeeID,
		Metric:      metric,
		Period:      period,
		PeriodStart: periodStart,
		Tier:        tier,
		Value:       value,
	}, nil
}
