package gamification

import (
	"time"

	"github.com/cargoflow/backend/internal/domain/gamification"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BadgeResponse represents a badge award in API responses
type BadgeResponse struct {
	ID          uuid.UUID       `json:"id"`
	EmployeeID  uuid.UUID       `json:"employee_id"`
	Metric      string          `json:"metric"`
	Period      string          `json:"period"`
	PeriodStart time.Time       `json:"period_start"`
	Tier        string          `json:"tier"`
	Value       decimal.Decimal `json:"value"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToBadgeResponse maps a domain badge to its response shape
func ToBadgeResponse(b *gamification.EmployeeBadge) BadgeResponse {
	return BadgeResponse{
		ID:          b.ID,
		EmployeeID:  b.EmployeeID,
		Metric:      string(b.Metric),
		Period:      string(b.Period),
		PeriodStart: b.PeriodStart,
		Tier:        string(b.Tier),
		Value:       b.Value,
		CreatedAt:   b.CreatedAt,
	}
}

// LeaderboardEntry is one row of a ranking response
type LeaderboardEntry struct {
	Rank       int             `json:"rank"`
	EmployeeID uuid.UUID       `json:"employee_id"`
	Value      decimal.Decimal `json:"value"`
	Tier       string          `json:"tier,omitempty"`
}

// NotificationResponse represents an in-app notification
type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToNotificationResponse maps a domain notification to its response shape
func ToNotificationResponse(n *gamification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Title:     n.Title,
		Body:      n.Body,
		Read:      n.Read,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
