package models

import (
	"time"

	"github.com/cargoflow/backend/internal/domain/gamification"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeBadgeModel is the persistence model for badge awards. The
// unique index over the (employee, metric, period, period_start) cell
// is what makes concurrent ranking runs collide instead of
// double-awarding.
type EmployeeBadgeModel struct {
	BaseModel
	EmployeeID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_badge_cell,priority:1"`
	Metric      string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_badge_cell,priority:2"`
	Period      string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_badge_cell,priority:3"`
	PeriodStart time.Time       `gorm:"not null;uniqueIndex:idx_badge_cell,priority:4"`
	Tier        string          `gorm:"type:varchar(10);not null"`
	Value       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (EmployeeBadgeModel) TableName() string {
	return "employee_badges"
}

// ToDomain converts the persistence model to a domain EmployeeBadge
func (m *EmployeeBadgeModel) ToDomain() *gamification.EmployeeBadge {
	return &gamification.EmployeeBadge{
		BaseEntity:  m.BaseModel.ToDomain(),
		EmployeeID:  m.EmployeeID,
		Metric:      gamification.Metric(m.Metric),
		Period:      gamification.Period(m.Period),
		PeriodStart: m.PeriodStart,
		Tier:        gamification.Tier(m.Tier),
		Value:       m.Value,
	}
}

// EmployeeBadgeModelFromDomain converts a domain EmployeeBadge to its persistence model
func EmployeeBadgeModelFromDomain(badge *gamification.EmployeeBadge) *EmployeeBadgeModel {
	model := &EmployeeBadgeModel{
		EmployeeID:  badge.EmployeeID,
		Metric:      string(badge.Metric),
		Period:      string(badge.Period),
		PeriodStart: badge.PeriodStart,
		Tier:        string(badge.Tier),
		Value:       badge.Value,
	}
	model.FromDomainBaseEntity(badge.BaseEntity)
	return model
}

// EmployeeMilestoneModel is the persistence model for milestone records.
type EmployeeMilestoneModel struct {
	BaseModel
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_milestone,priority:1"`
	Type       string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_milestone,priority:2"`
	Threshold  int64     `gorm:"not null;uniqueIndex:idx_milestone,priority:3"`
}

// TableName returns the table name for GORM
func (EmployeeMilestoneModel) TableName() string {
	return "employee_milestones"
}

// ToDomain converts the persistence model to a domain EmployeeMilestone
func (m *EmployeeMilestoneModel) ToDomain() *gamification.EmployeeMilestone {
	return &gamification.EmployeeMilestone{
		BaseEntity: m.BaseModel.ToDomain(),
		EmployeeID: m.EmployeeID,
		Type:       gamification.MilestoneType(m.Type),
		Threshold:  m.Threshold,
	}
}

// EmployeeMilestoneModelFromDomain converts a domain EmployeeMilestone to its persistence model
func EmployeeMilestoneModelFromDomain(milestone *gamification.EmployeeMilestone) *EmployeeMilestoneModel {
	model := &EmployeeMilestoneModel{
		EmployeeID: milestone.EmployeeID,
		Type:       string(milestone.Type),
		Threshold:  milestone.Threshold,
	}
	model.FromDomainBaseEntity(milestone.BaseEntity)
	return model
}

// NotificationModel is the persistence model for user notifications.
type NotificationModel struct {
	BaseModel
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind        string    `gorm:"type:varchar(30);not null"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Body        string    `gorm:"type:text"`
	Read        bool      `gorm:"not null;default:false;index"`
	ReadAt      *time.Time
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification
func (m *NotificationModel) ToDomain() *gamification.Notification {
	return &gamification.Notification{
		BaseEntity:  m.BaseModel.ToDomain(),
		RecipientID: m.RecipientID,
		Kind:        gamification.NotificationKind(m.Kind),
		Title:       m.Title,
		Body:        m.Body,
		Read:        m.Read,
		ReadAt:      m.ReadAt,
	}
}

// NotificationModelFromDomain converts a domain Notification to its persistence model
func NotificationModelFromDomain(n *gamification.Notification) *NotificationModel {
	model := &NotificationModel{
		RecipientID: n.RecipientID,
		Kind:        string(n.Kind),
		Title:       n.Title,
		Body:        n.Body,
		Read:        n.Read,
		ReadAt:      n.ReadAt,
	}
	model.FromDomainBaseEntity(n.BaseEntity)
	return model
}
