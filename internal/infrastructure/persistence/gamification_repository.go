package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/cargoflow/backend/internal/domain/billing"
	"github.com/cargoflow/backend/internal/domain/gamification"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBadgeRepository implements gamification.BadgeRepository using GORM
type GormBadgeRepository struct {
	db *gorm.DB
}

// NewGormBadgeRepository creates a new GormBadgeRepository
func NewGormBadgeRepository(db *gorm.DB) *GormBadgeRepository {
	return &GormBadgeRepository{db: db}
}

// Exists reports whether an award is already recorded for the cell
func (r *GormBadgeRepository) Exists(ctx context.Context, employeeID uuid.UUID, metric gamification.Metric, period gamification.Period, periodStart time.Time) (bool, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).
		Model(&models.EmployeeBadgeModel{}).
		Where("employee_id = ? AND metric = ? AND period = ? AND period_start = ?",
			employeeID, string(metric), string(period), periodStart).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByEmployee returns an employee's badges, newest first
func (r *GormBadgeRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) ([]gamification.EmployeeBadge, int64, error) {
	query := dbFromContext(ctx, r.db).
		Model(&models.EmployeeBadgeModel{}).
		Where("employee_id = ?", employeeID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var badgeModels []models.EmployeeBadgeModel
	if err := applyPagination(query, filter, BadgeSortFields).
		Find(&badgeModels).Error; err != nil {
		return nil, 0, err
	}

	badges := make([]gamification.EmployeeBadge, len(badgeModels))
	for i, model := range badgeModels {
		badges[i] = *model.ToDomain()
	}
	return badges, total, nil
}

// Save inserts a badge award
func (r *GormBadgeRepository) Save(ctx context.Context, badge *gamification.EmployeeBadge) error {
	return dbFromContext(ctx, r.db).Create(models.EmployeeBadgeModelFromDomain(badge)).Error
}

// GormMilestoneRepository implements gamification.MilestoneRepository
// using GORM
type GormMilestoneRepository struct {
	db *gorm.DB
}

// NewGormMilestoneRepository creates a new GormMilestoneRepository
func NewGormMilestoneRepository(db *gorm.DB) *GormMilestoneRepository {
	return &GormMilestoneRepository{db: db}
}

// Exists reports whether a milestone is already recorded
func (r *GormMilestoneRepository) Exists(ctx context.Context, employeeID uuid.UUID, milestoneType gamification.MilestoneType, threshold int64) (bool, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).
		Model(&models.EmployeeMilestoneModel{}).
		Where("employee_id = ? AND type = ? AND threshold = ?",
			employeeID, string(milestoneType), threshold).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByEmployee returns an employee's milestones
func (r *GormMilestoneRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]gamification.EmployeeMilestone, error) {
	var milestoneModels []models.EmployeeMilestoneModel
	if err := dbFromContext(ctx, r.db).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&milestoneModels).Error; err != nil {
		return nil, err
	}

	milestones := make([]gamification.EmployeeMilestone, len(milestoneModels))
	for i, model := range milestoneModels {
		milestones[i] = *model.ToDomain()
	}
	return milestones, nil
}

// Save inserts a milestone record
func (r *GormMilestoneRepository) Save(ctx context.Context, milestone *gamification.EmployeeMilestone) error {
	return dbFromContext(ctx, r.db).Create(models.EmployeeMilestoneModelFromDomain(milestone)).Error
}

// GormNotificationRepository implements gamification.NotificationRepository
// using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindByID finds a notification by its ID
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*gamification.Notification, error) {
	var model models.NotificationModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRecipient returns a user's notifications, newest first
func (r *GormNotificationRepository) FindByRecipient(ctx context.Context, recipientID uuid.UUID, filter shared.Filter) ([]gamification.Notification, int64, error) {
	query := dbFromContext(ctx, r.db).
		Model(&models.NotificationModel{}).
		Where("recipient_id = ?", recipientID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notificationModels []models.NotificationModel
	if err := applyPagination(query, filter, NotificationSortFields).
		Find(&notificationModels).Error; err != nil {
		return nil, 0, err
	}

	notifications := make([]gamification.Notification, len(notificationModels))
	for i, model := range notificationModels {
		notifications[i] = *model.ToDomain()
	}
	return notifications, total, nil
}

// CountUnread returns the number of unread notifications for a user
func (r *GormNotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).
		Model(&models.NotificationModel{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

// Save stores a notification
func (r *GormNotificationRepository) Save(ctx context.Context, notification *gamification.Notification) error {
	return dbFromContext(ctx, r.db).Save(models.NotificationModelFromDomain(notification)).Error
}

// GormScoreReader implements gamification.ScoreReader by aggregating
// over the billing and partner tables. Employees are the created_by
// column of the counted rows; rows without a creator never score.
type GormScoreReader struct {
	db *gorm.DB
}

// NewGormScoreReader creates a new GormScoreReader
func NewGormScoreReader(db *gorm.DB) *GormScoreReader {
	return &GormScoreReader{db: db}
}

// ScoresSince returns per-employee aggregates for one metric from the
// given instant, highest value first
func (r *GormScoreReader) ScoresSince(ctx context.Context, metric gamification.Metric, since time.Time) ([]gamification.EmployeeScore, error) {
	db := dbFromContext(ctx, r.db)

	var query *gorm.DB
	switch metric {
	case gamification.MetricRevenue:
		query = db.Model(&models.InvoiceModel{}).
			Select("created_by AS employee_id, SUM(amount_tzs) AS value").
			Where("status = ?", string(billing.InvoiceStatusPaid))
	case gamification.MetricInvoices:
		query = db.Model(&models.InvoiceModel{}).
			Select("created_by AS employee_id, COUNT(*) AS value").
			Where("status <> ?", string(billing.InvoiceStatusCancelled))
	case gamification.MetricEstimates:
		query = db.Model(&models.EstimateModel{}).
			Select("created_by AS employee_id, COUNT(*) AS value")
	case gamification.MetricShipments:
		query = db.Model(&models.ShipmentModel{}).
			Select("created_by AS employee_id, COUNT(*) AS value").
			Where("status <> ?", "CANCELLED")
	default:
		return nil, shared.NewDomainError("INVALID_METRIC", "Unknown ranking metric: "+string(metric))
	}

	var scores []gamification.EmployeeScore
	if err := query.
		Where("created_by IS NOT NULL").
		Where("created_at >= ?", since).
		Group("created_by").
		Order("value DESC").
		Scan(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}
