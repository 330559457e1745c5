package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cargoflow/backend/internal/domain/billing"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEstimateRepository implements billing.EstimateRepository using GORM
type GormEstimateRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormEstimateRepository creates a new GormEstimateRepository
func NewGormEstimateRepository(db *gorm.DB) *GormEstimateRepository {
	return &GormEstimateRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormEstimateRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// FindByID finds an estimate by its ID
func (r *GormEstimateRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Estimate, error) {
	var model models.EstimateModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an estimate by its document number
func (r *GormEstimateRepository) FindByNumber(ctx context.Context, estimateNumber string) (*billing.Estimate, error) {
	var model models.EstimateModel
	if err := dbFromContext(ctx, r.db).
		Where("estimate_number = ?", estimateNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all estimates matching the filter
func (r *GormEstimateRepository) FindAll(ctx context.Context, filter billing.EstimateFilter) ([]billing.Estimate, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&models.EstimateModel{})
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.RegionID != nil {
		query = query.Where("region_id = ?", *filter.RegionID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at < ?", *filter.ToDate)
	}
	if filter.Search != "" {
		query = query.Where("estimate_number ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var estimateModels []models.EstimateModel
	if err := applyPagination(query, filter.Filter, EstimateSortFields).
		Find(&estimateModels).Error; err != nil {
		return nil, 0, err
	}

	estimates := make([]billing.Estimate, len(estimateModels))
	for i, model := range estimateModels {
		estimates[i] = *model.ToDomain()
	}
	return estimates, total, nil
}

// Save stores an estimate
func (r *GormEstimateRepository) Save(ctx context.Context, estimate *billing.Estimate) error {
	db := dbFromContext(ctx, r.db)
	if err := db.Save(models.EstimateModelFromDomain(estimate)).Error; err != nil {
		return err
	}
	return flushDomainEvents(ctx, db, r.outboxSaver, estimate)
}

// Delete removes an estimate
func (r *GormEstimateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&models.EstimateModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GenerateEstimateNumber yields the next EST-YYYY-NNNNN document number
func (r *GormEstimateRepository) GenerateEstimateNumber(ctx context.Context) (string, error) {
	return nextDocumentNumber(ctx, r.db, &models.EstimateModel{}, "estimate_number", "EST")
}

// nextDocumentNumber produces the next PREFIX-YYYY-NNNNN number for a
// table by scanning the highest existing number of the current year and
// probing forward on collision. The caller's unique index is the real
// guarantee; the probe just keeps retries rare.
func nextDocumentNumber(ctx context.Context, db *gorm.DB, model interface{}, column, docPrefix string) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("%s-%d-", docPrefix, year)

	var lastNumber string
	err := dbFromContext(ctx, db).
		Model(model).
		Select(column).
		Where(column+" LIKE ?", prefix+"%").
		Order(column + " DESC").
		Limit(1).
		Scan(&lastNumber).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if lastNumber != "" {
		parts := strings.Split(lastNumber, "-")
		var num int64
		if _, parseErr := fmt.Sscanf(parts[len(parts)-1], "%d", &num); parseErr == nil {
			nextNum = num + 1
		}
	}

	for i := 0; i < 100; i++ {
		candidate := fmt.Sprintf("%s%05d", prefix, nextNum)
		var count int64
		if err := dbFromContext(ctx, db).
			Model(model).
			Where(column+" = ?", candidate).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		nextNum++
	}
	return "", fmt.Errorf("could not allocate a %s document number", docPrefix)
}
