package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cargoflow/backend/internal/domain/pricing"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRegionRepository implements pricing.RegionRepository using GORM
type GormRegionRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormRegionRepository creates a new GormRegionRepository
func NewGormRegionRepository(db *gorm.DB) *GormRegionRepository {
	return &GormRegionRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormRegionRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// FindByID finds a region by its ID
func (r *GormRegionRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.Region, error) {
	var model models.RegionModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a region by its code
func (r *GormRegionRepository) FindByCode(ctx context.Context, code string) (*pricing.Region, error) {
	var model models.RegionModel
	if err := dbFromContext(ctx, r.db).
		Where("code = ?", strings.ToLower(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all regions matching the filter
func (r *GormRegionRepository) FindAll(ctx context.Context, filter pricing.RegionFilter) ([]pricing.Region, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&models.RegionModel{})
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var regionModels []models.RegionModel
	if err := applyPagination(query, filter.Filter, RegionSortFields).
		Find(&regionModels).Error; err != nil {
		return nil, 0, err
	}

	regions := make([]pricing.Region, len(regionModels))
	for i, model := range regionModels {
		regions[i] = *model.ToDomain()
	}
	return regions, total, nil
}

// Save stores a region
func (r *GormRegionRepository) Save(ctx context.Context, region *pricing.Region) error {
	db := dbFromContext(ctx, r.db)
	if err := db.Save(models.RegionModelFromDomain(region)).Error; err != nil {
		return err
	}
	return flushDomainEvents(ctx, db, r.outboxSaver, region)
}

// Delete removes a region
func (r *GormRegionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&models.RegionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyPagination applies ordering and paging from a shared.Filter,
// validating the sort column against the given whitelist.
func applyPagination(query *gorm.DB, filter shared.Filter, sortFields map[string]bool) *gorm.DB {
	orderBy := ValidateSortField(filter.OrderBy, sortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	return query
}
