package persistence

import (
	"context"
	"errors"

	"github.com/cargoflow/backend/internal/domain/customs"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVehicleDutyRateRepository implements customs.VehicleDutyRateRepository
// using GORM
type GormVehicleDutyRateRepository struct {
	db *gorm.DB
}

// NewGormVehicleDutyRateRepository creates a new GormVehicleDutyRateRepository
func NewGormVehicleDutyRateRepository(db *gorm.DB) *GormVehicleDutyRateRepository {
	return &GormVehicleDutyRateRepository{db: db}
}

// FindByID finds a duty rate row by its ID
func (r *GormVehicleDutyRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*customs.VehicleDutyRate, error) {
	var model models.VehicleDutyRateModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllActive returns every active rate row
func (r *GormVehicleDutyRateRepository) FindAllActive(ctx context.Context) ([]customs.VehicleDutyRate, error) {
	var rateModels []models.VehicleDutyRateModel
	if err := dbFromContext(ctx, r.db).
		Where("active = ?", true).
		Order("category ASC, min_engine_cc ASC").
		Find(&rateModels).Error; err != nil {
		return nil, err
	}
	return toDutyRates(rateModels), nil
}

// FindByCategory returns the rows of one category, active or not
func (r *GormVehicleDutyRateRepository) FindByCategory(ctx context.Context, category customs.RateCategory) ([]customs.VehicleDutyRate, error) {
	var rateModels []models.VehicleDutyRateModel
	if err := dbFromContext(ctx, r.db).
		Where("category = ?", string(category)).
		Order("min_engine_cc ASC, created_at ASC").
		Find(&rateModels).Error; err != nil {
		return nil, err
	}
	return toDutyRates(rateModels), nil
}

// FindAll finds all duty rate rows matching the filter
func (r *GormVehicleDutyRateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]customs.VehicleDutyRate, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&models.VehicleDutyRateModel{})
	if filter.Search != "" {
		query = query.Where("category ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rateModels []models.VehicleDutyRateModel
	if err := applyPagination(query, filter, DutyRateSortFields).
		Find(&rateModels).Error; err != nil {
		return nil, 0, err
	}
	return toDutyRates(rateModels), total, nil
}

// Save stores a duty rate row
func (r *GormVehicleDutyRateRepository) Save(ctx context.Context, rate *customs.VehicleDutyRate) error {
	return dbFromContext(ctx, r.db).Save(models.VehicleDutyRateModelFromDomain(rate)).Error
}

// Delete removes a duty rate row
func (r *GormVehicleDutyRateRepository) Delete(ctx context.Context, rate *customs.VehicleDutyRate) error {
	return dbFromContext(ctx, r.db).Delete(&models.VehicleDutyRateModel{}, "id = ?", rate.ID).Error
}

func toDutyRates(rateModels []models.VehicleDutyRateModel) []customs.VehicleDutyRate {
	rates := make([]customs.VehicleDutyRate, len(rateModels))
	for i, model := range rateModels {
		rates[i] = *model.ToDomain()
	}
	return rates
}
