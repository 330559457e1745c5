package persistence

import (
	"context"
	"errors"

	"github.com/cargoflow/backend/internal/domain/partner"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormShipmentRepository implements partner.ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByID finds a shipment by its ID
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Shipment, error) {
	var model models.ShipmentModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a shipment by its document number
func (r *GormShipmentRepository) FindByNumber(ctx context.Context, number string) (*partner.Shipment, error) {
	var model models.ShipmentModel
	if err := dbFromContext(ctx, r.db).
		Where("shipment_number = ?", number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all shipments matching the filter
func (r *GormShipmentRepository) FindAll(ctx context.Context, filter partner.ShipmentFilter) ([]partner.Shipment, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&models.ShipmentModel{})
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.AgentID != nil {
		query = query.Where("agent_id = ?", *filter.AgentID)
	}
	if filter.RegionID != nil {
		query = query.Where("region_id = ?", *filter.RegionID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Search != "" {
		query = query.Where("shipment_number ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var shipmentModels []models.ShipmentModel
	if err := applyPagination(query, filter.Filter, ShipmentSortFields).
		Find(&shipmentModels).Error; err != nil {
		return nil, 0, err
	}

	shipments := make([]partner.Shipment, len(shipmentModels))
	for i, model := range shipmentModels {
		shipments[i] = *model.ToDomain()
	}
	return shipments, total, nil
}

// Save stores a shipment
func (r *GormShipmentRepository) Save(ctx context.Context, shipment *partner.Shipment) error {
	return dbFromContext(ctx, r.db).Save(models.ShipmentModelFromDomain(shipment)).Error
}

// GenerateShipmentNumber produces the next SHP-YYYY-NNNNN number
func (r *GormShipmentRepository) GenerateShipmentNumber(ctx context.Context) (string, error) {
	return nextDocumentNumber(ctx, r.db, &models.ShipmentModel{}, "shipment_number", "SHP")
}
