package persistence

import (
	"context"
	"errors"

	"github.com/cargoflow/backend/internal/domain/settlement"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSettlementRepository implements settlement.SettlementRepository
// using GORM
type GormSettlementRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormSettlementRepository creates a new GormSettlementRepository
func NewGormSettlementRepository(db *gorm.DB) *GormSettlementRepository {
	return &GormSettlementRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormSettlementRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// FindByID finds a settlement with its items by ID
func (r *GormSettlementRepository) FindByID(ctx context.Context, id uuid.UUID) (*settlement.Settlement, error) {
	var model models.SettlementModel
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a settlement by its document number
func (r *GormSettlementRepository) FindByNumber(ctx context.Context, number string) (*settlement.Settlement, error) {
	var model models.SettlementModel
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("settlement_number = ?", number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all settlements matching the filter
func (r *GormSettlementRepository) FindAll(ctx context.Context, filter settlement.SettlementFilter) ([]settlement.Settlement, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&models.SettlementModel{})
	if filter.AgentID != nil {
		query = query.Where("agent_id = ?", *filter.AgentID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.FromDate != nil {
		query = query.Where("period_end >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("period_start < ?", *filter.ToDate)
	}
	if filter.Search != "" {
		query = query.Where("settlement_number ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var settlementModels []models.SettlementModel
	if err := applyPagination(query, filter.Filter, SettlementSortFields).
		Preload("Items").
		Find(&settlementModels).Error; err != nil {
		return nil, 0, err
	}

	settlements := make([]settlement.Settlement, len(settlementModels))
	for i, model := range settlementModels {
		settlements[i] = *model.ToDomain()
	}
	return settlements, total, nil
}

// FindByAgent returns an agent's settlements
func (r *GormSettlementRepository) FindByAgent(ctx context.Context, agentID uuid.UUID, filter shared.Filter) ([]settlement.Settlement, int64, error) {
	settlementFilter := settlement.SettlementFilter{Filter: filter, AgentID: &agentID}
	return r.FindAll(ctx, settlementFilter)
}

// Save stores the settlement and all its items. The unique index on
// settlement_items.invoice_id turns a double allocation into a
// constraint violation here instead of silent double counting.
// Cancelling deletes the item rows, so the invoices become visible to
// FindPaidUnsettledByAgent again and the unique index accepts their
// next allocation.
func (r *GormSettlementRepository) Save(ctx context.Context, batch *settlement.Settlement) error {
	model := models.SettlementModelFromDomain(batch)
	db := dbFromContext(ctx, r.db)
	if batch.Status == settlement.StatusCancelled {
		if err := db.Where("settlement_id = ?", batch.ID).
			Delete(&models.SettlementItemModel{}).Error; err != nil {
			return err
		}
		model.Items = nil
	}
	if err := db.Session(&gorm.Session{FullSaveAssociations: true}).
		Save(model).Error; err != nil {
		return err
	}
	return flushDomainEvents(ctx, db, r.outboxSaver, batch)
}

// GenerateSettlementNumber produces the next STL-YYYY-NNNNN number
func (r *GormSettlementRepository) GenerateSettlementNumber(ctx context.Context) (string, error) {
	return nextDocumentNumber(ctx, r.db, &models.SettlementModel{}, "settlement_number", "STL")
}
