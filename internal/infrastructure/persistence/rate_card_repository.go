package persistence

import (
	"context"
	"errors"

	"github.com/cargoflow/backend/internal/domain/pricing"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRateCardRepository implements pricing.RateCardRepository using GORM
type GormRateCardRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormRateCardRepository creates a new GormRateCardRepository
func NewGormRateCardRepository(db *gorm.DB) *GormRateCardRepository {
	return &GormRateCardRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormRateCardRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// FindByID finds a rate card by its ID
func (r *GormRateCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.RateCard, error) {
	var model models.RateCardModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByRegion returns the single active card for a region
func (r *GormRateCardRepository) FindActiveByRegion(ctx context.Context, regionID uuid.UUID) (*pricing.RateCard, error) {
	var model models.RateCardModel
	if err := dbFromContext(ctx, r.db).
		Where("region_id = ? AND active = ?", regionID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllByRegion returns every card of a region, newest first
func (r *GormRateCardRepository) FindAllByRegion(ctx context.Context, regionID uuid.UUID) ([]pricing.RateCard, error) {
	var cardModels []models.RateCardModel
	if err := dbFromContext(ctx, r.db).
		Where("region_id = ?", regionID).
		Order("created_at DESC").
		Find(&cardModels).Error; err != nil {
		return nil, err
	}

	cards := make([]pricing.RateCard, len(cardModels))
	for i, model := range cardModels {
		cards[i] = *model.ToDomain()
	}
	return cards, nil
}

// Save stores a rate card
func (r *GormRateCardRepository) Save(ctx context.Context, card *pricing.RateCard) error {
	db := dbFromContext(ctx, r.db)
	if err := db.Save(models.RateCardModelFromDomain(card)).Error; err != nil {
		return err
	}
	return flushDomainEvents(ctx, db, r.outboxSaver, card)
}

// DeactivateForRegion retires every active card of a region
func (r *GormRateCardRepository) DeactivateForRegion(ctx context.Context, regionID uuid.UUID) error {
	return dbFromContext(ctx, r.db).
		Model(&models.RateCardModel{}).
		Where("region_id = ? AND active = ?", regionID, true).
		Update("active", false).Error
}
