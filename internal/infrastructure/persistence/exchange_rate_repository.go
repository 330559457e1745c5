package persistence

import (
	"context"
	"errors"

	"github.com/cargoflow/backend/internal/domain/pricing"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/cargoflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExchangeRateRepository implements pricing.ExchangeRateRepository
// using GORM. Rate rows are append-only; the latest effective_from per
// currency is the one conversions use.
type GormExchangeRateRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormExchangeRateRepository creates a new GormExchangeRateRepository
func NewGormExchangeRateRepository(db *gorm.DB) *GormExchangeRateRepository {
	return &GormExchangeRateRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormExchangeRateRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// FindLatest returns the newest rate row per currency
func (r *GormExchangeRateRepository) FindLatest(ctx context.Context) ([]pricing.ExchangeRate, error) {
	var rateModels []models.ExchangeRateModel
	sub := dbFromContext(ctx, r.db).
		Model(&models.ExchangeRateModel{}).
		Select("currency, MAX(effective_from) AS effective_from").
		Group("currency")
	if err := dbFromContext(ctx, r.db).
		Joins("JOIN (?) latest ON exchange_rates.currency = latest.currency AND exchange_rates.effective_from = latest.effective_from", sub).
		Find(&rateModels).Error; err != nil {
		return nil, err
	}

	rates := make([]pricing.ExchangeRate, len(rateModels))
	for i, model := range rateModels {
		rates[i] = *model.ToDomain()
	}
	return rates, nil
}

// FindLatestByCurrency returns the newest rate row for one currency
func (r *GormExchangeRateRepository) FindLatestByCurrency(ctx context.Context, currency valueobject.Currency) (*pricing.ExchangeRate, error) {
	var model models.ExchangeRateModel
	if err := dbFromContext(ctx, r.db).
		Where("currency = ?", string(currency)).
		Order("effective_from DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindHistory returns the rate rows of a currency, newest first
func (r *GormExchangeRateRepository) FindHistory(ctx context.Context, currency valueobject.Currency, filter shared.Filter) ([]pricing.ExchangeRate, int64, error) {
	query := dbFromContext(ctx, r.db).
		Model(&models.ExchangeRateModel{}).
		Where("currency = ?", string(currency))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rateModels []models.ExchangeRateModel
	if err := query.Order("effective_from DESC").
		Offset(pageOffset(filter)).Limit(pageLimit(filter)).
		Find(&rateModels).Error; err != nil {
		return nil, 0, err
	}

	rates := make([]pricing.ExchangeRate, len(rateModels))
	for i, model := range rateModels {
		rates[i] = *model.ToDomain()
	}
	return rates, total, nil
}

// Save stores an exchange rate row
func (r *GormExchangeRateRepository) Save(ctx context.Context, rate *pricing.ExchangeRate) error {
	db := dbFromContext(ctx, r.db)
	if err := db.Save(models.ExchangeRateModelFromDomain(rate)).Error; err != nil {
		return err
	}
	return flushDomainEvents(ctx, db, r.outboxSaver, rate)
}

func pageOffset(filter shared.Filter) int {
	if filter.PageSize <= 0 {
		return 0
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * filter.PageSize
}

func pageLimit(filter shared.Filter) int {
	if filter.PageSize <= 0 {
		return -1
	}
	return filter.PageSize
}
