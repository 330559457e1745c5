package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/cargoflow/backend/internal/domain/partner"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAgentRepository implements partner.AgentRepository using GORM
type GormAgentRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormAgentRepository creates a new GormAgentRepository
func NewGormAgentRepository(db *gorm.DB) *GormAgentRepository {
	return &GormAgentRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormAgentRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// FindByID finds an agent by its ID
func (r *GormAgentRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Agent, error) {
	var model models.AgentModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds an agent by its code
func (r *GormAgentRepository) FindByCode(ctx context.Context, code string) (*partner.Agent, error) {
	var model models.AgentModel
	if err := dbFromContext(ctx, r.db).
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRegion returns the agents operating in a region
func (r *GormAgentRepository) FindByRegion(ctx context.Context, regionID uuid.UUID) ([]partner.Agent, error) {
	var agentModels []models.AgentModel
	if err := dbFromContext(ctx, r.db).
		Where("region_id = ?", regionID).
		Order("code ASC").
		Find(&agentModels).Error; err != nil {
		return nil, err
	}

	agents := make([]partner.Agent, len(agentModels))
	for i, model := range agentModels {
		agents[i] = *model.ToDomain()
	}
	return agents, nil
}

// FindAll finds all agents matching the filter
func (r *GormAgentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Agent, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&models.AgentModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var agentModels []models.AgentModel
	if err := applyPagination(query, filter, AgentSortFields).
		Find(&agentModels).Error; err != nil {
		return nil, 0, err
	}

	agents := make([]partner.Agent, len(agentModels))
	for i, model := range agentModels {
		agents[i] = *model.ToDomain()
	}
	return agents, total, nil
}

// Save stores an agent
func (r *GormAgentRepository) Save(ctx context.Context, agent *partner.Agent) error {
	db := dbFromContext(ctx, r.db)
	if err := db.Save(models.AgentModelFromDomain(agent)).Error; err != nil {
		return err
	}
	return flushDomainEvents(ctx, db, r.outboxSaver, agent)
}

// Delete removes an agent
func (r *GormAgentRepository) Delete(ctx context.Context, agent *partner.Agent) error {
	return dbFromContext(ctx, r.db).Delete(&models.AgentModel{}, "id = ?", agent.ID).Error
}
