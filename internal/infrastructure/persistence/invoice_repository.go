package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/cargoflow/backend/internal/domain/billing"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormInvoiceRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// FindByID finds an invoice with its items by ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
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

// FindByNumber finds an invoice by its document number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("invoice_number = ?", invoiceNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEstimateID returns the invoice converted from the given estimate
func (r *GormInvoiceRepository) FindByEstimateID(ctx context.Context, estimateID uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("estimate_id = ?", estimateID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&models.InvoiceModel{})
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.AgentID != nil {
		query = query.Where("agent_id = ?", *filter.AgentID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Direction != nil {
		query = query.Where("direction = ?", string(*filter.Direction))
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
	if filter.Overdue != nil && *filter.Overdue {
		query = query.Where("status = ?", string(billing.InvoiceStatusOverdue))
	}
	if filter.Search != "" {
		query = query.Where("invoice_number ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoiceModels []models.InvoiceModel
	if err := applyPagination(query, filter.Filter, InvoiceSortFields).
		Preload("Items").
		Find(&invoiceModels).Error; err != nil {
		return nil, 0, err
	}

	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, total, nil
}

// FindDueBefore returns outstanding invoices whose due date has passed
func (r *GormInvoiceRepository) FindDueBefore(ctx context.Context, cutoff time.Time, limit int) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := dbFromContext(ctx, r.db).
		Where("due_date < ? AND status IN ?", cutoff,
			[]string{string(billing.InvoiceStatusPending), string(billing.InvoiceStatusUnpaid)}).
		Order("due_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// FindPaidUnsettledByAgent returns an agent's fully paid invoices of the
// given direction not yet allocated to any settlement. Inside a
// settlement-creation transaction the rows are locked so a concurrent
// batch over the same agent blocks until this one commits.
func (r *GormInvoiceRepository) FindPaidUnsettledByAgent(ctx context.Context, agentID uuid.UUID, direction billing.InvoiceDirection, periodStart, periodEnd time.Time) ([]billing.Invoice, error) {
	query := dbFromContext(ctx, r.db).
		Where("agent_id = ? AND status = ?", agentID, string(billing.InvoiceStatusPaid)).
		Where("direction = ?", string(direction)).
		Where("created_at >= ? AND created_at < ?", periodStart, periodEnd).
		Where("id NOT IN (?)", dbFromContext(ctx, r.db).
			Model(&models.SettlementItemModel{}).
			Select("invoice_id")).
		Order("created_at ASC")
	if txFromContext(ctx) != nil {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var invoiceModels []models.InvoiceModel
	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// Save stores an invoice together with its items
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	db := dbFromContext(ctx, r.db)
	if err := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error; err != nil {
		return err
	}
	// Items removed from the aggregate are deleted explicitly; gorm's
	// association save only upserts.
	if len(invoice.Items) == 0 {
		if err := db.Delete(&models.InvoiceItemModel{}, "invoice_id = ?", invoice.ID).Error; err != nil {
			return err
		}
		return flushDomainEvents(ctx, db, r.outboxSaver, invoice)
	}
	itemIDs := make([]uuid.UUID, len(invoice.Items))
	for i, item := range invoice.Items {
		itemIDs[i] = item.ID
	}
	if err := db.Delete(&models.InvoiceItemModel{}, "invoice_id = ? AND id NOT IN ?", invoice.ID, itemIDs).Error; err != nil {
		return err
	}
	return flushDomainEvents(ctx, db, r.outboxSaver, invoice)
}

// GenerateInvoiceNumber yields the next INV-YYYY-NNNNN document number
func (r *GormInvoiceRepository) GenerateInvoiceNumber(ctx context.Context) (string, error) {
	return nextDocumentNumber(ctx, r.db, &models.InvoiceModel{}, "invoice_number", "INV")
}
