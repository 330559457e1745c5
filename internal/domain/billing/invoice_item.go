package billing

import (
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceItemType categorizes a line item on an invoice
type InvoiceItemType string

const (
	ItemTypeFreight   InvoiceItemType = "FREIGHT"
	ItemTypeCustoms   InvoiceItemType = "CUSTOMS"
	ItemTypeHandling  InvoiceItemType = "HANDLING"
	ItemTypeInsurance InvoiceItemType = "INSURANCE"
	ItemTypeDuty      InvoiceItemType = "DUTY"
	ItemTypeTransit   InvoiceItemType = "TRANSIT"
	ItemTypeOther     InvoiceItemType = "OTHER"
)

// IsValid checks if the item type is valid
func (t InvoiceItemType) IsValid() bool {
	switch t {
	case ItemTypeFreight, ItemTypeCustoms, ItemTypeHandling, ItemTypeInsurance,
		ItemTypeDuty, ItemTypeTransit, ItemTypeOther:
		return true
	}
	return false
}

// InvoiceItem is a line item owned exclusively by one invoice.
// Amount is derived from quantity and unit price at creation.
type InvoiceItem struct {
	shared.BaseEntity
	InvoiceID   uuid.UUID            `json:"invoice_id"`
	Type        InvoiceItemType      `json:"type"`
	Description string               `json:"description"`
	Quantity    decimal.Decimal      `json:"quantity"`
	UnitPrice   decimal.Decimal      `json:"unit_price"`
	Amount      decimal.Decimal      `json:"amount"`
	Currency    valueobject.Currency `json:"currency"`
	WeightKg    *decimal.Decimal     `json:"weight_kg,omitempty"`
}

// NewInvoiceItem creates a new line item; amount = quantity * unitPrice
func NewInvoiceItem(
	itemType InvoiceItemType,
	description string,
	quantity, unitPrice decimal.Decimal,
	currency valueobject.Currency,
	weightKg *decimal.Decimal,
) (*InvoiceItem, error) {
	if !itemType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ITEM_TYPE", "Invoice item type is not valid")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Unit price cannot be negative")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Item currency is not valid")
	}
	if weightKg != nil && weightKg.IsNegative() {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Item weight cannot be negative")
	}

	return &InvoiceItem{
		BaseEntity:  shared.NewBaseEntity(),
		Type:        itemType,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      quantity.Mul(unitPrice),
		Currency:    currency,
		WeightKg:    weightKg,
	}, nil
}
