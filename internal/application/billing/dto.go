package billing

import (
	"time"

	"github.com/cargoflow/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Estimate DTOs
// =============================================================================

// CreateEstimateRequest represents a request to create an estimate.
// RatePerKg and HandlingFee are resolved from the region's rate card,
// never taken from the caller.
type CreateEstimateRequest struct {
	CustomerID  uuid.UUID       `json:"customer_id" binding:"required"`
	ShipmentID  *uuid.UUID      `json:"shipment_id"`
	RegionID    uuid.UUID       `json:"region_id" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=SHIPPING PURCHASE_SHIPPING"`
	WeightKg    decimal.Decimal `json:"weight_kg" binding:"required"`
	ProductCost decimal.Decimal `json:"product_cost"`
	PurchaseFee decimal.Decimal `json:"purchase_fee"`
	ValidDays   int             `json:"valid_days" binding:"omitempty,min=1,max=365"`
	Remark      string          `json:"remark"`
	CreatedBy   *uuid.UUID      `json:"-"` // set from the JWT context
}

// UpdateEstimateRequest updates the figures of a pending estimate
type UpdateEstimateRequest struct {
	WeightKg    *decimal.Decimal `json:"weight_kg"`
	ProductCost *decimal.Decimal `json:"product_cost"`
	PurchaseFee *decimal.Decimal `json:"purchase_fee"`
}

// EstimateResponse represents an estimate in API responses
type EstimateResponse struct {
	ID                   uuid.UUID       `json:"id"`
	EstimateNumber       string          `json:"estimate_number"`
	CustomerID           uuid.UUID       `json:"customer_id"`
	ShipmentID           *uuid.UUID      `json:"shipment_id,omitempty"`
	RegionID             uuid.UUID       `json:"region_id"`
	Type                 string          `json:"type"`
	WeightKg             decimal.Decimal `json:"weight_kg"`
	RatePerKg            decimal.Decimal `json:"rate_per_kg"`
	HandlingFee          decimal.Decimal `json:"handling_fee"`
	ProductCost          decimal.Decimal `json:"product_cost"`
	PurchaseFee          decimal.Decimal `json:"purchase_fee"`
	Subtotal             decimal.Decimal `json:"subtotal"`
	Total                decimal.Decimal `json:"total"`
	Currency             string          `json:"currency"`
	Status               string          `json:"status"`
	ValidUntil           *time.Time      `json:"valid_until,omitempty"`
	ConvertedToInvoiceID *uuid.UUID      `json:"converted_to_invoice_id,omitempty"`
	Remark               string          `json:"remark,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// ToEstimateResponse maps a domain estimate to its response shape
func ToEstimateResponse(e *billing.Estimate) EstimateResponse {
	return EstimateResponse{
		ID:                   e.ID,
		EstimateNumber:       e.EstimateNumber,
		CustomerID:           e.CustomerID,
		ShipmentID:           e.ShipmentID,
		RegionID:             e.RegionID,
		Type:                 string(e.Type),
		WeightKg:             e.WeightKg,
		RatePerKg:            e.RatePerKg,
		HandlingFee:          e.HandlingFee,
		ProductCost:          e.ProductCost,
		PurchaseFee:          e.PurchaseFee,
		Subtotal:             e.Subtotal,
		Total:                e.Total,
		Currency:             e.Currency.String(),
		Status:               e.Status.String(),
		ValidUntil:           e.ValidUntil,
		ConvertedToInvoiceID: e.ConvertedToInvoiceID,
		Remark:               e.Remark,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

// =============================================================================
// Invoice DTOs
// =============================================================================

// CreateInvoiceRequest creates a manual invoice not backed by an estimate
type CreateInvoiceRequest struct {
	CustomerID *uuid.UUID      `json:"customer_id"`
	AgentID    *uuid.UUID      `json:"agent_id"`
	ShipmentID *uuid.UUID      `json:"shipment_id"`
	Direction  string          `json:"direction" binding:"required,oneof=FROM_AGENT TO_AGENT CUSTOMER"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Currency   string          `json:"currency" binding:"required,len=3"`
	Remark     string          `json:"remark"`
	CreatedBy  *uuid.UUID      `json:"-"`
}

// AddInvoiceItemRequest appends a line item to an outstanding invoice
type AddInvoiceItemRequest struct {
	Type        string           `json:"type" binding:"required"`
	Description string           `json:"description" binding:"max=500"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal  `json:"unit_price" binding:"required"`
	WeightKg    *decimal.Decimal `json:"weight_kg"`
}

// InvoiceItemResponse represents a line item in API responses
type InvoiceItemResponse struct {
	ID          uuid.UUID        `json:"id"`
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Amount      decimal.Decimal  `json:"amount"`
	Currency    string           `json:"currency"`
	WeightKg    *decimal.Decimal `json:"weight_kg,omitempty"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	CustomerID    *uuid.UUID            `json:"customer_id,omitempty"`
	AgentID       *uuid.UUID            `json:"agent_id,omitempty"`
	ShipmentID    *uuid.UUID            `json:"shipment_id,omitempty"`
	EstimateID    *uuid.UUID            `json:"estimate_id,omitempty"`
	Type          string                `json:"type"`
	Direction     string                `json:"direction"`
	Amount        decimal.Decimal       `json:"amount"`
	AmountTZS     decimal.Decimal       `json:"amount_tzs"`
	Currency      string                `json:"currency"`
	ProductCost   decimal.Decimal       `json:"product_cost"`
	PurchaseFee   decimal.Decimal       `json:"purchase_fee"`
	PaidAmount    decimal.Decimal       `json:"paid_amount"`
	Status        string                `json:"status"`
	DueDate       time.Time             `json:"due_date"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
	Remark        string                `json:"remark,omitempty"`
	PaidAt        *time.Time            `json:"paid_at,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ToInvoiceResponse maps a domain invoice to its response shape
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i := range inv.Items {
		item := &inv.Items[i]
		items[i] = InvoiceItemResponse{
			ID:          item.ID,
			Type:        string(item.Type),
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
			Currency:    item.Currency.String(),
			WeightKg:    item.WeightKg,
		}
	}

	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		AgentID:       inv.AgentID,
		ShipmentID:    inv.ShipmentID,
		EstimateID:    inv.EstimateID,
		Type:          string(inv.Type),
		Direction:     string(inv.Direction),
		Amount:        inv.Amount,
		AmountTZS:     inv.AmountTZS,
		Currency:      inv.Currency.String(),
		ProductCost:   inv.ProductCost,
		PurchaseFee:   inv.PurchaseFee,
		PaidAmount:    inv.PaidAmount,
		Status:        inv.Status.String(),
		DueDate:       inv.DueDate,
		Items:         items,
		Remark:        inv.Remark,
		PaidAt:        inv.PaidAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}
