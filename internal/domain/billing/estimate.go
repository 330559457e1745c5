package billing

import (
	"fmt"
	"time"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstimateStatus represents the lifecycle state of an estimate
type EstimateStatus string

const (
	EstimateStatusPending   EstimateStatus = "PENDING"   // Draft, still editable
	EstimateStatusApproved  EstimateStatus = "APPROVED"  // Accepted by the customer, awaiting conversion
	EstimateStatusRejected  EstimateStatus = "REJECTED"  // Declined by the customer
	EstimateStatusConverted EstimateStatus = "CONVERTED" // Snapshotted into an invoice, immutable
)

// IsValid checks if the status is a valid EstimateStatus
func (s EstimateStatus) IsValid() bool {
	switch s {
	case EstimateStatusPending, EstimateStatusApproved, EstimateStatusRejected, EstimateStatusConverted:
		return true
	}
	return false
}

// String returns the string representation of EstimateStatus
func (s EstimateStatus) String() string {
	return string(s)
}

// IsMutable returns true while the estimate can still be edited or deleted
func (s EstimateStatus) IsMutable() bool {
	return s != EstimateStatusConverted
}

// CanConvert returns true if an estimate in this status may become an invoice
func (s EstimateStatus) CanConvert() bool {
	return s == EstimateStatusPending || s == EstimateStatusApproved
}

// EstimateType distinguishes plain freight quotes from purchase-and-ship quotes
type EstimateType string

const (
	EstimateTypeShipping         EstimateType = "SHIPPING"          // freight only
	EstimateTypePurchaseShipping EstimateType = "PURCHASE_SHIPPING" // company buys the goods, then ships
)

// IsValid checks if the estimate type is valid
func (t EstimateType) IsValid() bool {
	return t == EstimateTypeShipping || t == EstimateTypePurchaseShipping
}

// Estimate is a non-binding price quote for forwarding a shipment.
// It stays mutable while PENDING and becomes immutable once CONVERTED into
// an invoice.
type Estimate struct {
	shared.AuditedAggregateRoot
	EstimateNumber       string               `json:"estimate_number"`
	CustomerID           uuid.UUID            `json:"customer_id"`
	ShipmentID           *uuid.UUID           `json:"shipment_id,omitempty"`
	RegionID             uuid.UUID            `json:"region_id"`
	Type                 EstimateType         `json:"type"`
	WeightKg             decimal.Decimal      `json:"weight_kg"`
	RatePerKg            decimal.Decimal      `json:"rate_per_kg"`
	HandlingFee          decimal.Decimal      `json:"handling_fee"`
	ProductCost          decimal.Decimal      `json:"product_cost"`
	PurchaseFee          decimal.Decimal      `json:"purchase_fee"`
	Subtotal             decimal.Decimal      `json:"subtotal"`
	Total                decimal.Decimal      `json:"total"`
	Currency             valueobject.Currency `json:"currency"`
	Status               EstimateStatus       `json:"status"`
	ValidUntil           *time.Time           `json:"valid_until,omitempty"`
	ConvertedToInvoiceID *uuid.UUID           `json:"converted_to_invoice_id,omitempty"`
	Remark               string               `json:"remark,omitempty"`
}

// EstimateInput carries the figures an estimate is built from
type EstimateInput struct {
	CustomerID  uuid.UUID
	ShipmentID  *uuid.UUID
	RegionID    uuid.UUID
	Type        EstimateType
	WeightKg    decimal.Decimal
	RatePerKg   decimal.Decimal
	HandlingFee decimal.Decimal
	ProductCost decimal.Decimal
	PurchaseFee decimal.Decimal
	Currency    valueobject.Currency
	ValidDays   int
	Remark      string
}

// NewEstimate creates a new estimate in PENDING status.
//
// Totals are derived, not supplied:
//
//	shippingSubtotal = weightKg * ratePerKg
//	subtotal         = shippingSubtotal + productCost
//	total            = subtotal + handlingFee + purchaseFee
func NewEstimate(estimateNumber string, in EstimateInput) (*Estimate, error) {
	if estimateNumber == "" {
		return nil, shared.NewDomainError("INVALID_ESTIMATE_NUMBER", "Estimate number cannot be empty")
	}
	if in.CustomerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if in.RegionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REGION", "Region ID cannot be empty")
	}
	if !in.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_ESTIMATE_TYPE", "Estimate type is not valid")
	}
	if in.WeightKg.IsNegative() {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}
	if in.RatePerKg.IsNegative() || in.HandlingFee.IsNegative() ||
		in.ProductCost.IsNegative() || in.PurchaseFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Monetary inputs cannot be negative")
	}
	if !in.Currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Estimate currency is not valid")
	}
	if in.Type == EstimateTypeShipping && !in.ProductCost.IsZero() {
		return nil, shared.NewDomainError("INVALID_ESTIMATE_TYPE", "Product cost requires a purchase-shipping estimate")
	}

	e := &Estimate{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		EstimateNumber:       estimateNumber,
		CustomerID:           in.CustomerID,
		ShipmentID:           in.ShipmentID,
		RegionID:             in.RegionID,
		Type:                 in.Type,
		WeightKg:             in.WeightKg,
		RatePerKg:            in.RatePerKg,
		HandlingFee:          in.HandlingFee,
		ProductCost:          in.ProductCost,
		PurchaseFee:          in.PurchaseFee,
		Currency:             in.Currency,
		Status:               EstimateStatusPending,
		Remark:               in.Remark,
	}
	e.recalculate()

	if in.ValidDays > 0 {
		validUntil := time.Now().AddDate(0, 0, in.ValidDays)
		e.ValidUntil = &validUntil
	}

	e.AddDomainEvent(NewEstimateCreatedEvent(e))

	return e, nil
}

// recalculate derives subtotal and total from the stored figures
func (e *Estimate) recalculate() {
	shippingSubtotal := e.WeightKg.Mul(e.RatePerKg)
	e.Subtotal = shippingSubtotal.Add(e.ProductCost)
	e.Total = e.Subtotal.Add(e.HandlingFee).Add(e.PurchaseFee)
}

// UpdateFigures changes the quoted figures while the estimate is PENDING
func (e *Estimate) UpdateFigures(weightKg, ratePerKg, handlingFee, productCost, purchaseFee decimal.Decimal) error {
	if e.Status != EstimateStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit estimate in %s status", e.Status))
	}
	if weightKg.IsNegative() {
		return shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}
	if ratePerKg.IsNegative() || handlingFee.IsNegative() || productCost.IsNegative() || purchaseFee.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Monetary inputs cannot be negative")
	}

	e.WeightKg = weightKg
	e.RatePerKg = ratePerKg
	e.HandlingFee = handlingFee
	e.ProductCost = productCost
	e.PurchaseFee = purchaseFee
	e.recalculate()
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// Approve marks a pending estimate as accepted by the customer
func (e *Estimate) Approve() error {
	if e.Status != EstimateStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve estimate in %s status", e.Status))
	}
	if e.IsExpired() {
		return shared.NewDomainError("ESTIMATE_EXPIRED", "Estimate validity period has lapsed")
	}

	e.Status = EstimateStatusApproved
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	e.AddDomainEvent(NewEstimateApprovedEvent(e))

	return nil
}

// Reject marks a pending estimate as declined by the customer
func (e *Estimate) Reject(reason string) error {
	if e.Status != EstimateStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject estimate in %s status", e.Status))
	}

	e.Status = EstimateStatusRejected
	if reason != "" {
		e.Remark = reason
	}
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	e.AddDomainEvent(NewEstimateRejectedEvent(e))

	return nil
}

// MarkConverted freezes the estimate and records the forward link to the
// invoice created from it. Converting twice is an error.
func (e *Estimate) MarkConverted(invoiceID uuid.UUID) error {
	if e.Status == EstimateStatusConverted {
		return shared.ErrAlreadyConverted
	}
	if !e.Status.CanConvert() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot convert estimate in %s status", e.Status))
	}
	if invoiceID == uuid.Nil {
		return shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}

	e.Status = EstimateStatusConverted
	e.ConvertedToInvoiceID = &invoiceID
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	e.AddDomainEvent(NewEstimateConvertedEvent(e, invoiceID))

	return nil
}

// CanDelete returns true while the estimate may still be removed
func (e *Estimate) CanDelete() bool {
	return e.Status.IsMutable()
}

// IsExpired returns true when the validity window has lapsed
func (e *Estimate) IsExpired() bool {
	return e.ValidUntil != nil && time.Now().After(*e.ValidUntil)
}

// TotalMoney returns the estimate total as Money
func (e *Estimate) TotalMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(e.Total, e.Currency)
	return m
}
