package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"status":     true,
	"city":       true,
	"country":    true,
}

// AgentSortFields contains allowed sort fields for agents
var AgentSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"status":     true,
	"currency":   true,
}

// ShipmentSortFields contains allowed sort fields for shipments
var ShipmentSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"shipment_number": true,
	"status":          true,
	"weight_kg":       true,
	"delivered_at":    true,
}

// RegionSortFields contains allowed sort fields for regions
var RegionSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"currency":   true,
}

// EstimateSortFields contains allowed sort fields for estimates
var EstimateSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"estimate_number": true,
	"status":          true,
	"type":            true,
	"total":           true,
	"valid_until":     true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"invoice_number": true,
	"status":         true,
	"type":           true,
	"direction":      true,
	"amount":         true,
	"amount_tzs":     true,
	"due_date":       true,
	"paid_at":        true,
}

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"status":      true,
	"method":      true,
	"amount":      true,
	"paid_at":     true,
	"verified_at": true,
}

// BankAccountSortFields contains allowed sort fields for bank accounts
var BankAccountSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"bank_name":  true,
	"currency":   true,
	"balance":    true,
}

// BankTransactionSortFields contains allowed sort fields for bank transactions
var BankTransactionSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"posted_at":  true,
	"direction":  true,
	"amount":     true,
}

// SettlementSortFields contains allowed sort fields for settlements
var SettlementSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"settlement_number": true,
	"status":            true,
	"type":              true,
	"total_amount":      true,
	"total_amount_tzs":  true,
	"period_start":      true,
	"period_end":        true,
	"paid_at":           true,
}

// DutyRateSortFields contains allowed sort fields for vehicle duty rates
var DutyRateSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"category":      true,
	"rate":          true,
	"min_engine_cc": true,
}

// BadgeSortFields contains allowed sort fields for employee badges
var BadgeSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"metric":       true,
	"period":       true,
	"period_start": true,
	"tier":         true,
	"value":        true,
}

// NotificationSortFields contains allowed sort fields for notifications
var NotificationSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"kind":       true,
	"read":       true,
	"read_at":    true,
}
