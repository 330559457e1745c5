package event

import (
	"github.com/cargoflow/backend/internal/domain/billing"
	"github.com/cargoflow/backend/internal/domain/partner"
	"github.com/cargoflow/backend/internal/domain/payment"
	"github.com/cargoflow/backend/internal/domain/pricing"
	"github.com/cargoflow/backend/internal/domain/settlement"
)

// RegisterAllEvents registers all domain event types with the serializer
// This is required for the OutboxProcessor to deserialize events from the outbox table
func RegisterAllEvents(serializer EventCodec) {
	// Billing context
	serializer.Register(billing.EventTypeEstimateCreated, &billing.EstimateCreatedEvent{})
	serializer.Register(billing.EventTypeEstimateApproved, &billing.EstimateApprovedEvent{})
	serializer.Register(billing.EventTypeEstimateRejected, &billing.EstimateRejectedEvent{})
	serializer.Register(billing.EventTypeEstimateConverted, &billing.EstimateConvertedEvent{})
	serializer.Register(billing.EventTypeInvoiceCreated, &billing.InvoiceCreatedEvent{})
	serializer.Register(billing.EventTypeInvoicePaid, &billing.InvoicePaidEvent{})
	serializer.Register(billing.EventTypeInvoiceOverdue, &billing.InvoiceOverdueEvent{})

	// Payment context
	serializer.Register(payment.EventTypePaymentRecorded, &payment.PaymentRecordedEvent{})
	serializer.Register(payment.EventTypePaymentVerified, &payment.PaymentVerifiedEvent{})
	serializer.Register(payment.EventTypePaymentRejected, &payment.PaymentRejectedEvent{})

	// Settlement context
	serializer.Register(settlement.EventTypeSettlementCreated, &settlement.SettlementCreatedEvent{})
	serializer.Register(settlement.EventTypeSettlementApproved, &settlement.SettlementApprovedEvent{})
	serializer.Register(settlement.EventTypeSettlementPaid, &settlement.SettlementPaidEvent{})
	serializer.Register(settlement.EventTypeSettlementCancelled, &settlement.SettlementCancelledEvent{})

	// Pricing context
	serializer.Register(pricing.EventTypeRegionCreated, &pricing.RegionCreatedEvent{})
	serializer.Register(pricing.EventTypeRateCardCreated, &pricing.RateCardCreatedEvent{})
	serializer.Register(pricing.EventTypeRateCardUpdated, &pricing.RateCardUpdatedEvent{})
	serializer.Register(pricing.EventTypeExchangeRateSet, &pricing.ExchangeRateSetEvent{})

	// Partner context
	serializer.Register(partner.EventTypeCustomerCreated, &partner.CustomerCreatedEvent{})
	serializer.Register(partner.EventTypeCustomerUpdated, &partner.CustomerUpdatedEvent{})
	serializer.Register(partner.EventTypeCustomerStatusChanged, &partner.CustomerStatusChangedEvent{})
	serializer.Register(partner.EventTypeAgentCreated, &partner.AgentCreatedEvent{})
	serializer.Register(partner.EventTypeAgentUpdated, &partner.AgentUpdatedEvent{})
	serializer.Register(partner.EventTypeAgentStatusChanged, &partner.AgentStatusChangedEvent{})
}
