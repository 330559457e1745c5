// Package billing provides domain models for estimating and invoicing
// freight charges.
//
// This package implements the billing bounded context, which is
// responsible for:
//   - Quoting shipping and purchase-shipping estimates from region rate cards
//   - Converting accepted estimates into invoices with frozen TZS amounts
//   - Tracking invoice balances as verified payments land
//   - Marking invoices overdue once their due date passes unpaid
//
// Key Aggregates:
//   - Estimate: A priced quote, immutable once converted
//   - Invoice: A receivable or payable with line items and a payment balance
//
// The billing domain integrates with:
//   - Pricing domain: For rate cards and exchange rates
//   - Payment domain: As the source of verified payment amounts
//   - Settlement domain: Which batches paid agent invoices
package billing
