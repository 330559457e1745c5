package shared

import "context"

// TransactionManager runs a function inside one database transaction.
// Repositories called with the ctx passed to fn join that transaction,
// so multi-aggregate flows commit or roll back as a unit.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// NopTransactionManager runs the function without a transaction, used
// in tests
type NopTransactionManager struct{}

// Do invokes fn directly
func (NopTransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
