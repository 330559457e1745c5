package persistence

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey struct{}

// GormTransactionManager implements shared.TransactionManager on a gorm
// connection. Do opens a transaction and stores the transactional
// handle in the context; repositories built with the same Database pick
// it up through dbFromContext, so every repository call inside fn joins
// the one transaction.
type GormTransactionManager struct {
	db *gorm.DB
}

// NewGormTransactionManager creates a new GormTransactionManager
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// Do runs fn inside a single database transaction
func (m *GormTransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested Do calls join the outer transaction instead of opening a
	// second one.
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// txFromContext returns the transactional handle carried by ctx, or nil
func txFromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx
}

// dbFromContext resolves the gorm handle a repository should use: the
// transaction carried by ctx when inside TransactionManager.Do, the
// plain connection otherwise.
func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}
