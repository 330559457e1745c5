package shared

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEntry() *OutboxEntry {
	event := NewBaseDomainEvent("invoice.created", "Invoice", uuid.New())
	return NewOutboxEntry(&event, []byte(`{"n":"INV-2026-00001"}`))
}

func TestNewOutboxEntry(t *testing.T) {
	entry := newTestEntry()
	assert.Equal(t, OutboxStatusPending, entry.Status)
	assert.Equal(t, "invoice.created", entry.EventType)
	assert.Equal(t, DefaultMaxRetries, entry.MaxRetries)
	assert.Zero(t, entry.RetryCount)
}

func TestOutboxEntry_MarkProcessing(t *testing.T) {
	entry := newTestEntry()
	require.NoError(t, entry.MarkProcessing())
	assert.Equal(t, OutboxStatusProcessing, entry.Status)

	// Processing entries cannot be claimed twice
	assert.Error(t, entry.MarkProcessing())
}

func TestOutboxEntry_MarkSent(t *testing.T) {
	entry := newTestEntry()
	require.NoError(t, entry.MarkProcessing())
	entry.MarkSent()
	assert.Equal(t, OutboxStatusSent, entry.Status)
	assert.NotNil(t, entry.ProcessedAt)
}

func TestOutboxEntry_MarkFailed_Backoff(t *testing.T) {
	entry := newTestEntry()
	entry.MarkFailed("broker unavailable")
	assert.Equal(t, OutboxStatusFailed, entry.Status)
	assert.Equal(t, 1, entry.RetryCount)
	require.NotNil(t, entry.NextRetryAt)

	first := *entry.NextRetryAt
	entry.MarkFailed("broker unavailable")
	require.NotNil(t, entry.NextRetryAt)
	assert.True(t, entry.NextRetryAt.After(first) || entry.NextRetryAt.Equal(first))
}

func TestOutboxEntry_MarkFailed_Dead(t *testing.T) {
	entry := newTestEntry()
	for i := 0; i < DefaultMaxRetries; i++ {
		entry.MarkFailed("permanent failure")
	}
	assert.Equal(t, OutboxStatusDead, entry.Status)
	assert.Nil(t, entry.NextRetryAt)
}

func TestOutboxEntry_IsRetryable(t *testing.T) {
	entry := newTestEntry()
	assert.False(t, entry.IsRetryable(time.Now()))

	entry.MarkFailed("transient")
	assert.False(t, entry.IsRetryable(time.Now()))
	assert.True(t, entry.IsRetryable(time.Now().Add(time.Minute)))
}
