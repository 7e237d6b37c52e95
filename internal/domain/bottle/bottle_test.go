package bottle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIssuedBottle(t *testing.T, deposit float64) *Bottle {
	t.Helper()

	asOf := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	b, err := NewBottle(deposit, asOf)
	require.NoError(t, err)
	require.NoError(t, b.SetID(1))
	require.NoError(t, b.Issue(7, asOf))
	return b
}

func TestIssue(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	b, err := NewBottle(20, asOf)
	require.NoError(t, err)
	require.NoError(t, b.SetID(1))

	require.NoError(t, b.Issue(7, asOf))
	assert.Equal(t, StatusIssued, b.Status())
	require.NotNil(t, b.UserID())
	assert.Equal(t, uint(7), *b.UserID())

	logs := b.PendingLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, StatusIssued, logs[0].Action)
	assert.Equal(t, 20.0, logs[0].DepositAmount)
	assert.Equal(t, 0.0, logs[0].RefundAmount)

	// Already issued.
	assert.Error(t, b.Issue(8, asOf))
}

func TestReturn_GoodConditionRefundsDeposit(t *testing.T) {
	asOf := time.Date(2024, 1, 2, 6, 0, 0, 0, time.UTC)
	b := newIssuedBottle(t, 20)

	require.NoError(t, b.Return("good", asOf))
	assert.Equal(t, StatusReturned, b.Status())
	assert.Nil(t, b.UserID())

	logs := b.PendingLogs()
	require.Len(t, logs, 2)
	assert.Equal(t, StatusReturned, logs[1].Action)
	assert.Equal(t, 20.0, logs[1].RefundAmount)

	// A returned bottle can be issued again.
	require.NoError(t, b.Issue(9, asOf))
}

func TestReturn_DamagedForfeitsRefund(t *testing.T) {
	asOf := time.Date(2024, 1, 2, 6, 0, 0, 0, time.UTC)
	b := newIssuedBottle(t, 20)

	require.NoError(t, b.Return("damaged", asOf))
	assert.Equal(t, StatusDamaged, b.Status())

	logs := b.PendingLogs()
	require.Len(t, logs, 2)
	assert.Equal(t, StatusDamaged, logs[1].Action)
	assert.Equal(t, 0.0, logs[1].RefundAmount)

	// Damaged bottles do not re-enter circulation.
	assert.Error(t, b.Issue(9, asOf))
}

func TestMarkLost(t *testing.T) {
	asOf := time.Date(2024, 1, 2, 6, 0, 0, 0, time.UTC)
	b := newIssuedBottle(t, 20)

	require.NoError(t, b.MarkLost(asOf))
	assert.Equal(t, StatusLost, b.Status())

	logs := b.PendingLogs()
	require.Len(t, logs, 2)
	assert.Equal(t, StatusLost, logs[1].Action)
	assert.Equal(t, 0.0, logs[1].RefundAmount)

	assert.Error(t, b.Return("good", asOf))
}

func TestPendingLogs_ClearedAfterPersist(t *testing.T) {
	b := newIssuedBottle(t, 20)

	require.Len(t, b.PendingLogs(), 1)
	b.ClearPendingLogs()
	assert.Empty(t, b.PendingLogs())

	// Later transitions append fresh rows only.
	require.NoError(t, b.Return("good", time.Date(2024, 1, 3, 6, 0, 0, 0, time.UTC)))
	assert.Len(t, b.PendingLogs(), 1)
}

func TestNewBottle_RejectsNegativeDeposit(t *testing.T) {
	_, err := NewBottle(-1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}
