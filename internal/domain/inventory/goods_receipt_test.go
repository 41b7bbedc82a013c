package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptTransitionEffect(t *testing.T) {
	cases := []struct {
		name     string
		previous ReceiptStatus
		next     ReceiptStatus
		want     StockEffect
	}{
		{"pending to completed increases", ReceiptStatusPending, ReceiptStatusCompleted, StockEffectIncrease},
		{"cancelled to completed increases", ReceiptStatusCancelled, ReceiptStatusCompleted, StockEffectIncrease},
		{"completed to pending decreases", ReceiptStatusCompleted, ReceiptStatusPending, StockEffectDecrease},
		{"completed to cancelled decreases", ReceiptStatusCompleted, ReceiptStatusCancelled, StockEffectDecrease},
		{"pending to cancelled no effect", ReceiptStatusPending, ReceiptStatusCancelled, StockEffectNone},
		{"cancelled to pending no effect", ReceiptStatusCancelled, ReceiptStatusPending, StockEffectNone},
		{"completed to completed no effect", ReceiptStatusCompleted, ReceiptStatusCompleted, StockEffectNone},
		{"pending to pending no effect", ReceiptStatusPending, ReceiptStatusPending, StockEffectNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ReceiptTransitionEffect(tc.previous, tc.next))
		})
	}
}

func TestReceiptTransitionEffectRoundTrip(t *testing.T) {
	// Complete then revert then complete again: each completion increases,
	// each reversion decreases. The effect depends on the edge, not the state.
	effects := []StockEffect{
		ReceiptTransitionEffect(ReceiptStatusPending, ReceiptStatusCompleted),
		ReceiptTransitionEffect(ReceiptStatusCompleted, ReceiptStatusPending),
		ReceiptTransitionEffect(ReceiptStatusPending, ReceiptStatusCompleted),
	}
	assert.Equal(t, []StockEffect{StockEffectIncrease, StockEffectDecrease, StockEffectIncrease}, effects)
}

func TestNewGoodsReceipt(t *testing.T) {
	tenantID := uuid.New()
	branchID := uuid.New()
	supplierID := uuid.New()

	t.Run("creates pending receipt", func(t *testing.T) {
		receipt, err := NewGoodsReceipt(tenantID, "GRN-20260901-0001", branchID, supplierID, time.Now())
		require.NoError(t, err)
		require.NotNil(t, receipt)

		assert.Equal(t, ReceiptStatusPending, receipt.Status)
		assert.Equal(t, branchID, receipt.BranchID)
		assert.Equal(t, supplierID, receipt.SupplierID)
		assert.Empty(t, receipt.Lines)
		assert.False(t, receipt.IsCompleted())
	})

	t.Run("fails with empty number", func(t *testing.T) {
		_, err := NewGoodsReceipt(tenantID, "", branchID, supplierID, time.Now())
		require.Error(t, err)
	})

	t.Run("fails with empty branch", func(t *testing.T) {
		_, err := NewGoodsReceipt(tenantID, "GRN-1", uuid.Nil, supplierID, time.Now())
		require.Error(t, err)
	})

	t.Run("fails with empty supplier", func(t *testing.T) {
		_, err := NewGoodsReceipt(tenantID, "GRN-1", branchID, uuid.Nil, time.Now())
		require.Error(t, err)
	})
}

func TestReceiptLines(t *testing.T) {
	tenantID := uuid.New()

	newReceipt := func(t *testing.T) *GoodsReceipt {
		receipt, err := NewGoodsReceipt(tenantID, "GRN-1", uuid.New(), uuid.New(), time.Now())
		require.NoError(t, err)
		return receipt
	}

	t.Run("adds line and computes value", func(t *testing.T) {
		receipt := newReceipt(t)
		line, err := receipt.AddLine(uuid.New(), "Widget", decimal.NewFromInt(10), decimal.NewFromFloat(2.50))
		require.NoError(t, err)

		assert.True(t, line.LineValue().Equal(decimal.NewFromInt(25)))
		assert.Len(t, receipt.Lines, 1)
		assert.True(t, receipt.TotalValue().Equal(decimal.NewFromInt(25)))
	})

	t.Run("totals multiple lines", func(t *testing.T) {
		receipt := newReceipt(t)
		_, err := receipt.AddLine(uuid.New(), "A", decimal.NewFromInt(2), decimal.NewFromInt(5))
		require.NoError(t, err)
		_, err = receipt.AddLine(uuid.New(), "B", decimal.NewFromInt(3), decimal.NewFromInt(4))
		require.NoError(t, err)

		assert.True(t, receipt.TotalValue().Equal(decimal.NewFromInt(22)))
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		receipt := newReceipt(t)
		_, err := receipt.AddLine(uuid.New(), "A", decimal.Zero, decimal.NewFromInt(5))
		require.Error(t, err)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		receipt := newReceipt(t)
		_, err := receipt.AddLine(uuid.New(), "A", decimal.NewFromInt(-1), decimal.NewFromInt(5))
		require.Error(t, err)
	})

	t.Run("rejects negative cost", func(t *testing.T) {
		receipt := newReceipt(t)
		_, err := receipt.AddLine(uuid.New(), "A", decimal.NewFromInt(1), decimal.NewFromInt(-5))
		require.Error(t, err)
	})

	t.Run("allows zero cost", func(t *testing.T) {
		receipt := newReceipt(t)
		_, err := receipt.AddLine(uuid.New(), "Free sample", decimal.NewFromInt(1), decimal.Zero)
		require.NoError(t, err)
	})
}

func TestGoodsReceiptSetStatus(t *testing.T) {
	tenantID := uuid.New()

	t.Run("returns the transition effect and updates status", func(t *testing.T) {
		receipt, err := NewGoodsReceipt(tenantID, "GRN-1", uuid.New(), uuid.New(), time.Now())
		require.NoError(t, err)

		effect, err := receipt.SetStatus(ReceiptStatusPending, ReceiptStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, StockEffectIncrease, effect)
		assert.Equal(t, ReceiptStatusCompleted, receipt.Status)
		assert.True(t, receipt.IsCompleted())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		receipt, err := NewGoodsReceipt(tenantID, "GRN-1", uuid.New(), uuid.New(), time.Now())
		require.NoError(t, err)

		_, err = receipt.SetStatus(ReceiptStatusPending, ReceiptStatus("SHIPPED"))
		require.Error(t, err)
		assert.Equal(t, ReceiptStatusPending, receipt.Status)
	})

	t.Run("bumps version on transition", func(t *testing.T) {
		receipt, err := NewGoodsReceipt(tenantID, "GRN-1", uuid.New(), uuid.New(), time.Now())
		require.NoError(t, err)
		before := receipt.GetVersion()

		_, err = receipt.SetStatus(ReceiptStatusPending, ReceiptStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, before+1, receipt.GetVersion())
	})
}
