package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoupon(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 1, 0)

	t.Run("creates coupon and uppercases code", func(t *testing.T) {
		coupon, err := NewCoupon(3, "  spring10 ", DiscountTypePercentage, decimal.NewFromInt(10), decimal.Zero, from, until)
		require.NoError(t, err)
		assert.Equal(t, "SPRING10", coupon.Code)
		assert.Equal(t, uint(3), coupon.PartnerID)
		assert.True(t, coupon.IsActive)
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewCoupon(3, "  ", DiscountTypeFixed, decimal.NewFromInt(5), decimal.Zero, from, until)
		require.Error(t, err)
	})

	t.Run("rejects percentage above 100", func(t *testing.T) {
		_, err := NewCoupon(3, "BIG", DiscountTypePercentage, decimal.NewFromInt(150), decimal.Zero, from, until)
		require.Error(t, err)
	})

	t.Run("rejects non-positive fixed discount", func(t *testing.T) {
		_, err := NewCoupon(3, "ZERO", DiscountTypeFixed, decimal.Zero, decimal.Zero, from, until)
		require.Error(t, err)
	})

	t.Run("rejects unknown discount type", func(t *testing.T) {
		_, err := NewCoupon(3, "ODD", DiscountType("bogus"), decimal.NewFromInt(5), decimal.Zero, from, until)
		require.Error(t, err)
	})

	t.Run("rejects negative minimum order", func(t *testing.T) {
		_, err := NewCoupon(3, "NEG", DiscountTypeFixed, decimal.NewFromInt(5), decimal.NewFromInt(-1), from, until)
		require.Error(t, err)
	})

	t.Run("rejects inverted validity window", func(t *testing.T) {
		_, err := NewCoupon(3, "FLIP", DiscountTypeFixed, decimal.NewFromInt(5), decimal.Zero, until, from)
		require.Error(t, err)
	})
}

func TestCoupon_Update(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 1, 0)

	coupon, err := NewCoupon(3, "KEEP", DiscountTypeFixed, decimal.NewFromInt(5), decimal.Zero, from, until)
	require.NoError(t, err)

	t.Run("updates terms but not the code", func(t *testing.T) {
		err := coupon.Update(DiscountTypePercentage, decimal.NewFromInt(20), decimal.NewFromInt(50), from, until, false)
		require.NoError(t, err)

		assert.Equal(t, "KEEP", coupon.Code)
		assert.Equal(t, DiscountTypePercentage, coupon.DiscountType)
		assert.True(t, coupon.DiscountValue.Equal(decimal.NewFromInt(20)))
		assert.False(t, coupon.IsActive)
	})

	t.Run("rejects invalid terms", func(t *testing.T) {
		err := coupon.Update(DiscountTypePercentage, decimal.NewFromInt(200), decimal.Zero, from, until, true)
		require.Error(t, err)
	})
}

func TestCoupon_IsValidAt(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 1, 0)

	coupon, err := NewCoupon(3, "WINDOW", DiscountTypeFixed, decimal.NewFromInt(5), decimal.Zero, from, until)
	require.NoError(t, err)

	assert.False(t, coupon.IsValidAt(from.Add(-time.Second)))
	assert.True(t, coupon.IsValidAt(from))
	assert.True(t, coupon.IsValidAt(until.Add(-time.Second)))
	assert.False(t, coupon.IsValidAt(until))

	coupon.IsActive = false
	assert.False(t, coupon.IsValidAt(from))
}
