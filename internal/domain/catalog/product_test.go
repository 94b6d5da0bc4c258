package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct(7, "Walnut Desk", decimal.NewFromInt(450))
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, uint(7), product.PartnerID)
		assert.Equal(t, "Walnut Desk", product.Name)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(450)))
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.Nil(t, product.DiscountPrice)
		assert.Empty(t, product.Images)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct(7, "", decimal.NewFromInt(10))
		require.Error(t, err)
	})

	t.Run("fails with zero price", func(t *testing.T) {
		_, err := NewProduct(7, "Desk", decimal.Zero)
		require.Error(t, err)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct(7, "Desk", decimal.NewFromInt(-5))
		require.Error(t, err)
	})
}

func TestProduct_SetDiscountPrice(t *testing.T) {
	product, err := NewProduct(1, "Lamp", decimal.NewFromInt(100))
	require.NoError(t, err)

	t.Run("accepts discount below list price", func(t *testing.T) {
		discount := decimal.NewFromInt(80)
		require.NoError(t, product.SetDiscountPrice(&discount))
		require.NotNil(t, product.DiscountPrice)
		assert.True(t, product.DiscountPrice.Equal(discount))
	})

	t.Run("rejects discount equal to list price", func(t *testing.T) {
		discount := decimal.NewFromInt(100)
		require.Error(t, product.SetDiscountPrice(&discount))
	})

	t.Run("rejects discount above list price", func(t *testing.T) {
		discount := decimal.NewFromInt(120)
		require.Error(t, product.SetDiscountPrice(&discount))
	})

	t.Run("rejects non-positive discount", func(t *testing.T) {
		discount := decimal.Zero
		require.Error(t, product.SetDiscountPrice(&discount))
	})

	t.Run("clears discount with nil", func(t *testing.T) {
		require.NoError(t, product.SetDiscountPrice(nil))
		assert.Nil(t, product.DiscountPrice)
	})
}

func TestProduct_EffectivePrice(t *testing.T) {
	product, err := NewProduct(1, "Lamp", decimal.NewFromInt(100))
	require.NoError(t, err)

	assert.True(t, product.EffectivePrice().Equal(decimal.NewFromInt(100)))

	discount := decimal.NewFromInt(75)
	require.NoError(t, product.SetDiscountPrice(&discount))
	assert.True(t, product.EffectivePrice().Equal(discount))
}

func TestProduct_PrimaryImage(t *testing.T) {
	product, err := NewProduct(1, "Lamp", decimal.NewFromInt(100))
	require.NoError(t, err)

	assert.Nil(t, product.PrimaryImage())

	product.Images = BuildProductImages(product.ID, []string{"/uploads/images/1/2/a.png", "/uploads/images/1/2/b.png"})
	primary := product.PrimaryImage()
	require.NotNil(t, primary)
	assert.Equal(t, "/uploads/images/1/2/a.png", primary.ImageURL)
}

func TestBuildProductImages(t *testing.T) {
	t.Run("builds dense order with primary at index zero", func(t *testing.T) {
		urls := []string{"u0", "u1", "u2"}
		images := BuildProductImages(42, urls)

		require.Len(t, images, 3)
		for i, img := range images {
			assert.Equal(t, uint(42), img.ProductID)
			assert.Equal(t, urls[i], img.ImageURL)
			assert.Equal(t, i, img.DisplayOrder)
			assert.Equal(t, i == 0, img.IsPrimary)
		}
	})

	t.Run("returns empty slice for no urls", func(t *testing.T) {
		images := BuildProductImages(42, nil)
		assert.NotNil(t, images)
		assert.Empty(t, images)
	})
}

func TestImageRef(t *testing.T) {
	t.Run("staged ref carries token only", func(t *testing.T) {
		ref, err := NewStagedRef("abc123.png")
		require.NoError(t, err)
		assert.Equal(t, ImageRefStaged, ref.Kind)
		assert.Equal(t, "abc123.png", ref.Token)
		assert.Empty(t, ref.URL)
	})

	t.Run("committed ref carries url only", func(t *testing.T) {
		ref, err := NewCommittedRef("/uploads/images/1/2/x.png")
		require.NoError(t, err)
		assert.Equal(t, ImageRefCommitted, ref.Kind)
		assert.Equal(t, "/uploads/images/1/2/x.png", ref.URL)
		assert.Empty(t, ref.Token)
	})

	t.Run("rejects empty token", func(t *testing.T) {
		_, err := NewStagedRef("")
		require.Error(t, err)
	})

	t.Run("rejects empty url", func(t *testing.T) {
		_, err := NewCommittedRef("")
		require.Error(t, err)
	})
}
