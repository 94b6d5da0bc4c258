package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/markethub/backend/internal/domain/catalog"
)

// GormProductImageRepository implements ProductImageRepository using GORM
type GormProductImageRepository struct {
	db *gorm.DB
}

// NewGormProductImageRepository creates a new GormProductImageRepository
func NewGormProductImageRepository(db *gorm.DB) *GormProductImageRepository {
	return &GormProductImageRepository{db: db}
}

// ReplaceForProduct swaps the full image set of a product: all existing
// rows go, the given rows come in with their display order as-is. Run
// it inside the transaction that writes the product.
func (r *GormProductImageRepository) ReplaceForProduct(ctx context.Context, productID uint, images []catalog.ProductImage) error {
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&catalog.ProductImage{}).Error; err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

// ListByProduct returns a product's images in display order
func (r *GormProductImageRepository) ListByProduct(ctx context.Context, productID uint) ([]catalog.ProductImage, error) {
	var images []catalog.ProductImage
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("display_order ASC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

var _ catalog.ProductImageRepository = (*GormProductImageRepository)(nil)
