package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create inserts a new product
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Update persists changes to a product
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// FindByID finds a product by its ID with images ordered for display
func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDForPartner finds a product by ID scoped to its owner. A
// product owned by someone else is indistinguishable from a missing one.
func (r *GormProductRepository) FindByIDForPartner(ctx context.Context, partnerID, id uint) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Where("partner_id = ? AND id = ?", partnerID, id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// DeleteForPartner deletes a product scoped to its owner
func (r *GormProductRepository) DeleteForPartner(ctx context.Context, partnerID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("partner_id = ? AND id = ?", partnerID, id).
		Delete(&catalog.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListByPartner returns all products of a partner, newest first
func (r *GormProductRepository) ListByPartner(ctx context.Context, partnerID uint) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Where("partner_id = ?", partnerID).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListActive returns publicly visible products matching the filter
func (r *GormProductRepository) ListActive(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	query := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Where("status = ?", catalog.ProductStatusActive)

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", like, like)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []catalog.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
