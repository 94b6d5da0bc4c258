package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/markethub/backend/internal/domain/cart"
	"github.com/markethub/backend/internal/domain/shared"
)

// GormCartRepository implements cart.ItemRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Save inserts or updates a cart line
func (r *GormCartRepository) Save(ctx context.Context, item *cart.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// FindByIDForUser finds a cart line by ID scoped to its owner
func (r *GormCartRepository) FindByIDForUser(ctx context.Context, userID, id uint) (*cart.Item, error) {
	var item cart.Item
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByUserAndProduct finds the cart line for a (user, product) pair
func (r *GormCartRepository) FindByUserAndProduct(ctx context.Context, userID, productID uint) (*cart.Item, error) {
	var item cart.Item
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// DeleteForUser deletes a cart line scoped to its owner
func (r *GormCartRepository) DeleteForUser(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&cart.Item{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListByUser returns the user's cart lines, newest first
func (r *GormCartRepository) ListByUser(ctx context.Context, userID uint) ([]cart.Item, error) {
	var items []cart.Item
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

var _ cart.ItemRepository = (*GormCartRepository)(nil)
