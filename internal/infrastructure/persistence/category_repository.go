package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// List returns all categories in display order
func (r *GormCategoryRepository) List(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).
		Order("display_order ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindBySlug finds a category by its URL slug
func (r *GormCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
