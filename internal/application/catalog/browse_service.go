package catalog

import (
	"context"
	"strings"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

const defaultPageSize = 20

// BrowseService serves the public, read-only side of the catalog
type BrowseService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
}

// NewBrowseService creates a new BrowseService
func NewBrowseService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository) *BrowseService {
	return &BrowseService{productRepo: productRepo, categoryRepo: categoryRepo}
}

// ListProducts returns active products, paginated
func (s *BrowseService) ListProducts(ctx context.Context, limit, offset int) ([]catalog.Product, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	return s.productRepo.ListActive(ctx, catalog.ProductFilter{Limit: limit, Offset: offset})
}

// SearchProducts returns active products whose name or description
// matches the query
func (s *BrowseService) SearchProducts(ctx context.Context, query string, limit, offset int) ([]catalog.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, shared.NewDomainError("INVALID_QUERY", "Search query cannot be empty")
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	return s.productRepo.ListActive(ctx, catalog.ProductFilter{Query: query, Limit: limit, Offset: offset})
}

// GetProduct returns one product for the public detail page. Inactive
// products stay hidden.
func (s *BrowseService) GetProduct(ctx context.Context, id uint) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

// ListCategories returns all categories in display order
func (s *BrowseService) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return s.categoryRepo.List(ctx)
}

// GetCategory returns a category by its slug
func (s *BrowseService) GetCategory(ctx context.Context, slug string) (*catalog.Category, error) {
	return s.categoryRepo.FindBySlug(ctx, slug)
}

// ListCategoryProducts returns active products in the category named
// by slug
func (s *BrowseService) ListCategoryProducts(ctx context.Context, slug string, limit, offset int) ([]catalog.Product, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	return s.productRepo.ListActive(ctx, catalog.ProductFilter{
		CategoryID: &category.ID,
		Limit:      limit,
		Offset:     offset,
	})
}
