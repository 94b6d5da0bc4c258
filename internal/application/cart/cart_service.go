package cart

import (
	"context"
	"errors"

	"github.com/markethub/backend/internal/domain/cart"
	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

// Line is a cart item joined with its product for display
type Line struct {
	Item    cart.Item
	Product catalog.Product
}

// Service manages a user's cart
type Service struct {
	itemRepo    cart.ItemRepository
	productRepo catalog.ProductRepository
}

// NewService creates a new cart Service
func NewService(itemRepo cart.ItemRepository, productRepo catalog.ProductRepository) *Service {
	return &Service{itemRepo: itemRepo, productRepo: productRepo}
}

// List returns the user's cart lines with product details. Lines whose
// product has been removed or deactivated are filtered out.
func (s *Service) List(ctx context.Context, userID uint) ([]Line, error) {
	items, err := s.itemRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if !product.IsActive() {
			continue
		}
		lines = append(lines, Line{Item: item, Product: *product})
	}
	return lines, nil
}

// Add puts a product in the cart; adding an already carted product
// bumps the existing line's quantity instead of duplicating it.
func (s *Service) Add(ctx context.Context, userID, productID uint, quantity int) (*cart.Item, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.ErrNotFound
	}

	existing, err := s.itemRepo.FindByUserAndProduct(ctx, userID, productID)
	switch {
	case err == nil:
		if err := existing.SetQuantity(existing.Quantity + quantity); err != nil {
			return nil, err
		}
		if err := s.itemRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case errors.Is(err, shared.ErrNotFound):
		item, err := cart.NewItem(userID, productID, quantity)
		if err != nil {
			return nil, err
		}
		if err := s.itemRepo.Save(ctx, item); err != nil {
			return nil, err
		}
		return item, nil
	default:
		return nil, err
	}
}

// UpdateQuantity replaces the quantity of a cart line owned by the user
func (s *Service) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (*cart.Item, error) {
	item, err := s.itemRepo.FindByIDForUser(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := item.SetQuantity(quantity); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove deletes a cart line owned by the user
func (s *Service) Remove(ctx context.Context, userID, itemID uint) error {
	return s.itemRepo.DeleteForUser(ctx, userID, itemID)
}
