package cart

import "context"

// ItemRepository provides user-scoped access to cart lines
type ItemRepository interface {
	Save(ctx context.Context, item *Item) error
	FindByIDForUser(ctx context.Context, userID, id uint) (*Item, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uint) (*Item, error)
	DeleteForUser(ctx context.Context, userID, id uint) error
	ListByUser(ctx context.Context, userID uint) ([]Item, error)
}
