package shipping

import "context"

// AddressRepository provides user-scoped access to shipping addresses
type AddressRepository interface {
	Create(ctx context.Context, address *Address) error
	Update(ctx context.Context, address *Address) error
	FindByIDForUser(ctx context.Context, userID, id uint) (*Address, error)
	DeleteForUser(ctx context.Context, userID, id uint) error
	// ListByUser returns the user's addresses, default first
	ListByUser(ctx context.Context, userID uint) ([]Address, error)
	// ClearDefault drops the default flag from every address of the
	// user except the given one (0 clears all). Must run inside the
	// same transaction as the write that sets a new default.
	ClearDefault(ctx context.Context, userID, exceptID uint) error
}
