package identity

import "context"

// UserRepository provides access to user accounts
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}

// PartnerRepository provides access to seller profiles
type PartnerRepository interface {
	Create(ctx context.Context, partner *Partner) error
	FindByID(ctx context.Context, id uint) (*Partner, error)
	// FindByUserID resolves the seller profile of a user account;
	// returns shared.ErrNotFound when the user has none.
	FindByUserID(ctx context.Context, userID uint) (*Partner, error)
	Update(ctx context.Context, partner *Partner) error
}
