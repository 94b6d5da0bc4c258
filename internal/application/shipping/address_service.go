package shipping

import (
	"context"

	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/shipping"
)

// AddressInput carries a shipping address create or update request
type AddressInput struct {
	RecipientName string
	Phone         string
	AddressLine1  string
	AddressLine2  string
	City          string
	PostalCode    string
	Country       string
	IsDefault     bool
}

// AddressService manages a user's shipping addresses. Setting a new
// default clears the previous one in the same transaction, so at most
// one default survives any interleaving.
type AddressService struct {
	addressRepo shipping.AddressRepository
	txScope     TransactionScope
	logger      *zap.Logger
}

// NewAddressService creates a new AddressService
func NewAddressService(addressRepo shipping.AddressRepository, txScope TransactionScope, logger *zap.Logger) *AddressService {
	return &AddressService{addressRepo: addressRepo, txScope: txScope, logger: logger}
}

// List returns the user's addresses, default first
func (s *AddressService) List(ctx context.Context, userID uint) ([]shipping.Address, error) {
	return s.addressRepo.ListByUser(ctx, userID)
}

// Create adds a new address for the user
func (s *AddressService) Create(ctx context.Context, userID uint, input AddressInput) (*shipping.Address, error) {
	address, err := shipping.NewAddress(userID, input.RecipientName, input.Phone,
		input.AddressLine1, input.City, input.PostalCode, input.Country)
	if err != nil {
		return nil, err
	}
	address.AddressLine2 = input.AddressLine2
	address.IsDefault = input.IsDefault

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if input.IsDefault {
			if err := repos.AddressRepo().ClearDefault(ctx, userID, 0); err != nil {
				return err
			}
		}
		return repos.AddressRepo().Create(ctx, address)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Shipping address created",
		zap.Uint("user_id", userID),
		zap.Uint("address_id", address.ID),
		zap.Bool("is_default", address.IsDefault),
	)
	return address, nil
}

// Update rewrites an address owned by the user
func (s *AddressService) Update(ctx context.Context, userID, addressID uint, input AddressInput) (*shipping.Address, error) {
	address, err := s.addressRepo.FindByIDForUser(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	updated, err := shipping.NewAddress(userID, input.RecipientName, input.Phone,
		input.AddressLine1, input.City, input.PostalCode, input.Country)
	if err != nil {
		return nil, err
	}
	address.RecipientName = updated.RecipientName
	address.Phone = updated.Phone
	address.AddressLine1 = updated.AddressLine1
	address.AddressLine2 = input.AddressLine2
	address.City = updated.City
	address.PostalCode = updated.PostalCode
	address.Country = updated.Country
	address.IsDefault = input.IsDefault

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if input.IsDefault {
			if err := repos.AddressRepo().ClearDefault(ctx, userID, address.ID); err != nil {
				return err
			}
		}
		return repos.AddressRepo().Update(ctx, address)
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}

// Delete removes an address owned by the user
func (s *AddressService) Delete(ctx context.Context, userID, addressID uint) error {
	return s.addressRepo.DeleteForUser(ctx, userID, addressID)
}
