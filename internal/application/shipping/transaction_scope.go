package shipping

import (
	"context"

	"github.com/markethub/backend/internal/domain/shipping"
)

// TransactionScope provides transactional access to the address
// repository. Default-address exclusivity is enforced by clearing and
// setting the flag inside one transaction.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides shipping repositories sharing one
// database transaction.
type TransactionalRepositories interface {
	AddressRepo() shipping.AddressRepository
}

// NoOpTransactionScope runs the function without a real transaction
type NoOpTransactionScope struct {
	addressRepo shipping.AddressRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repository
func NewNoOpTransactionScope(addressRepo shipping.AddressRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{addressRepo: addressRepo}
}

// Execute runs the function without transactional guarantees
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// AddressRepo returns the address repository
func (s *NoOpTransactionScope) AddressRepo() shipping.AddressRepository {
	return s.addressRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
