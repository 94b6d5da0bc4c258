package identity

import (
	"context"

	"github.com/markethub/backend/internal/domain/identity"
)

// TransactionScope provides transactional access to identity
// repositories. Partner registration writes the user and the partner
// row atomically through it.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides identity repositories sharing one
// database transaction.
type TransactionalRepositories interface {
	UserRepo() identity.UserRepository
	PartnerRepo() identity.PartnerRepository
}

// NoOpTransactionScope runs the function without a real transaction
type NoOpTransactionScope struct {
	userRepo    identity.UserRepository
	partnerRepo identity.PartnerRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(userRepo identity.UserRepository, partnerRepo identity.PartnerRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{userRepo: userRepo, partnerRepo: partnerRepo}
}

// Execute runs the function without transactional guarantees
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// UserRepo returns the user repository
func (s *NoOpTransactionScope) UserRepo() identity.UserRepository {
	return s.userRepo
}

// PartnerRepo returns the partner repository
func (s *NoOpTransactionScope) PartnerRepo() identity.PartnerRepository {
	return s.partnerRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
