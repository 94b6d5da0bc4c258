package catalog

import (
	"context"

	"github.com/markethub/backend/internal/domain/catalog"
)

// TransactionScope provides transactional access to catalog repositories.
// Everything executed inside the scope commits or rolls back atomically,
// which is what keeps a product and its image rows consistent.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides catalog repositories sharing one
// database transaction.
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	ImageRepo() catalog.ProductImageRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where rollback semantics are asserted separately.
type NoOpTransactionScope struct {
	productRepo catalog.ProductRepository
	imageRepo   catalog.ProductImageRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(productRepo catalog.ProductRepository, imageRepo catalog.ProductImageRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{productRepo: productRepo, imageRepo: imageRepo}
}

// Execute runs the function without transactional guarantees
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// ImageRepo returns the product image repository
func (s *NoOpTransactionScope) ImageRepo() catalog.ProductImageRepository {
	return s.imageRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
