package persistence

import (
	"context"

	"gorm.io/gorm"

	appcatalog "github.com/markethub/backend/internal/application/catalog"
	appidentity "github.com/markethub/backend/internal/application/identity"
	appshipping "github.com/markethub/backend/internal/application/shipping"
	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/shipping"
)

// GormCatalogScope implements the catalog TransactionScope using GORM
// transactions.
type GormCatalogScope struct {
	db *gorm.DB
}

// NewGormCatalogScope creates a new GormCatalogScope
func NewGormCatalogScope(db *gorm.DB) *GormCatalogScope {
	return &GormCatalogScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormCatalogScope) Execute(ctx context.Context, fn func(repos appcatalog.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCatalogRepositories{tx: tx})
	})
}

type gormCatalogRepositories struct {
	tx *gorm.DB
}

func (r *gormCatalogRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormCatalogRepositories) ImageRepo() catalog.ProductImageRepository {
	return NewGormProductImageRepository(r.tx)
}

var _ appcatalog.TransactionScope = (*GormCatalogScope)(nil)
var _ appcatalog.TransactionalRepositories = (*gormCatalogRepositories)(nil)

// GormShippingScope implements the shipping TransactionScope using
// GORM transactions.
type GormShippingScope struct {
	db *gorm.DB
}

// NewGormShippingScope creates a new GormShippingScope
func NewGormShippingScope(db *gorm.DB) *GormShippingScope {
	return &GormShippingScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormShippingScope) Execute(ctx context.Context, fn func(repos appshipping.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormShippingRepositories{tx: tx})
	})
}

type gormShippingRepositories struct {
	tx *gorm.DB
}

func (r *gormShippingRepositories) AddressRepo() shipping.AddressRepository {
	return NewGormAddressRepository(r.tx)
}

var _ appshipping.TransactionScope = (*GormShippingScope)(nil)
var _ appshipping.TransactionalRepositories = (*gormShippingRepositories)(nil)

// GormIdentityScope implements the identity TransactionScope using
// GORM transactions.
type GormIdentityScope struct {
	db *gorm.DB
}

// NewGormIdentityScope creates a new GormIdentityScope
func NewGormIdentityScope(db *gorm.DB) *GormIdentityScope {
	return &GormIdentityScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormIdentityScope) Execute(ctx context.Context, fn func(repos appidentity.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormIdentityRepositories{tx: tx})
	})
}

type gormIdentityRepositories struct {
	tx *gorm.DB
}

func (r *gormIdentityRepositories) UserRepo() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

func (r *gormIdentityRepositories) PartnerRepo() identity.PartnerRepository {
	return NewGormPartnerRepository(r.tx)
}

var _ appidentity.TransactionScope = (*GormIdentityScope)(nil)
var _ appidentity.TransactionalRepositories = (*gormIdentityRepositories)(nil)
