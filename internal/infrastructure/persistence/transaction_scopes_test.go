package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/markethub/backend/internal/application/catalog"
	appidentity "github.com/markethub/backend/internal/application/identity"
	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/shared"
)

func TestGormCatalogScope_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("commits product and image rows together", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormCatalogScope(db)

		var productID uint
		err := scope.Execute(ctx, func(repos appcatalog.TransactionalRepositories) error {
			product, err := catalog.NewProduct(10, "Oak Shelf", decimal.NewFromInt(100))
			if err != nil {
				return err
			}
			if err := repos.ProductRepo().Create(ctx, product); err != nil {
				return err
			}
			productID = product.ID
			return repos.ImageRepo().ReplaceForProduct(ctx, product.ID,
				catalog.BuildProductImages(product.ID, []string{"/uploads/images/10/1/a.png"}))
		})
		require.NoError(t, err)

		found, err := NewGormProductRepository(db).FindByID(ctx, productID)
		require.NoError(t, err)
		require.Len(t, found.Images, 1)
	})

	t.Run("a failing image write reverts the product row", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormCatalogScope(db)

		var productID uint
		err := scope.Execute(ctx, func(repos appcatalog.TransactionalRepositories) error {
			product, err := catalog.NewProduct(10, "Oak Shelf", decimal.NewFromInt(100))
			if err != nil {
				return err
			}
			if err := repos.ProductRepo().Create(ctx, product); err != nil {
				return err
			}
			productID = product.ID
			return errors.New("image insert failed")
		})
		require.Error(t, err)
		require.NotZero(t, productID)

		_, err = NewGormProductRepository(db).FindByID(ctx, productID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		images, err := NewGormProductImageRepository(db).ListByProduct(ctx, productID)
		require.NoError(t, err)
		assert.Empty(t, images)
	})
}

func TestGormIdentityScope_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("a failing partner write reverts the user row", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormIdentityScope(db)

		user, err := identity.NewUser("seller@example.com", "correct horse battery", "Jamie Park", identity.RolePartner)
		require.NoError(t, err)

		err = scope.Execute(ctx, func(repos appidentity.TransactionalRepositories) error {
			if err := repos.UserRepo().Create(ctx, user); err != nil {
				return err
			}
			// An empty company name fails validation after the user insert
			_, err := identity.NewPartner(user.ID, "")
			return err
		})
		require.Error(t, err)

		_, err = NewGormUserRepository(db).FindByEmail(ctx, "seller@example.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("commits user and partner together", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormIdentityScope(db)

		user, err := identity.NewUser("seller@example.com", "correct horse battery", "Jamie Park", identity.RolePartner)
		require.NoError(t, err)

		err = scope.Execute(ctx, func(repos appidentity.TransactionalRepositories) error {
			if err := repos.UserRepo().Create(ctx, user); err != nil {
				return err
			}
			partner, err := identity.NewPartner(user.ID, "Park Woodworks")
			if err != nil {
				return err
			}
			return repos.PartnerRepo().Create(ctx, partner)
		})
		require.NoError(t, err)

		partner, err := NewGormPartnerRepository(db).FindByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Park Woodworks", partner.CompanyName)
	})
}
