package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/storage"
)

// MockPartnerRepository is a mock implementation of identity.PartnerRepository
type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) Create(ctx context.Context, partner *identity.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

func (m *MockPartnerRepository) FindByID(ctx context.Context, id uint) (*identity.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindByUserID(ctx context.Context, userID uint) (*identity.Partner, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Partner), args.Error(1)
}

func (m *MockPartnerRepository) Update(ctx context.Context, partner *identity.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForPartner(ctx context.Context, partnerID, id uint) (*catalog.Product, error) {
	args := m.Called(ctx, partnerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) DeleteForPartner(ctx context.Context, partnerID, id uint) error {
	args := m.Called(ctx, partnerID, id)
	return args.Error(0)
}

func (m *MockProductRepository) ListByPartner(ctx context.Context, partnerID uint) ([]catalog.Product, error) {
	args := m.Called(ctx, partnerID)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ListActive(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

// MockProductImageRepository is a mock implementation of catalog.ProductImageRepository
type MockProductImageRepository struct {
	mock.Mock
}

func (m *MockProductImageRepository) ReplaceForProduct(ctx context.Context, productID uint, images []catalog.ProductImage) error {
	args := m.Called(ctx, productID, images)
	return args.Error(0)
}

func (m *MockProductImageRepository) ListByProduct(ctx context.Context, productID uint) ([]catalog.ProductImage, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]catalog.ProductImage), args.Error(1)
}

// MockImageFinalizer is a mock implementation of ImageFinalizer
type MockImageFinalizer struct {
	mock.Mock
}

func (m *MockImageFinalizer) Finalize(ctx context.Context, partnerID, productID uint, tokens []string) ([]storage.FinalizedImage, error) {
	args := m.Called(ctx, partnerID, productID, tokens)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.FinalizedImage), args.Error(1)
}

func (m *MockImageFinalizer) Discard(urls []string) {
	m.Called(urls)
}

func (m *MockImageFinalizer) RemoveProductDir(partnerID, productID uint) error {
	args := m.Called(partnerID, productID)
	return args.Error(0)
}

type productFixture struct {
	partnerRepo *MockPartnerRepository
	productRepo *MockProductRepository
	imageRepo   *MockProductImageRepository
	finalizer   *MockImageFinalizer
	service     *ProductService
}

func newProductFixture() *productFixture {
	f := &productFixture{
		partnerRepo: new(MockPartnerRepository),
		productRepo: new(MockProductRepository),
		imageRepo:   new(MockProductImageRepository),
		finalizer:   new(MockImageFinalizer),
	}
	scope := NewNoOpTransactionScope(f.productRepo, f.imageRepo)
	f.service = NewProductService(f.partnerRepo, f.productRepo, scope, f.finalizer, zap.NewNop())
	return f
}

func (f *productFixture) expectPartner(userID, partnerID uint) {
	f.partnerRepo.On("FindByUserID", mock.Anything, userID).
		Return(&identity.Partner{ID: partnerID, UserID: userID, Status: identity.PartnerStatusApproved}, nil)
}

func stagedRef(t *testing.T, token string) catalog.ImageRef {
	t.Helper()
	ref, err := catalog.NewStagedRef(token)
	require.NoError(t, err)
	return ref
}

func committedRef(t *testing.T, url string) catalog.ImageRef {
	t.Helper()
	ref, err := catalog.NewCommittedRef(url)
	require.NoError(t, err)
	return ref
}

func validInput() ProductInput {
	return ProductInput{
		Name:  "Oak Shelf",
		Price: decimal.NewFromInt(120),
		Stock: 4,
	}
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("fails with NOT_PARTNER when user has no seller profile", func(t *testing.T) {
		f := newProductFixture()
		f.partnerRepo.On("FindByUserID", mock.Anything, uint(1)).Return(nil, shared.ErrNotFound)

		_, err := f.service.Create(ctx, 1, validInput())
		assert.ErrorIs(t, err, shared.ErrNotPartner)
		f.productRepo.AssertNotCalled(t, "Create")
	})

	t.Run("creates product without touching images when field absent", func(t *testing.T) {
		f := newProductFixture()
		f.expectPartner(1, 10)
		f.productRepo.On("Create", mock.Anything, mock.AnythingOfType("*catalog.Product")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*catalog.Product).ID = 77
			}).Return(nil)

		product, err := f.service.Create(ctx, 1, validInput())
		require.NoError(t, err)
		assert.Equal(t, uint(77), product.ID)
		assert.Equal(t, uint(10), product.PartnerID)

		f.imageRepo.AssertNotCalled(t, "ReplaceForProduct")
		f.finalizer.AssertNotCalled(t, "Finalize")
	})

	t.Run("finalizes staged images inside the write", func(t *testing.T) {
		f := newProductFixture()
		f.expectPartner(1, 10)
		f.productRepo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				args.Get(1).(*catalog.Product).ID = 77
			}).Return(nil)
		f.finalizer.On("Finalize", mock.Anything, uint(10), uint(77), []string{"t1.png", "t2.png"}).
			Return([]storage.FinalizedImage{
				{Token: "t1.png", URL: "/uploads/images/10/77/a.png"},
				{Token: "t2.png", URL: "/uploads/images/10/77/b.png"},
			}, nil)
		f.imageRepo.On("ReplaceForProduct", mock.Anything, uint(77), mock.Anything).Return(nil)

		input := validInput()
		input.Images = []catalog.ImageRef{stagedRef(t, "t1.png"), stagedRef(t, "t2.png")}

		product, err := f.service.Create(ctx, 1, input)
		require.NoError(t, err)
		require.Len(t, product.Images, 2)
		assert.Equal(t, "/uploads/images/10/77/a.png", product.Images[0].ImageURL)
		assert.Equal(t, 0, product.Images[0].DisplayOrder)
		assert.True(t, product.Images[0].IsPrimary)
		assert.Equal(t, 1, product.Images[1].DisplayOrder)
		assert.False(t, product.Images[1].IsPrimary)
	})

	t.Run("empty image list clears rows", func(t *testing.T) {
		f := newProductFixture()
		f.expectPartner(1, 10)
		f.productRepo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				args.Get(1).(*catalog.Product).ID = 77
			}).Return(nil)
		f.imageRepo.On("ReplaceForProduct", mock.Anything, uint(77), mock.MatchedBy(func(images []catalog.ProductImage) bool {
			return len(images) == 0
		})).Return(nil)

		input := validInput()
		input.Images = []catalog.ImageRef{}

		product, err := f.service.Create(ctx, 1, input)
		require.NoError(t, err)
		assert.Empty(t, product.Images)
		f.finalizer.AssertNotCalled(t, "Finalize")
		f.imageRepo.AssertExpectations(t)
	})

	t.Run("discards freshly finalized files when the row write fails", func(t *testing.T) {
		f := newProductFixture()
		f.expectPartner(1, 10)
		f.productRepo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				args.Get(1).(*catalog.Product).ID = 77
			}).Return(nil)
		f.finalizer.On("Finalize", mock.Anything, uint(10), uint(77), []string{"t1.png"}).
			Return([]storage.FinalizedImage{{Token: "t1.png", URL: "/uploads/images/10/77/a.png"}}, nil)
		f.imageRepo.On("ReplaceForProduct", mock.Anything, uint(77), mock.Anything).
			Return(errors.New("connection reset"))
		f.finalizer.On("Discard", []string{"/uploads/images/10/77/a.png"}).Return()

		input := validInput()
		input.Images = []catalog.ImageRef{stagedRef(t, "t1.png"), committedRef(t, "/uploads/images/10/50/old.png")}

		_, err := f.service.Create(ctx, 1, input)
		require.Error(t, err)

		// Only the file moved by this request is compensated; the
		// previously committed URL stays on disk.
		f.finalizer.AssertCalled(t, "Discard", []string{"/uploads/images/10/77/a.png"})
	})

	t.Run("rejects discount at or above price", func(t *testing.T) {
		f := newProductFixture()
		f.expectPartner(1, 10)

		input := validInput()
		discount := decimal.NewFromInt(120)
		input.DiscountPrice = &discount

		_, err := f.service.Create(ctx, 1, input)
		require.Error(t, err)
		f.productRepo.AssertNotCalled(t, "Create")
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()

	existing := func() *catalog.Product {
		return &catalog.Product{
			ID:        77,
			PartnerID: 10,
			Name:      "Oak Shelf",
			Price:     decimal.NewFromInt(120),
			Status:    catalog.ProductStatusActive,
		}
	}

	t.Run("ownership miss surfaces as not found", func(t *testing.T) {
		f := newProductFixture()
		f.expectPartner(1, 10)
		f.productRepo.On("FindByIDForPartner", mock.Anything, uint(10), uint(99)).
			Return(nil, shared.ErrNotFound)

		_, err := f.service.Update(ctx, 1, 99, validInput())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("nil images leaves stored rows untouched", func(t *testing.T) {
		f := newProductFixture()
		f.expectPartner(1, 10)
		f.productRepo.On("FindByIDForPartner", mock.Anything, uint(10), uint(77)).Return(existing(), nil)
		f.productRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		input := validInput()
		input.Name = "Oak Shelf XL"

		product, err := f.service.Update(ctx, 1, 77, input)
		require.NoError(t, err)
		assert.Equal(t, "Oak Shelf XL", product.Name)

		f.imageRepo.AssertNotCalled(t, "ReplaceForProduct")
		f.finalizer.AssertNotCalled(t, "Finalize")
	})

	t.Run("kept images stay first and finalized ones are appended", func(t *testing.T) {
		f := newProductFixture()
		f.expectPartner(1, 10)
		f.productRepo.On("FindByIDForPartner", mock.Anything, uint(10), uint(77)).Return(existing(), nil)
		f.productRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
		f.finalizer.On("Finalize", mock.Anything, uint(10), uint(77), []string{"t1.png", "t2.png"}).
			Return([]storage.FinalizedImage{
				{Token: "t1.png", URL: "/uploads/images/10/77/new1.png"},
				{Token: "t2.png", URL: "/uploads/images/10/77/new2.png"},
			}, nil)
		f.imageRepo.On("ReplaceForProduct", mock.Anything, uint(77), mock.Anything).Return(nil)

		input := validInput()
		input.Images = []catalog.ImageRef{
			stagedRef(t, "t1.png"),
			committedRef(t, "/uploads/images/10/77/keep.png"),
			stagedRef(t, "t2.png"),
		}

		product, err := f.service.Update(ctx, 1, 77, input)
		require.NoError(t, err)
		require.Len(t, product.Images, 3)
		assert.Equal(t, "/uploads/images/10/77/keep.png", product.Images[0].ImageURL)
		assert.Equal(t, "/uploads/images/10/77/new1.png", product.Images[1].ImageURL)
		assert.Equal(t, "/uploads/images/10/77/new2.png", product.Images[2].ImageURL)
		for i, img := range product.Images {
			assert.Equal(t, i, img.DisplayOrder)
			assert.Equal(t, i == 0, img.IsPrimary)
		}
	})

	t.Run("a kept image stays primary when new uploads arrive", func(t *testing.T) {
		f := newProductFixture()
		f.expectPartner(1, 10)
		f.productRepo.On("FindByIDForPartner", mock.Anything, uint(10), uint(77)).Return(existing(), nil)
		f.productRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
		f.finalizer.On("Finalize", mock.Anything, uint(10), uint(77), []string{"t1.png"}).
			Return([]storage.FinalizedImage{{Token: "t1.png", URL: "/uploads/images/10/77/new.png"}}, nil)
		f.imageRepo.On("ReplaceForProduct", mock.Anything, uint(77), mock.Anything).Return(nil)

		input := validInput()
		input.Images = []catalog.ImageRef{
			stagedRef(t, "t1.png"),
			committedRef(t, "/uploads/images/10/77/keep.png"),
		}

		product, err := f.service.Update(ctx, 1, 77, input)
		require.NoError(t, err)
		require.Len(t, product.Images, 2)
		assert.Equal(t, "/uploads/images/10/77/keep.png", product.Images[0].ImageURL)
		assert.True(t, product.Images[0].IsPrimary)
		assert.Equal(t, "/uploads/images/10/77/new.png", product.Images[1].ImageURL)
		assert.False(t, product.Images[1].IsPrimary)
	})

	t.Run("tokens lost during finalize drop out of the result", func(t *testing.T) {
		f := newProductFixture()
		f.expectPartner(1, 10)
		f.productRepo.On("FindByIDForPartner", mock.Anything, uint(10), uint(77)).Return(existing(), nil)
		f.productRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
		f.finalizer.On("Finalize", mock.Anything, uint(10), uint(77), []string{"gone.png", "ok.png"}).
			Return([]storage.FinalizedImage{{Token: "ok.png", URL: "/uploads/images/10/77/ok.png"}}, nil)
		f.imageRepo.On("ReplaceForProduct", mock.Anything, uint(77), mock.Anything).Return(nil)

		input := validInput()
		input.Images = []catalog.ImageRef{stagedRef(t, "gone.png"), stagedRef(t, "ok.png")}

		product, err := f.service.Update(ctx, 1, 77, input)
		require.NoError(t, err)
		require.Len(t, product.Images, 1)
		assert.Equal(t, "/uploads/images/10/77/ok.png", product.Images[0].ImageURL)
		assert.True(t, product.Images[0].IsPrimary)
	})
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes row then image directory", func(t *testing.T) {
		f := newProductFixture()
		f.expectPartner(1, 10)
		f.productRepo.On("DeleteForPartner", mock.Anything, uint(10), uint(77)).Return(nil)
		f.finalizer.On("RemoveProductDir", uint(10), uint(77)).Return(nil)

		require.NoError(t, f.service.Delete(ctx, 1, 77))
		f.finalizer.AssertExpectations(t)
	})

	t.Run("propagates ownership miss and keeps files", func(t *testing.T) {
		f := newProductFixture()
		f.expectPartner(1, 10)
		f.productRepo.On("DeleteForPartner", mock.Anything, uint(10), uint(77)).Return(shared.ErrNotFound)

		err := f.service.Delete(ctx, 1, 77)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		f.finalizer.AssertNotCalled(t, "RemoveProductDir")
	})

	t.Run("directory cleanup failure does not fail the delete", func(t *testing.T) {
		f := newProductFixture()
		f.expectPartner(1, 10)
		f.productRepo.On("DeleteForPartner", mock.Anything, uint(10), uint(77)).Return(nil)
		f.finalizer.On("RemoveProductDir", uint(10), uint(77)).Return(errors.New("permission denied"))

		assert.NoError(t, f.service.Delete(ctx, 1, 77))
	})
}
