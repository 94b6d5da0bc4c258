package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/markethub/backend/internal/domain/cart"
	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

// MockItemRepository is a mock implementation of cart.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Save(ctx context.Context, item *cart.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) FindByIDForUser(ctx context.Context, userID, id uint) (*cart.Item, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Item), args.Error(1)
}

func (m *MockItemRepository) FindByUserAndProduct(ctx context.Context, userID, productID uint) (*cart.Item, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Item), args.Error(1)
}

func (m *MockItemRepository) DeleteForUser(ctx context.Context, userID, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockItemRepository) ListByUser(ctx context.Context, userID uint) ([]cart.Item, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]cart.Item), args.Error(1)
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

func activeProduct(id uint) *catalog.Product {
	return &catalog.Product{
		ID:     id,
		Name:   "Oak Shelf",
		Price:  decimal.NewFromInt(120),
		Status: catalog.ProductStatusActive,
	}
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("new product creates a line", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		productRepo := new(MockProductRepository)
		productRepo.On("FindByID", mock.Anything, uint(7)).Return(activeProduct(7), nil)
		itemRepo.On("FindByUserAndProduct", mock.Anything, uint(5), uint(7)).Return(nil, shared.ErrNotFound)
		itemRepo.On("Save", mock.Anything, mock.AnythingOfType("*cart.Item")).Return(nil)

		item, err := NewService(itemRepo, productRepo).Add(ctx, 5, 7, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, item.Quantity)
		assert.Equal(t, uint(5), item.UserID)
	})

	t.Run("carted product bumps the existing quantity", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		productRepo := new(MockProductRepository)
		productRepo.On("FindByID", mock.Anything, uint(7)).Return(activeProduct(7), nil)
		itemRepo.On("FindByUserAndProduct", mock.Anything, uint(5), uint(7)).
			Return(&cart.Item{ID: 3, UserID: 5, ProductID: 7, Quantity: 2}, nil)
		itemRepo.On("Save", mock.Anything, mock.MatchedBy(func(item *cart.Item) bool {
			return item.ID == 3 && item.Quantity == 5
		})).Return(nil)

		item, err := NewService(itemRepo, productRepo).Add(ctx, 5, 7, 3)
		require.NoError(t, err)
		assert.Equal(t, 5, item.Quantity)
		itemRepo.AssertExpectations(t)
	})

	t.Run("inactive product is not addable", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		productRepo := new(MockProductRepository)
		inactive := activeProduct(7)
		inactive.Status = catalog.ProductStatusInactive
		productRepo.On("FindByID", mock.Anything, uint(7)).Return(inactive, nil)

		_, err := NewService(itemRepo, productRepo).Add(ctx, 5, 7, 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		itemRepo.AssertNotCalled(t, "Save")
	})

	t.Run("zero quantity is rejected", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		productRepo := new(MockProductRepository)
		productRepo.On("FindByID", mock.Anything, uint(7)).Return(activeProduct(7), nil)
		itemRepo.On("FindByUserAndProduct", mock.Anything, uint(5), uint(7)).Return(nil, shared.ErrNotFound)

		_, err := NewService(itemRepo, productRepo).Add(ctx, 5, 7, 0)
		require.Error(t, err)
		itemRepo.AssertNotCalled(t, "Save")
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("joins product details and drops dead lines", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		productRepo := new(MockProductRepository)
		itemRepo.On("ListByUser", mock.Anything, uint(5)).Return([]cart.Item{
			{ID: 1, UserID: 5, ProductID: 7, Quantity: 2},
			{ID: 2, UserID: 5, ProductID: 8, Quantity: 1},
			{ID: 3, UserID: 5, ProductID: 9, Quantity: 1},
		}, nil)
		productRepo.On("FindByID", mock.Anything, uint(7)).Return(activeProduct(7), nil)
		productRepo.On("FindByID", mock.Anything, uint(8)).Return(nil, shared.ErrNotFound)
		inactive := activeProduct(9)
		inactive.Status = catalog.ProductStatusInactive
		productRepo.On("FindByID", mock.Anything, uint(9)).Return(inactive, nil)

		lines, err := NewService(itemRepo, productRepo).List(ctx, 5)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, uint(7), lines[0].Product.ID)
		assert.Equal(t, 2, lines[0].Item.Quantity)
	})

	t.Run("empty cart yields an empty slice", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		productRepo := new(MockProductRepository)
		itemRepo.On("ListByUser", mock.Anything, uint(5)).Return([]cart.Item{}, nil)

		lines, err := NewService(itemRepo, productRepo).List(ctx, 5)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}

func TestService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the quantity", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		itemRepo.On("FindByIDForUser", mock.Anything, uint(5), uint(3)).
			Return(&cart.Item{ID: 3, UserID: 5, ProductID: 7, Quantity: 2}, nil)
		itemRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		item, err := NewService(itemRepo, new(MockProductRepository)).UpdateQuantity(ctx, 5, 3, 6)
		require.NoError(t, err)
		assert.Equal(t, 6, item.Quantity)
	})

	t.Run("another user's line is not reachable", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		itemRepo.On("FindByIDForUser", mock.Anything, uint(5), uint(3)).Return(nil, shared.ErrNotFound)

		_, err := NewService(itemRepo, new(MockProductRepository)).UpdateQuantity(ctx, 5, 3, 6)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
