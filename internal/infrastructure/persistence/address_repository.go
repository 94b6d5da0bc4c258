package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/domain/shipping"
)

// GormAddressRepository implements AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// Create inserts a new shipping address
func (r *GormAddressRepository) Create(ctx context.Context, address *shipping.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

// Update persists changes to a shipping address
func (r *GormAddressRepository) Update(ctx context.Context, address *shipping.Address) error {
	return r.db.WithContext(ctx).Save(address).Error
}

// FindByIDForUser finds an address by ID scoped to its owner
func (r *GormAddressRepository) FindByIDForUser(ctx context.Context, userID, id uint) (*shipping.Address, error) {
	var address shipping.Address
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &address, nil
}

// DeleteForUser deletes an address scoped to its owner
func (r *GormAddressRepository) DeleteForUser(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&shipping.Address{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListByUser returns all addresses of a user, default first
func (r *GormAddressRepository) ListByUser(ctx context.Context, userID uint) ([]shipping.Address, error) {
	var addresses []shipping.Address
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// ClearDefault drops the default flag from every address of the user
// except the given one; exceptID 0 clears all.
func (r *GormAddressRepository) ClearDefault(ctx context.Context, userID, exceptID uint) error {
	query := r.db.WithContext(ctx).
		Model(&shipping.Address{}).
		Where("user_id = ?", userID)
	if exceptID != 0 {
		query = query.Where("id != ?", exceptID)
	}
	return query.Update("is_default", false).Error
}

var _ shipping.AddressRepository = (*GormAddressRepository)(nil)
