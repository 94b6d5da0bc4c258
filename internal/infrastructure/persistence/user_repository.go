package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/shared"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID finds a user by its ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email, case-insensitively
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update persists changes to a user
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

var _ identity.UserRepository = (*GormUserRepository)(nil)

// GormPartnerRepository implements PartnerRepository using GORM
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewGormPartnerRepository creates a new GormPartnerRepository
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// Create inserts a new partner profile
func (r *GormPartnerRepository) Create(ctx context.Context, partner *identity.Partner) error {
	if err := r.db.WithContext(ctx).Create(partner).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID finds a partner by its ID
func (r *GormPartnerRepository) FindByID(ctx context.Context, id uint) (*identity.Partner, error) {
	var partner identity.Partner
	if err := r.db.WithContext(ctx).First(&partner, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &partner, nil
}

// FindByUserID finds the partner profile owned by a user account
func (r *GormPartnerRepository) FindByUserID(ctx context.Context, userID uint) (*identity.Partner, error) {
	var partner identity.Partner
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&partner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &partner, nil
}

// Update persists changes to a partner profile
func (r *GormPartnerRepository) Update(ctx context.Context, partner *identity.Partner) error {
	return r.db.WithContext(ctx).Save(partner).Error
}

var _ identity.PartnerRepository = (*GormPartnerRepository)(nil)
