package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

// GormCouponRepository implements CouponRepository using GORM
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GormCouponRepository
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// Create inserts a new coupon
func (r *GormCouponRepository) Create(ctx context.Context, coupon *catalog.Coupon) error {
	if err := r.db.WithContext(ctx).Create(coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update persists changes to a coupon
func (r *GormCouponRepository) Update(ctx context.Context, coupon *catalog.Coupon) error {
	return r.db.WithContext(ctx).Save(coupon).Error
}

// FindByIDForPartner finds a coupon by ID scoped to its owner
func (r *GormCouponRepository) FindByIDForPartner(ctx context.Context, partnerID, id uint) (*catalog.Coupon, error) {
	var coupon catalog.Coupon
	if err := r.db.WithContext(ctx).
		Where("partner_id = ? AND id = ?", partnerID, id).
		First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

// FindByCode finds a coupon by its code
func (r *GormCouponRepository) FindByCode(ctx context.Context, code string) (*catalog.Coupon, error) {
	var coupon catalog.Coupon
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

// DeleteForPartner deletes a coupon scoped to its owner
func (r *GormCouponRepository) DeleteForPartner(ctx context.Context, partnerID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("partner_id = ? AND id = ?", partnerID, id).
		Delete(&catalog.Coupon{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListByPartner returns all coupons of a partner, newest first
func (r *GormCouponRepository) ListByPartner(ctx context.Context, partnerID uint) ([]catalog.Coupon, error) {
	var coupons []catalog.Coupon
	if err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("created_at DESC").
		Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

var _ catalog.CouponRepository = (*GormCouponRepository)(nil)
