package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/shared"
)

// CouponInput carries a coupon create or update request
type CouponInput struct {
	Code           string
	DiscountType   catalog.DiscountType
	DiscountValue  decimal.Decimal
	MinOrderAmount decimal.Decimal
	ValidFrom      time.Time
	ValidUntil     time.Time
	IsActive       bool
}

// CouponService manages partner-owned discount codes
type CouponService struct {
	partnerRepo identity.PartnerRepository
	couponRepo  catalog.CouponRepository
	logger      *zap.Logger
}

// NewCouponService creates a new CouponService
func NewCouponService(partnerRepo identity.PartnerRepository, couponRepo catalog.CouponRepository, logger *zap.Logger) *CouponService {
	return &CouponService{partnerRepo: partnerRepo, couponRepo: couponRepo, logger: logger}
}

func (s *CouponService) resolvePartner(ctx context.Context, userID uint) (*identity.Partner, error) {
	partner, err := s.partnerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotPartner
		}
		return nil, err
	}
	return partner, nil
}

// Create creates a coupon for the calling user's partner
func (s *CouponService) Create(ctx context.Context, userID uint, input CouponInput) (*catalog.Coupon, error) {
	partner, err := s.resolvePartner(ctx, userID)
	if err != nil {
		return nil, err
	}

	coupon, err := catalog.NewCoupon(partner.ID, input.Code, input.DiscountType,
		input.DiscountValue, input.MinOrderAmount, input.ValidFrom, input.ValidUntil)
	if err != nil {
		return nil, err
	}
	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}

	s.logger.Info("Coupon created",
		zap.Uint("partner_id", partner.ID),
		zap.Uint("coupon_id", coupon.ID),
		zap.String("code", coupon.Code),
	)
	return coupon, nil
}

// Update rewrites a coupon owned by the calling user's partner. The
// code itself is immutable once issued.
func (s *CouponService) Update(ctx context.Context, userID, couponID uint, input CouponInput) (*catalog.Coupon, error) {
	partner, err := s.resolvePartner(ctx, userID)
	if err != nil {
		return nil, err
	}

	coupon, err := s.couponRepo.FindByIDForPartner(ctx, partner.ID, couponID)
	if err != nil {
		return nil, err
	}
	if err := coupon.Update(input.DiscountType, input.DiscountValue, input.MinOrderAmount,
		input.ValidFrom, input.ValidUntil, input.IsActive); err != nil {
		return nil, err
	}
	if err := s.couponRepo.Update(ctx, coupon); err != nil {
		return nil, err
	}

	return coupon, nil
}

// Delete removes a coupon owned by the calling user's partner
func (s *CouponService) Delete(ctx context.Context, userID, couponID uint) error {
	partner, err := s.resolvePartner(ctx, userID)
	if err != nil {
		return err
	}
	return s.couponRepo.DeleteForPartner(ctx, partner.ID, couponID)
}

// ListOwn lists the calling user's partner coupons
func (s *CouponService) ListOwn(ctx context.Context, userID uint) ([]catalog.Coupon, error) {
	partner, err := s.resolvePartner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.couponRepo.ListByPartner(ctx, partner.ID)
}
