package catalog

import (
	"strings"
	"time"

	"github.com/markethub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DiscountType determines how a coupon's value is applied
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// Coupon is a partner-owned discount code
type Coupon struct {
	ID             uint            `gorm:"primaryKey"`
	PartnerID      uint            `gorm:"not null;index:idx_coupons_partner"`
	Code           string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	DiscountType   DiscountType    `gorm:"type:varchar(20);not null"`
	DiscountValue  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MinOrderAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ValidFrom      time.Time       `gorm:"not null"`
	ValidUntil     time.Time       `gorm:"not null"`
	IsActive       bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (Coupon) TableName() string {
	return "coupons"
}

// NewCoupon creates a validated coupon for the given partner
func NewCoupon(partnerID uint, code string, discountType DiscountType, value, minOrder decimal.Decimal, validFrom, validUntil time.Time) (*Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_COUPON_CODE", "Coupon code must be 1-50 characters")
	}
	if err := validateDiscount(discountType, value); err != nil {
		return nil, err
	}
	if minOrder.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COUPON", "Minimum order amount cannot be negative")
	}
	if !validFrom.Before(validUntil) {
		return nil, shared.NewDomainError("INVALID_COUPON", "Valid-from must be before valid-until")
	}

	return &Coupon{
		PartnerID:      partnerID,
		Code:           code,
		DiscountType:   discountType,
		DiscountValue:  value,
		MinOrderAmount: minOrder,
		ValidFrom:      validFrom,
		ValidUntil:     validUntil,
		IsActive:       true,
	}, nil
}

// Update replaces the coupon's discount terms
func (c *Coupon) Update(discountType DiscountType, value, minOrder decimal.Decimal, validFrom, validUntil time.Time, isActive bool) error {
	if err := validateDiscount(discountType, value); err != nil {
		return err
	}
	if minOrder.IsNegative() {
		return shared.NewDomainError("INVALID_COUPON", "Minimum order amount cannot be negative")
	}
	if !validFrom.Before(validUntil) {
		return shared.NewDomainError("INVALID_COUPON", "Valid-from must be before valid-until")
	}

	c.DiscountType = discountType
	c.DiscountValue = value
	c.MinOrderAmount = minOrder
	c.ValidFrom = validFrom
	c.ValidUntil = validUntil
	c.IsActive = isActive
	c.UpdatedAt = time.Now()

	return nil
}

// IsValidAt reports whether the coupon can be applied at the given time
func (c *Coupon) IsValidAt(t time.Time) bool {
	return c.IsActive && !t.Before(c.ValidFrom) && t.Before(c.ValidUntil)
}

func validateDiscount(discountType DiscountType, value decimal.Decimal) error {
	switch discountType {
	case DiscountTypePercentage:
		if !value.IsPositive() || value.GreaterThan(decimal.NewFromInt(100)) {
			return shared.NewDomainError("INVALID_COUPON", "Percentage discount must be between 0 and 100")
		}
	case DiscountTypeFixed:
		if !value.IsPositive() {
			return shared.NewDomainError("INVALID_COUPON", "Fixed discount must be greater than zero")
		}
	default:
		return shared.NewDomainError("INVALID_COUPON", "Unknown discount type")
	}
	return nil
}
