package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appcatalog "github.com/markethub/backend/internal/application/catalog"
	"github.com/markethub/backend/internal/domain/catalog"
)

// CouponRequest is the payload for partner coupon create/update
type CouponRequest struct {
	Code           string    `json:"code" binding:"required,min=1,max=50"`
	DiscountType   string    `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue  float64   `json:"discount_value" binding:"required,gt=0"`
	MinOrderAmount float64   `json:"min_order_amount" binding:"gte=0"`
	ValidFrom      time.Time `json:"valid_from" binding:"required"`
	ValidUntil     time.Time `json:"valid_until" binding:"required"`
	IsActive       *bool     `json:"is_active"`
}

// CouponResponse is the public representation of a coupon
type CouponResponse struct {
	ID             uint            `json:"id"`
	PartnerID      uint            `json:"partner_id"`
	Code           string          `json:"code"`
	DiscountType   string          `json:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	MinOrderAmount decimal.Decimal `json:"min_order_amount"`
	ValidFrom      time.Time       `json:"valid_from"`
	ValidUntil     time.Time       `json:"valid_until"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
}

func toCouponResponse(cp *catalog.Coupon) CouponResponse {
	return CouponResponse{
		ID:             cp.ID,
		PartnerID:      cp.PartnerID,
		Code:           cp.Code,
		DiscountType:   string(cp.DiscountType),
		DiscountValue:  cp.DiscountValue,
		MinOrderAmount: cp.MinOrderAmount,
		ValidFrom:      cp.ValidFrom,
		ValidUntil:     cp.ValidUntil,
		IsActive:       cp.IsActive,
		CreatedAt:      cp.CreatedAt,
	}
}

func (r *CouponRequest) toInput() appcatalog.CouponInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return appcatalog.CouponInput{
		Code:           r.Code,
		DiscountType:   catalog.DiscountType(r.DiscountType),
		DiscountValue:  decimal.NewFromFloat(r.DiscountValue),
		MinOrderAmount: decimal.NewFromFloat(r.MinOrderAmount),
		ValidFrom:      r.ValidFrom,
		ValidUntil:     r.ValidUntil,
		IsActive:       active,
	}
}

// CouponHandler handles partner-scoped coupon endpoints
type CouponHandler struct {
	BaseHandler
	couponService *appcatalog.CouponService
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(couponService *appcatalog.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// Create creates a coupon for the authenticated partner.
func (h *CouponHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	coupon, err := h.couponService.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toCouponResponse(coupon))
}

// Update edits a coupon owned by the authenticated partner. The code is
// immutable after creation.
func (h *CouponHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	couponID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	coupon, err := h.couponService.Update(c.Request.Context(), userID, couponID, req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCouponResponse(coupon))
}

// List returns all coupons owned by the authenticated partner.
func (h *CouponHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	coupons, err := h.couponService.ListOwn(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	out := make([]CouponResponse, 0, len(coupons))
	for i := range coupons {
		out = append(out, toCouponResponse(&coupons[i]))
	}
	h.Success(c, out)
}

// Delete removes a coupon owned by the authenticated partner.
func (h *CouponHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	couponID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	if err := h.couponService.Delete(c.Request.Context(), userID, couponID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
