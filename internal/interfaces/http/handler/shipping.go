package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appshipping "github.com/markethub/backend/internal/application/shipping"
	"github.com/markethub/backend/internal/domain/shipping"
)

// AddressRequest is the payload for shipping address create/update
type AddressRequest struct {
	RecipientName string `json:"recipient_name" binding:"required,min=1,max=100"`
	Phone         string `json:"phone" binding:"required,min=1,max=30"`
	AddressLine1  string `json:"address_line1" binding:"required,min=1,max=255"`
	AddressLine2  string `json:"address_line2" binding:"max=255"`
	City          string `json:"city" binding:"required,min=1,max=100"`
	PostalCode    string `json:"postal_code" binding:"required,min=1,max=20"`
	Country       string `json:"country" binding:"required,min=1,max=100"`
	IsDefault     bool   `json:"is_default"`
}

// AddressResponse is the public representation of a shipping address
type AddressResponse struct {
	ID            uint      `json:"id"`
	RecipientName string    `json:"recipient_name"`
	Phone         string    `json:"phone"`
	AddressLine1  string    `json:"address_line1"`
	AddressLine2  string    `json:"address_line2,omitempty"`
	City          string    `json:"city"`
	PostalCode    string    `json:"postal_code"`
	Country       string    `json:"country"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
}

func toAddressResponse(a *shipping.Address) AddressResponse {
	return AddressResponse{
		ID:            a.ID,
		RecipientName: a.RecipientName,
		Phone:         a.Phone,
		AddressLine1:  a.AddressLine1,
		AddressLine2:  a.AddressLine2,
		City:          a.City,
		PostalCode:    a.PostalCode,
		Country:       a.Country,
		IsDefault:     a.IsDefault,
		CreatedAt:     a.CreatedAt,
	}
}

func (r *AddressRequest) toInput() appshipping.AddressInput {
	return appshipping.AddressInput{
		RecipientName: r.RecipientName,
		Phone:         r.Phone,
		AddressLine1:  r.AddressLine1,
		AddressLine2:  r.AddressLine2,
		City:          r.City,
		PostalCode:    r.PostalCode,
		Country:       r.Country,
		IsDefault:     r.IsDefault,
	}
}

// ShippingHandler handles the user's shipping address endpoints
type ShippingHandler struct {
	BaseHandler
	addressService *appshipping.AddressService
}

// NewShippingHandler creates a new ShippingHandler
func NewShippingHandler(addressService *appshipping.AddressService) *ShippingHandler {
	return &ShippingHandler{addressService: addressService}
}

// List returns the authenticated user's addresses.
func (h *ShippingHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addresses, err := h.addressService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	out := make([]AddressResponse, 0, len(addresses))
	for i := range addresses {
		out = append(out, toAddressResponse(&addresses[i]))
	}
	h.Success(c, out)
}

// Create adds a shipping address for the authenticated user.
func (h *ShippingHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	address, err := h.addressService.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toAddressResponse(address))
}

// Update edits one of the authenticated user's addresses.
func (h *ShippingHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	address, err := h.addressService.Update(c.Request.Context(), userID, addressID, req.toInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toAddressResponse(address))
}

// Delete removes one of the authenticated user's addresses.
func (h *ShippingHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}

	if err := h.addressService.Delete(c.Request.Context(), userID, addressID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
