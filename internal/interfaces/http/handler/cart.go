package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appcart "github.com/markethub/backend/internal/application/cart"
	"github.com/markethub/backend/internal/domain/cart"
)

// AddCartItemRequest is the payload for adding a product to the cart
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest is the payload for changing an item's quantity
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CartLineResponse is one cart line with a snapshot of its product
type CartLineResponse struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
	ImageURL    string          `json:"image_url,omitempty"`
}

// CartItemResponse is the bare cart row returned by writes
type CartItemResponse struct {
	ID        uint `json:"id"`
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

func toCartItemResponse(item *cart.Item) CartItemResponse {
	return CartItemResponse{ID: item.ID, ProductID: item.ProductID, Quantity: item.Quantity}
}

func toCartLineResponse(line *appcart.Line) CartLineResponse {
	unit := line.Product.EffectivePrice()
	resp := CartLineResponse{
		ID:          line.Item.ID,
		ProductID:   line.Product.ID,
		ProductName: line.Product.Name,
		UnitPrice:   unit,
		Quantity:    line.Item.Quantity,
		LineTotal:   unit.Mul(decimal.NewFromInt(int64(line.Item.Quantity))),
	}
	if primary := line.Product.PrimaryImage(); primary != nil {
		resp.ImageURL = primary.ImageURL
	}
	return resp
}

// CartHandler handles the authenticated user's cart endpoints
type CartHandler struct {
	BaseHandler
	cartService *appcart.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *appcart.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// List returns the user's cart lines with current product data.
func (h *CartHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	lines, err := h.cartService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	out := make([]CartLineResponse, 0, len(lines))
	for i := range lines {
		out = append(out, toCartLineResponse(&lines[i]))
	}
	h.Success(c, out)
}

// Add puts a product into the cart, merging with an existing line for
// the same product.
func (h *CartHandler) Add(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.cartService.Add(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toCartItemResponse(item))
}

// Update changes the quantity of one cart line.
func (h *CartHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart item ID")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.cartService.UpdateQuantity(c.Request.Context(), userID, itemID, req.Quantity)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCartItemResponse(item))
}

// Delete removes one cart line.
func (h *CartHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart item ID")
		return
	}

	if err := h.cartService.Remove(c.Request.Context(), userID, itemID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
