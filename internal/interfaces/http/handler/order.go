package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apporder "github.com/markethub/backend/internal/application/order"
	"github.com/markethub/backend/internal/domain/order"
)

// OrderItemResponse is one order line belonging to the partner
type OrderItemResponse struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// OrderResponse is a partner's view of an order: only the lines that
// belong to the partner are included.
type OrderResponse struct {
	ID          uint                `json:"id"`
	Status      string              `json:"status"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Items       []OrderItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		})
	}
	return OrderResponse{
		ID:          o.ID,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
		Items:       items,
		CreatedAt:   o.CreatedAt,
	}
}

// OrderHandler handles the partner order listing endpoint
type OrderHandler struct {
	BaseHandler
	orderService *apporder.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *apporder.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListPartnerOrders returns orders containing the partner's products.
func (h *OrderHandler) ListPartnerOrders(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := h.orderService.ListForPartner(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	h.Success(c, out)
}
