package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus tracks an order through fulfilment
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a buyer's purchase. Partners see orders through their items
// only; the order itself belongs to the buyer.
type Order struct {
	ID                uint            `gorm:"primaryKey"`
	UserID            uint            `gorm:"not null;index:idx_orders_user"`
	ShippingAddressID uint            `gorm:"not null"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status            OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one product line of an order, denormalized at purchase
// time so later catalog edits do not rewrite history.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey"`
	OrderID     uint            `gorm:"not null;index:idx_order_items_order"`
	ProductID   uint            `gorm:"not null;index:idx_order_items_product"`
	PartnerID   uint            `gorm:"not null;index:idx_order_items_partner"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity    int             `gorm:"not null"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}
