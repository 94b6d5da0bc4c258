package cart

import (
	"time"

	"github.com/markethub/backend/internal/domain/shared"
)

// Item is one product line in a user's cart. A (user, product) pair is
// unique; adding the same product again bumps the quantity.
type Item struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_cart_user_product,priority:1"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_cart_user_product,priority:2"`
	Quantity  int  `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "cart_items"
}

// NewItem creates a cart line for the given user and product
func NewItem(userID, productID uint, quantity int) (*Item, error) {
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	return &Item{UserID: userID, ProductID: productID, Quantity: quantity}, nil
}

// SetQuantity replaces the line quantity
func (i *Item) SetQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	i.Quantity = quantity
	i.UpdatedAt = time.Now()
	return nil
}
