package catalog

import (
	"time"

	"github.com/markethub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the lifecycle status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
	ProductStatusSoldOut  ProductStatus = "sold_out"
)

// Product is a catalog listing owned by a partner.
// It is the aggregate root for product-related operations.
type Product struct {
	ID            uint             `gorm:"primaryKey"`
	PartnerID     uint             `gorm:"not null;index:idx_products_partner"`
	CategoryID    *uint            `gorm:"index"`
	Name          string           `gorm:"type:varchar(200);not null"`
	Description   string           `gorm:"type:text"`
	Price         decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	DiscountPrice *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Stock         int              `gorm:"not null;default:0"`
	Status        ProductStatus    `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Images []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product owned by the given partner
func NewProduct(partnerID uint, name string, price decimal.Decimal) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if !price.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be greater than zero")
	}

	return &Product{
		PartnerID: partnerID,
		Name:      name,
		Price:     price,
		Status:    ProductStatusActive,
	}, nil
}

// Update replaces the product's editable fields
func (p *Product) Update(name, description string, price decimal.Decimal) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Price must be greater than zero")
	}

	p.Name = name
	p.Description = description
	p.Price = price
	p.UpdatedAt = time.Now()

	return nil
}

// SetDiscountPrice sets an optional discounted price; it must undercut the list price
func (p *Product) SetDiscountPrice(price *decimal.Decimal) error {
	if price != nil {
		if !price.IsPositive() {
			return shared.NewDomainError("INVALID_PRICE", "Discount price must be greater than zero")
		}
		if price.GreaterThanOrEqual(p.Price) {
			return shared.NewDomainError("INVALID_PRICE", "Discount price must be lower than the regular price")
		}
	}
	p.DiscountPrice = price
	return nil
}

// SetStock sets the available stock count
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Stock = stock
	return nil
}

// EffectivePrice returns the discount price when set, otherwise the list price
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// IsActive returns true if the product is visible in the public catalog
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// PrimaryImage returns the image flagged as primary, or nil when the
// product has no images
func (p *Product) PrimaryImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	return nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
