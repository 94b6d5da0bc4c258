package catalog

import "context"

// ProductFilter narrows public product listings
type ProductFilter struct {
	CategoryID *uint
	Query      string // matches name or description
	Limit      int
	Offset     int
}

// ProductRepository provides access to products. The ForPartner
// variants scope every row operation by owner, so a foreign product id
// behaves exactly like a missing one.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindByIDForPartner(ctx context.Context, partnerID, id uint) (*Product, error)
	DeleteForPartner(ctx context.Context, partnerID, id uint) error
	ListByPartner(ctx context.Context, partnerID uint) ([]Product, error)
	// ListActive returns publicly visible products matching the filter
	ListActive(ctx context.Context, filter ProductFilter) ([]Product, error)
}

// ProductImageRepository manages a product's image rows
type ProductImageRepository interface {
	// ReplaceForProduct deletes all image rows of the product and
	// inserts the given ones. Caller must run it inside the same
	// transaction as the product write.
	ReplaceForProduct(ctx context.Context, productID uint, images []ProductImage) error
	ListByProduct(ctx context.Context, productID uint) ([]ProductImage, error)
}

// CategoryRepository provides read access to the public category tree
type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
}

// CouponRepository provides partner-scoped access to coupons
type CouponRepository interface {
	Create(ctx context.Context, coupon *Coupon) error
	Update(ctx context.Context, coupon *Coupon) error
	FindByIDForPartner(ctx context.Context, partnerID, id uint) (*Coupon, error)
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	DeleteForPartner(ctx context.Context, partnerID, id uint) error
	ListByPartner(ctx context.Context, partnerID uint) ([]Coupon, error)
}
