package catalog

import (
	"time"

	"github.com/markethub/backend/internal/domain/shared"
)

// ProductImage is one stored image row of a product. DisplayOrder is
// dense (0..n-1) and exactly the image at order 0 carries IsPrimary.
type ProductImage struct {
	ID           uint   `gorm:"primaryKey"`
	ProductID    uint   `gorm:"not null;index:idx_product_images_product"`
	ImageURL     string `gorm:"type:varchar(500);not null"`
	DisplayOrder int    `gorm:"not null;default:0"`
	IsPrimary    bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (ProductImage) TableName() string {
	return "product_images"
}

// ImageRefKind discriminates the two ways a request can reference an image
type ImageRefKind string

const (
	// ImageRefStaged references a file sitting in the temp area by its
	// staging token; it still has to be finalized.
	ImageRefStaged ImageRefKind = "staged"
	// ImageRefCommitted references an already finalized image by its
	// public URL.
	ImageRefCommitted ImageRefKind = "committed"
)

// ImageRef is a tagged reference to either a staged upload or an
// already committed image. Exactly one of Token and URL is set,
// matching Kind.
type ImageRef struct {
	Kind  ImageRefKind
	Token string
	URL   string
}

// NewStagedRef builds a reference to a staged upload
func NewStagedRef(token string) (ImageRef, error) {
	if token == "" {
		return ImageRef{}, shared.NewDomainError("INVALID_IMAGE_REF", "Staging token cannot be empty")
	}
	return ImageRef{Kind: ImageRefStaged, Token: token}, nil
}

// NewCommittedRef builds a reference to an already stored image
func NewCommittedRef(url string) (ImageRef, error) {
	if url == "" {
		return ImageRef{}, shared.NewDomainError("INVALID_IMAGE_REF", "Image URL cannot be empty")
	}
	return ImageRef{Kind: ImageRefCommitted, URL: url}, nil
}

// BuildProductImages converts an ordered URL list into image rows with
// dense display order and the primary flag on the first entry.
func BuildProductImages(productID uint, urls []string) []ProductImage {
	images := make([]ProductImage, 0, len(urls))
	for i, url := range urls {
		images = append(images, ProductImage{
			ProductID:    productID,
			ImageURL:     url,
			DisplayOrder: i,
			IsPrimary:    i == 0,
		})
	}
	return images
}
