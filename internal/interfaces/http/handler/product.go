package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appcatalog "github.com/markethub/backend/internal/application/catalog"
	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

var (
	errBothImageFields = shared.NewDomainError("INVALID_IMAGE_REF", "Image entry cannot set both temp_filename and url")
	errNoImageFields   = shared.NewDomainError("INVALID_IMAGE_REF", "Image entry must set temp_filename or url")
)

// ImageEntry references one image in a product payload. Exactly one of
// the two fields must be set: temp_filename for a freshly staged upload,
// url for an image that is already stored.
type ImageEntry struct {
	TempFilename *string `json:"temp_filename"`
	URL          *string `json:"url"`
}

// ProductRequest is the payload for partner product create/update.
// A missing images field leaves stored images untouched; an empty
// array clears them.
type ProductRequest struct {
	Name          string        `json:"name" binding:"required,min=1,max=200"`
	Description   string        `json:"description" binding:"max=5000"`
	Price         float64       `json:"price" binding:"required,gt=0"`
	DiscountPrice *float64      `json:"discount_price" binding:"omitempty,gt=0"`
	Stock         int           `json:"stock" binding:"gte=0"`
	CategoryID    *uint         `json:"category_id"`
	Status        string        `json:"status" binding:"omitempty,oneof=active inactive sold_out"`
	Images        *[]ImageEntry `json:"images"`
}

// ProductImageResponse is one stored image of a product
type ProductImageResponse struct {
	URL          string `json:"url"`
	DisplayOrder int    `json:"display_order"`
	IsPrimary    bool   `json:"is_primary"`
}

// ProductResponse is the public representation of a product
type ProductResponse struct {
	ID            uint                   `json:"id"`
	PartnerID     uint                   `json:"partner_id"`
	CategoryID    *uint                  `json:"category_id,omitempty"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description,omitempty"`
	Price         decimal.Decimal        `json:"price"`
	DiscountPrice *decimal.Decimal       `json:"discount_price,omitempty"`
	Stock         int                    `json:"stock"`
	Status        string                 `json:"status"`
	Images        []ProductImageResponse `json:"images"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

func toProductResponse(p *catalog.Product) ProductResponse {
	images := make([]ProductImageResponse, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, ProductImageResponse{
			URL:          img.ImageURL,
			DisplayOrder: img.DisplayOrder,
			IsPrimary:    img.IsPrimary,
		})
	}
	return ProductResponse{
		ID:            p.ID,
		PartnerID:     p.PartnerID,
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		Stock:         p.Stock,
		Status:        string(p.Status),
		Images:        images,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out
}

// toImageRefs parses image entries into tagged references. Entries with
// both or neither field set are rejected here, before any service work.
func toImageRefs(entries []ImageEntry) ([]catalog.ImageRef, error) {
	refs := make([]catalog.ImageRef, 0, len(entries))
	for _, e := range entries {
		switch {
		case e.TempFilename != nil && e.URL != nil:
			return nil, errBothImageFields
		case e.TempFilename != nil:
			ref, err := catalog.NewStagedRef(*e.TempFilename)
			if err != nil {
				return nil, err
			}
			refs = append(refs, ref)
		case e.URL != nil:
			ref, err := catalog.NewCommittedRef(*e.URL)
			if err != nil {
				return nil, err
			}
			refs = append(refs, ref)
		default:
			return nil, errNoImageFields
		}
	}
	return refs, nil
}

func (r *ProductRequest) toInput() (appcatalog.ProductInput, error) {
	input := appcatalog.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       decimal.NewFromFloat(r.Price),
		Stock:       r.Stock,
		CategoryID:  r.CategoryID,
		Status:      catalog.ProductStatus(r.Status),
	}
	if r.DiscountPrice != nil {
		d := decimal.NewFromFloat(*r.DiscountPrice)
		input.DiscountPrice = &d
	}
	if r.Images != nil {
		refs, err := toImageRefs(*r.Images)
		if err != nil {
			return appcatalog.ProductInput{}, err
		}
		input.Images = refs
	}
	return input, nil
}

// ProductHandler handles partner-scoped product endpoints
type ProductHandler struct {
	BaseHandler
	productService *appcatalog.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *appcatalog.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create creates a product for the authenticated partner.
func (h *ProductHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toProductResponse(product))
}

// Update replaces a product owned by the authenticated partner.
func (h *ProductHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), userID, productID, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductResponse(product))
}

// Get returns one product owned by the authenticated partner.
func (h *ProductHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetOwn(c.Request.Context(), userID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductResponse(product))
}

// List returns all products owned by the authenticated partner.
func (h *ProductHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	products, err := h.productService.ListOwn(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductResponses(products))
}

// Delete removes a product owned by the authenticated partner together
// with its stored image files.
func (h *ProductHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), userID, productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
