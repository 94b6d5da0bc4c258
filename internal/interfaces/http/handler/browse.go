package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/markethub/backend/internal/application/catalog"
	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/interfaces/http/dto"
)

// CategoryResponse is the public representation of a category
type CategoryResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ImageURL     string `json:"image_url,omitempty"`
	DisplayOrder int    `json:"display_order"`
}

func toCategoryResponse(cat *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:           cat.ID,
		Name:         cat.Name,
		Slug:         cat.Slug,
		ImageURL:     cat.ImageURL,
		DisplayOrder: cat.DisplayOrder,
	}
}

// BrowseHandler handles the public, unauthenticated catalog endpoints
type BrowseHandler struct {
	BaseHandler
	browseService *appcatalog.BrowseService
}

// NewBrowseHandler creates a new BrowseHandler
func NewBrowseHandler(browseService *appcatalog.BrowseService) *BrowseHandler {
	return &BrowseHandler{browseService: browseService}
}

// ListProducts returns a page of active products.
func (h *BrowseHandler) ListProducts(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}
	limit, offset := req.Normalize()

	products, err := h.browseService.ListProducts(c.Request.Context(), limit, offset)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, toProductResponses(products), req.Page, limit, len(products))
}

// SearchProducts searches active products by name and description.
func (h *BrowseHandler) SearchProducts(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}
	limit, offset := req.Normalize()

	products, err := h.browseService.SearchProducts(c.Request.Context(), c.Query("q"), limit, offset)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, toProductResponses(products), req.Page, limit, len(products))
}

// GetProduct returns one active product by ID.
func (h *BrowseHandler) GetProduct(c *gin.Context) {
	productID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.browseService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductResponse(product))
}

// ListCategories returns all categories in display order.
func (h *BrowseHandler) ListCategories(c *gin.Context) {
	categories, err := h.browseService.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, toCategoryResponse(&categories[i]))
	}
	h.Success(c, out)
}

// GetCategory returns one category by slug.
func (h *BrowseHandler) GetCategory(c *gin.Context) {
	category, err := h.browseService.GetCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCategoryResponse(category))
}

// ListCategoryProducts returns a page of active products in a category.
func (h *BrowseHandler) ListCategoryProducts(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}
	limit, offset := req.Normalize()

	products, err := h.browseService.ListCategoryProducts(c.Request.Context(), c.Param("slug"), limit, offset)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, toProductResponses(products), req.Page, limit, len(products))
}
