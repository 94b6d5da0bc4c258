package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/interfaces/http/dto"
	"github.com/markethub/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// getRequestID extracts the request ID from the context.
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// getUserID extracts the authenticated user ID from JWT claims.
func getUserID(c *gin.Context) (uint, error) {
	id := middleware.GetJWTUserID(c)
	if id == 0 {
		return 0, errors.New("user ID not found in context")
	}
	return id, nil
}

// pathID parses a positive numeric path parameter.
func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// Success sends a 200 response with the standard envelope.
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with pagination meta.
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, page, pageSize, count int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, page, pageSize, count))
}

// Created sends a 201 created response.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code.
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response.
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response.
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response.
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 internal server error response.
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleDomainError converts domain errors to HTTP responses. Unknown
// error types become opaque 500s so internals never leak to clients.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodePayloadTooLarge, "Request body too large")
		return
	}

	h.InternalError(c, "An unexpected error occurred")
}
