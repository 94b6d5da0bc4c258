package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{"mapped domain code", "NOT_FOUND", ErrCodeNotFound},
		{"email taken collapses to already exists", "EMAIL_TAKEN", ErrCodeAlreadyExists},
		{"missing seller profile", "NOT_PARTNER", ErrCodeNotPartner},
		{"upload media type", "UNSUPPORTED_MEDIA_TYPE", ErrCodeUnsupportedMedia},
		{"upload size", "PAYLOAD_TOO_LARGE", ErrCodePayloadTooLarge},
		{"unmapped validation code", "INVALID_QUANTITY", ErrCodeValidation},
		{"another validation code", "INVALID_IMAGE_REF", ErrCodeValidation},
		{"specifically mapped validation code", "INVALID_CREDENTIALS", ErrCodeInvalidCredentials},
		{"unknown code passes through", "ERR_SOMETHING_ELSE", "ERR_SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.code))
		})
	}
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeNotPartner, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeUnsupportedMedia, http.StatusUnsupportedMediaType},
		{ErrCodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{"ERR_NEVER_HEARD_OF_IT", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestListRequestNormalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req := ListRequest{}
		limit, offset := req.Normalize()
		assert.Equal(t, 20, limit)
		assert.Equal(t, 0, offset)
		assert.Equal(t, 1, req.Page)
	})

	t.Run("offset follows the page", func(t *testing.T) {
		req := ListRequest{Page: 3, PageSize: 10}
		limit, offset := req.Normalize()
		assert.Equal(t, 10, limit)
		assert.Equal(t, 20, offset)
	})
}
