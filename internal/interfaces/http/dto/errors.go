package dto

import (
	"net/http"
	"strings"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation and input error codes
const (
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeNotPartner         = "ERR_NOT_PARTNER"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
)

// Upload error codes
const (
	ErrCodeUnsupportedMedia = "ERR_UNSUPPORTED_MEDIA_TYPE"
	ErrCodePayloadTooLarge  = "ERR_PAYLOAD_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotPartner:         http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeUnsupportedMedia: http.StatusUnsupportedMediaType,
	ErrCodePayloadTooLarge:  http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to transport codes
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":              ErrCodeNotFound,
	"ALREADY_EXISTS":         ErrCodeAlreadyExists,
	"EMAIL_TAKEN":            ErrCodeAlreadyExists,
	"INVALID_INPUT":          ErrCodeInvalidInput,
	"UNAUTHORIZED":           ErrCodeUnauthorized,
	"FORBIDDEN":              ErrCodeForbidden,
	"NOT_PARTNER":            ErrCodeNotPartner,
	"INVALID_CREDENTIALS":    ErrCodeInvalidCredentials,
	"UNSUPPORTED_MEDIA_TYPE": ErrCodeUnsupportedMedia,
	"PAYLOAD_TOO_LARGE":      ErrCodePayloadTooLarge,
}

// NormalizeErrorCode converts a domain error code to the transport
// format. Domain validation codes (INVALID_*) collapse to a generic
// validation error unless specifically mapped.
func NormalizeErrorCode(code string) string {
	if mapped, ok := domainErrorCodeMapping[code]; ok {
		return mapped
	}
	if strings.HasPrefix(code, "INVALID_") {
		return ErrCodeValidation
	}
	return code
}
