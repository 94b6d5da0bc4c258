package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound             = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists        = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput         = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized         = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden            = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrNotPartner           = NewDomainError("NOT_PARTNER", "Partner account required")
	ErrInvalidCredentials   = NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	ErrUnsupportedMediaType = NewDomainError("UNSUPPORTED_MEDIA_TYPE", "File type is not allowed")
	ErrPayloadTooLarge      = NewDomainError("PAYLOAD_TOO_LARGE", "File exceeds the maximum allowed size")
)
