package shipping

import (
	"time"

	"github.com/markethub/backend/internal/domain/shared"
)

// Address is a user-owned shipping destination. At most one address per
// user carries IsDefault; the persistence layer enforces exclusivity
// inside the write transaction.
type Address struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        uint   `gorm:"not null;index:idx_addresses_user"`
	RecipientName string `gorm:"type:varchar(100);not null"`
	Phone         string `gorm:"type:varchar(30);not null"`
	AddressLine1  string `gorm:"type:varchar(255);not null"`
	AddressLine2  string `gorm:"type:varchar(255)"`
	City          string `gorm:"type:varchar(100);not null"`
	PostalCode    string `gorm:"type:varchar(20);not null"`
	Country       string `gorm:"type:varchar(100);not null"`
	IsDefault     bool   `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "shipping_addresses"
}

// NewAddress creates a validated shipping address for the given user
func NewAddress(userID uint, recipient, phone, line1, city, postalCode, country string) (*Address, error) {
	if recipient == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Recipient name cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Phone number cannot be empty")
	}
	if line1 == "" || city == "" || postalCode == "" || country == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address line, city, postal code and country are required")
	}

	return &Address{
		UserID:        userID,
		RecipientName: recipient,
		Phone:         phone,
		AddressLine1:  line1,
		City:          city,
		PostalCode:    postalCode,
		Country:       country,
	}, nil
}
