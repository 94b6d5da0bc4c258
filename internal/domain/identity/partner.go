package identity

import (
	"time"

	"github.com/markethub/backend/internal/domain/shared"
)

// PartnerStatus is the review state of a seller account
type PartnerStatus string

const (
	PartnerStatusPending  PartnerStatus = "pending"
	PartnerStatusApproved PartnerStatus = "approved"
	PartnerStatusRejected PartnerStatus = "rejected"
)

// Partner is the seller profile attached to a user account. A user has
// at most one partner row; all catalog writes are scoped by its ID.
type Partner struct {
	ID          uint          `gorm:"primaryKey"`
	UserID      uint          `gorm:"not null;uniqueIndex"`
	CompanyName string        `gorm:"type:varchar(200);not null"`
	Description string        `gorm:"type:text"`
	LogoURL     string        `gorm:"type:varchar(500)"`
	Status      PartnerStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (Partner) TableName() string {
	return "partners"
}

// NewPartner creates a pending seller profile for the given user
func NewPartner(userID uint, companyName string) (*Partner, error) {
	if companyName == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	if len(companyName) > 200 {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}

	return &Partner{
		UserID:      userID,
		CompanyName: companyName,
		Status:      PartnerStatusPending,
	}, nil
}

// IsApproved returns true once the partner has passed review
func (p *Partner) IsApproved() bool {
	return p.Status == PartnerStatusApproved
}
