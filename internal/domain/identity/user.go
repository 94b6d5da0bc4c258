package identity

import (
	"strings"
	"time"

	"github.com/markethub/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserRole determines which parts of the API a user may reach
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RolePartner  UserRole = "partner"
	RoleAdmin    UserRole = "admin"
)

const bcryptCost = 12

// User is an account in the marketplace
type User struct {
	ID           uint     `gorm:"primaryKey"`
	Email        string   `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string   `gorm:"type:varchar(255);not null"`
	Name         string   `gorm:"type:varchar(100);not null"`
	Phone        string   `gorm:"type:varchar(30)"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'customer'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a user with a bcrypt-hashed password
func NewUser(email, password, name string, role UserRole) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	switch role {
	case RoleCustomer, RolePartner, RoleAdmin:
	default:
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown user role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	return &User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
	}, nil
}

// CheckPassword compares the given plaintext against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword verifies the current password and stores a new hash
func (u *User) ChangePassword(current, next string) error {
	if !u.CheckPassword(current) {
		return shared.ErrInvalidCredentials
	}
	if len(next) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()

	return nil
}

// UpdateProfile updates the user's display name and phone number
func (u *User) UpdateProfile(name, phone string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	u.Name = name
	u.Phone = phone
	u.UpdatedAt = time.Now()
	return nil
}

// IsPartner returns true for partner and admin accounts
func (u *User) IsPartner() bool {
	return u.Role == RolePartner || u.Role == RoleAdmin
}
