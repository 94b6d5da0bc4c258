package identity

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/auth"
)

// RegisterInput carries a registration request. CompanyName is
// required when registering as a partner.
type RegisterInput struct {
	Email       string
	Password    string
	Name        string
	Phone       string
	AsPartner   bool
	CompanyName string
}

// AuthService handles registration, login and session lifecycle
type AuthService struct {
	userRepo    identity.UserRepository
	partnerRepo identity.PartnerRepository
	txScope     TransactionScope
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
	logger      *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	partnerRepo identity.PartnerRepository,
	txScope TransactionScope,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		partnerRepo: partnerRepo,
		txScope:     txScope,
		jwtService:  jwtService,
		blacklist:   blacklist,
		logger:      logger,
	}
}

// Register creates a user account. Partner registrations also create
// the pending seller profile; both rows commit atomically or not at all.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*identity.User, *auth.TokenPair, error) {
	role := identity.RoleCustomer
	if input.AsPartner {
		role = identity.RolePartner
		if input.CompanyName == "" {
			return nil, nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name is required for partner registration")
		}
	}

	user, err := identity.NewUser(input.Email, input.Password, input.Name, role)
	if err != nil {
		return nil, nil, err
	}
	user.Phone = input.Phone

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.UserRepo().Create(ctx, user); err != nil {
			return err
		}
		if !input.AsPartner {
			return nil
		}
		partner, err := identity.NewPartner(user.ID, input.CompanyName)
		if err != nil {
			return err
		}
		return repos.PartnerRepo().Create(ctx, partner)
	})
	if err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
		}
		return nil, nil, err
	}

	pair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("User registered",
		zap.Uint("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	return user, pair, nil
}

// Login verifies credentials and issues a token pair. Wrong email and
// wrong password return the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*identity.User, *auth.TokenPair, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, shared.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !user.CheckPassword(password) {
		s.logger.Warn("Failed login attempt", zap.Uint("user_id", user.ID))
		return nil, nil, shared.ErrInvalidCredentials
	}

	pair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("User logged in", zap.Uint("user_id", user.ID))
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, shared.ErrUnauthorized
	}

	// Re-read the account so a role change takes effect on refresh
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	return s.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
}

// Logout revokes the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := claims.RemainingValidity(time.Now())
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.Add(ctx, claims.ID, ttl); err != nil {
		return err
	}
	s.logger.Info("User logged out", zap.Uint("user_id", claims.UserID))
	return nil
}

// GetProfile returns the calling user's account
func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*identity.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// UpdateProfile updates the calling user's name and phone
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, name, phone string) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(name, phone); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password and stores a new one
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(current, next); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info("Password changed", zap.Uint("user_id", userID))
	return nil
}
