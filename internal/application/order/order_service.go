package order

import (
	"context"
	"errors"

	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/order"
	"github.com/markethub/backend/internal/domain/shared"
)

// Service serves the partner-facing, read-only order views
type Service struct {
	partnerRepo identity.PartnerRepository
	orderRepo   order.Repository
}

// NewService creates a new order Service
func NewService(partnerRepo identity.PartnerRepository, orderRepo order.Repository) *Service {
	return &Service{partnerRepo: partnerRepo, orderRepo: orderRepo}
}

// ListForPartner returns orders containing the calling user's partner
// items, each narrowed to that partner's lines.
func (s *Service) ListForPartner(ctx context.Context, userID uint) ([]order.Order, error) {
	partner, err := s.partnerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotPartner
		}
		return nil, err
	}
	return s.orderRepo.ListByPartner(ctx, partner.ID)
}
