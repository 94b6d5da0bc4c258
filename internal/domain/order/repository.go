package order

import "context"

// Repository provides read access to orders for the partner area
type Repository interface {
	// ListByPartner returns orders containing at least one item sold
	// by the partner, with Items narrowed to that partner's lines.
	ListByPartner(ctx context.Context, partnerID uint) ([]Order, error)
}
