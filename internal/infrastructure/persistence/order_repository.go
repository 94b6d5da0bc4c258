package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/markethub/backend/internal/domain/order"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// ListByPartner returns orders containing at least one line sold by the
// partner. Items are narrowed to the partner's own lines so one seller
// never sees another seller's part of a shared order.
func (r *GormOrderRepository) ListByPartner(ctx context.Context, partnerID uint) ([]order.Order, error) {
	var orders []order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items", "partner_id = ?", partnerID).
		Where("id IN (?)", r.db.
			Model(&order.OrderItem{}).
			Select("order_id").
			Where("partner_id = ?", partnerID)).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

var _ order.Repository = (*GormOrderRepository)(nil)
