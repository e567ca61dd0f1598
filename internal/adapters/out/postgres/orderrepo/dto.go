// Package orderrepo persists order aggregates with GORM. It owns the
// mapping between the domain aggregate and its relational shape.
package orderrepo

import (
	"time"

	"shipquote/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row for an order aggregate. TrackingNo is
// uniquely indexed because customer-facing lookups use it instead of
// the primary key.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingNo  string    `gorm:"uniqueIndex;size:32"`
	Status      int       `gorm:"index"`
	Price       float64
	CreatedAt   time.Time
	DeliveredAt *time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:          aggregate.ID(),
		TrackingNo:  aggregate.TrackingNo(),
		Status:      int(aggregate.Status()),
		Price:       aggregate.Price(),
		CreatedAt:   aggregate.CreatedAt(),
		DeliveredAt: aggregate.DeliveredAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	return order.RestoreOrder(dto.ID, dto.TrackingNo, order.Status(dto.Status), dto.Price, dto.CreatedAt, dto.DeliveredAt)
}
