package ports

import (
	"context"

	"shipquote/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderRepository defines the persistence contract for order
// aggregates. The rating core never touches a database itself; this is
// the boundary of the persistence collaborator.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier.
	Get(ctx context.Context, id uuid.UUID) (*order.Order, error)

	// GetByTrackingNo retrieves an order by its tracking number.
	GetByTrackingNo(ctx context.Context, trackingNo string) (*order.Order, error)
}
