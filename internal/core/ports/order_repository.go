// Package ports defines the contracts between the field-service core and its adapters.
package ports

import (
	"context"

	"fieldservice/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add inserts a new order with its worker rows and binds the generated id.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order row and all its worker rows. The order row is updated only
	// while its stored updated_at still equals aggregate.Version(); otherwise
	// errs.ConcurrencyConflictError is returned and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns a non-deleted order with its worker rows.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetForUpdate is Get holding a row lock on the order until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// Bookings returns the active worker rows of the given technicians on non-deleted
	// orders, keyed by technician id.
	Bookings(ctx context.Context, technicianIDs []int64) (map[int64][]order.Booking, error)
}
