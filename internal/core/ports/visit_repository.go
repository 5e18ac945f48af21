package ports

import (
	"context"

	"fieldservice/internal/core/domain/model/visit"
)

type VisitRepository interface {
	// Add inserts a visit and binds the generated id.
	Add(ctx context.Context, aggregate *visit.Visit) error

	// Update writes the visit conditioned on aggregate.Version(), like OrderRepository.Update.
	Update(ctx context.Context, aggregate *visit.Visit) error

	// Get returns a non-deleted visit.
	Get(ctx context.Context, id int64) (*visit.Visit, error)

	// CountActive counts the non-deleted visits of an order.
	CountActive(ctx context.Context, orderID int64) (int, error)
}
