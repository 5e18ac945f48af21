package ports

import (
	"context"

	"fieldservice/internal/core/domain/model/technician"
)

type TechnicianRepository interface {
	// Add inserts a technician and binds the generated id.
	Add(ctx context.Context, aggregate *technician.Technician) error

	// Update writes the technician row and inserts availabilities not yet persisted.
	Update(ctx context.Context, aggregate *technician.Technician) error

	// Get returns a non-deleted technician with its availabilities.
	Get(ctx context.Context, id int64) (*technician.Technician, error)

	// GetForUpdate is Get holding a row lock on the technician. Assignment commits take
	// this lock before re-reading the technician's bookings.
	GetForUpdate(ctx context.Context, id int64) (*technician.Technician, error)

	// GetAllSchedulable returns ACTIVE, non-deleted technicians ordered by id.
	GetAllSchedulable(ctx context.Context) ([]*technician.Technician, error)
}
