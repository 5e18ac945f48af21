package order

import (
	"math"
	"time"

	"fieldservice/internal/pkg/errs"
)

// Worker is one technician's row inside an order. Rows are never removed: a technician
// taken off the order keeps its row in REASSIGNED status so the history survives.
type Worker struct {
	technicianID  int64
	status        WorkerStatus
	isResponsible bool
	createdAt     time.Time
}

func newWorker(technicianID int64, isResponsible bool, now time.Time) *Worker {
	return &Worker{
		technicianID:  technicianID,
		status:        WorkerAssigned,
		isResponsible: isResponsible,
		createdAt:     now.UTC(),
	}
}

// RestoreWorker rebuilds a persisted worker row.
func RestoreWorker(technicianID int64, status WorkerStatus, isResponsible bool, createdAt time.Time) (*Worker, error) {
	if technicianID <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("technicianID", technicianID, 1, int64(math.MaxInt64))
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return &Worker{
		technicianID:  technicianID,
		status:        status,
		isResponsible: isResponsible,
		createdAt:     createdAt.UTC(),
	}, nil
}

func (w *Worker) TechnicianID() int64 {
	return w.technicianID
}

func (w *Worker) Status() WorkerStatus {
	return w.status
}

func (w *Worker) IsResponsible() bool {
	return w.isResponsible
}

func (w *Worker) CreatedAt() time.Time {
	return w.createdAt
}

// IsActive reports whether the row counts towards the technician's load.
func (w *Worker) IsActive() bool {
	return w.status.IsActive()
}

// IsCurrent reports whether the technician still belongs to the order's worker set.
func (w *Worker) IsCurrent() bool {
	return !w.status.IsSuperseded()
}
