// Package visit holds Visit, a technician's on-site presence for an order.
package visit

import (
	"errors"
	"fmt"
	"math"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

const (
	MinEvaluation = 1
	MaxEvaluation = 5
)

var ErrVisitIsNotConstructed = errors.New("Visit must be created via NewVisit or RestoreVisit constructor")

// Visit records a technician's time on site. Visits are soft-deleted; a deleted visit
// no longer counts for the order's status.
type Visit struct {
	id           int64
	orderID      int64
	technicianID int64
	window       kernel.TimeWindow
	isReviewed   bool
	evaluation   *int
	createdBy    int64
	updatedBy    int64
	updatedAt    time.Time
	version      time.Time
	deletedAt    *time.Time
	guard        guard.ConstructorGuard
}

// Snapshot carries the persisted columns of a visit for RestoreVisit.
type Snapshot struct {
	ID           int64
	OrderID      int64
	TechnicianID int64
	StartAt      time.Time
	EndAt        time.Time
	IsReviewed   bool
	Evaluation   *int
	CreatedBy    int64
	UpdatedBy    int64
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

func NewVisit(orderID, technicianID int64, window kernel.TimeWindow, actorID int64, now time.Time) (*Visit, error) {
	v := &Visit{
		createdBy: actorID,
		updatedBy: actorID,
		updatedAt: kernel.VersionStamp(now),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		positive("orderID", orderID, &v.orderID),
		positive("technicianID", technicianID, &v.technicianID),
		v.setWindow(window),
	); err != nil {
		return nil, err
	}

	return v, nil
}

func RestoreVisit(s Snapshot) (*Visit, error) {
	stamp := kernel.VersionStamp(s.UpdatedAt)
	v := &Visit{
		isReviewed: s.IsReviewed,
		createdBy:  s.CreatedBy,
		updatedBy:  s.UpdatedBy,
		updatedAt:  stamp,
		version:    stamp,
		deletedAt:  s.DeletedAt,
		guard:      guard.NewConstructorGuard(),
	}

	window, err := kernel.NewTimeWindow(s.StartAt, s.EndAt)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(
		v.BindID(s.ID),
		positive("orderID", s.OrderID, &v.orderID),
		positive("technicianID", s.TechnicianID, &v.technicianID),
		v.setWindow(window),
		v.setEvaluation(s.Evaluation),
	); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *Visit) Validate() error {
	if v == nil {
		return ErrVisitIsNotConstructed
	}
	return v.guard.Validate(ErrVisitIsNotConstructed)
}

func (v *Visit) BindID(id int64) error {
	if v.id != 0 && v.id != id {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("visit already bound to %d", v.id))
	}
	return positive("id", id, &v.id)
}

func (v *Visit) ID() int64                 { return v.id }
func (v *Visit) OrderID() int64            { return v.orderID }
func (v *Visit) TechnicianID() int64       { return v.technicianID }
func (v *Visit) Window() kernel.TimeWindow { return v.window }
func (v *Visit) IsReviewed() bool          { return v.isReviewed }
func (v *Visit) Evaluation() *int          { return v.evaluation }
func (v *Visit) CreatedBy() int64          { return v.createdBy }
func (v *Visit) UpdatedBy() int64          { return v.updatedBy }
func (v *Visit) UpdatedAt() time.Time      { return v.updatedAt }
func (v *Visit) Version() time.Time        { return v.version }
func (v *Visit) DeletedAt() *time.Time     { return v.deletedAt }
func (v *Visit) IsDeleted() bool           { return v.deletedAt != nil }

// CheckVersion rejects a write whose caller observed a different updatedAt.
func (v *Visit) CheckVersion(expected time.Time) error {
	if !kernel.SameVersion(v.version, expected) {
		return errs.NewConcurrencyConflictError("visit", v.id, expected)
	}
	return nil
}

// Touch advances the stamp persisted by the next write and attributes it to actorID.
func (v *Visit) Touch(now time.Time, actorID int64) {
	v.updatedAt = kernel.VersionStamp(now)
	v.updatedBy = actorID
}

// Review marks the visit as reviewed with an optional 1..5 evaluation.
func (v *Visit) Review(evaluation *int) error {
	if v.IsDeleted() {
		return errs.NewInvalidStateError("visit", "DELETED", "cannot review")
	}
	if err := v.setEvaluation(evaluation); err != nil {
		return err
	}
	v.isReviewed = true
	return nil
}

// Delete soft-deletes the visit.
func (v *Visit) Delete(now time.Time) error {
	if v.IsDeleted() {
		return errs.NewObjectNotFoundError("visitID", v.id)
	}
	deletedAt := now.UTC()
	v.deletedAt = &deletedAt
	return nil
}

func (v *Visit) setWindow(window kernel.TimeWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}
	v.window = window
	return nil
}

func (v *Visit) setEvaluation(evaluation *int) error {
	if evaluation == nil {
		v.evaluation = nil
		return nil
	}
	if *evaluation < MinEvaluation || *evaluation > MaxEvaluation {
		return errs.NewValueIsOutOfRangeError("evaluation", *evaluation, MinEvaluation, MaxEvaluation)
	}
	e := *evaluation
	v.evaluation = &e
	return nil
}

func positive(param string, value int64, dst *int64) error {
	if value <= 0 {
		return errs.NewValueIsOutOfRangeError(param, value, 1, int64(math.MaxInt64))
	}
	*dst = value
	return nil
}
