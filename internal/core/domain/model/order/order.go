package order

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
	// ErrOrderIsNotScheduled is returned when a window is requested for an order without a scheduled date.
	ErrOrderIsNotScheduled = errs.NewValueIsRequiredError("scheduledAt")
)

// Order is the aggregate root of a field-service job. It owns the lifecycle status,
// the scheduled window and the set of technicians working on it.
//
// Order follows these invariants:
//   - Status only moves along the transition table (see Status)
//   - The effective end of the window is never before its start
//   - Worker rows are never removed; superseded technicians stay as REASSIGNED
//   - At most one current worker is responsible
//
// Every persisted write is conditioned on Version, the updatedAt value observed when the
// order was loaded; Touch advances UpdatedAt for the next write and RecordActor names
// the user behind it.
type Order struct {
	id          int64
	clientID    int64
	serviceIDs  []int64
	status      Status
	scheduledAt *time.Time
	endAt       *time.Time
	createdAt   time.Time
	updatedAt   time.Time
	updatedBy   int64
	version     time.Time
	deletedAt   *time.Time
	workers     []*Worker
	guard       guard.ConstructorGuard
}

// Snapshot carries the persisted columns of an order for RestoreOrder.
type Snapshot struct {
	ID          int64
	ClientID    int64
	ServiceIDs  []int64
	Status      Status
	ScheduledAt *time.Time
	EndAt       *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UpdatedBy   int64
	DeletedAt   *time.Time
}

// NewOrder creates a PENDING order. The identifier is bound by the repository on insert.
//
// Example:
//
//	start := time.Date(2025, time.May, 20, 8, 0, 0, 0, time.UTC)
//	o, err := order.NewOrder(clientID, []int64{serviceID}, &start, nil, clock.Now())
//	if err != nil {
//	    return err
//	}
func NewOrder(clientID int64, serviceIDs []int64, scheduledAt, endAt *time.Time, now time.Time) (*Order, error) {
	stamp := kernel.VersionStamp(now)
	o := &Order{
		status:    StatusPending,
		createdAt: stamp,
		updatedAt: stamp,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setClientID(clientID),
		o.setServiceIDs(serviceIDs),
		o.setSchedule(scheduledAt, endAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence. UpdatedAt becomes the version that
// conditions the next write.
func RestoreOrder(s Snapshot, workers []*Worker) (*Order, error) {
	stamp := kernel.VersionStamp(s.UpdatedAt)
	o := &Order{
		createdAt: s.CreatedAt.UTC(),
		updatedAt: stamp,
		updatedBy: s.UpdatedBy,
		version:   stamp,
		deletedAt: utcPtr(s.DeletedAt),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.BindID(s.ID),
		o.setClientID(s.ClientID),
		o.setServiceIDs(s.ServiceIDs),
		o.setStatus(s.Status),
		o.setSchedule(s.ScheduledAt, s.EndAt),
		o.setWorkers(workers),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// BindID sets the database identifier once.
func (o *Order) BindID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("id", id, 1, int64(math.MaxInt64))
	}
	if o.id != 0 && o.id != id {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("order already bound to %d", o.id))
	}
	o.id = id
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) ID() int64 {
	return o.id
}

func (o *Order) ClientID() int64 {
	return o.clientID
}

func (o *Order) ServiceIDs() []int64 {
	return slices.Clone(o.serviceIDs)
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) ScheduledAt() *time.Time {
	return o.scheduledAt
}

func (o *Order) EndAt() *time.Time {
	return o.endAt
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt is the stamp the next write persists.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version is the stamp observed at load time. Zero for orders not yet persisted.
// UpdatedBy is the user behind the last write; zero for writes made by the system.
func (o *Order) UpdatedBy() int64 {
	return o.updatedBy
}

func (o *Order) Version() time.Time {
	return o.version
}

func (o *Order) DeletedAt() *time.Time {
	return o.deletedAt
}

func (o *Order) IsDeleted() bool {
	return o.deletedAt != nil || o.status == StatusDeleted
}

// Workers returns every worker row, superseded ones included.
func (o *Order) Workers() []*Worker {
	return slices.Clone(o.workers)
}

// CurrentWorkers returns the rows that belong to the worker set.
func (o *Order) CurrentWorkers() []*Worker {
	return o.filterWorkers((*Worker).IsCurrent)
}

// ActiveWorkers returns the rows in ASSIGNED or IN_PROGRESS.
func (o *Order) ActiveWorkers() []*Worker {
	return o.filterWorkers((*Worker).IsActive)
}

// Worker finds the row of a technician, superseded or not.
func (o *Order) Worker(technicianID int64) (*Worker, bool) {
	for _, w := range o.workers {
		if w.technicianID == technicianID {
			return w, true
		}
	}
	return nil, false
}

// Responsible returns the current responsible worker, if any.
func (o *Order) Responsible() (*Worker, bool) {
	for _, w := range o.workers {
		if w.IsCurrent() && w.isResponsible {
			return w, true
		}
	}
	return nil, false
}

// Window returns the effective [scheduledAt, endAt) window.
func (o *Order) Window() (kernel.TimeWindow, error) {
	if o.scheduledAt == nil {
		return kernel.TimeWindow{}, ErrOrderIsNotScheduled
	}
	return kernel.EffectiveWindow(*o.scheduledAt, o.endAt)
}

// CheckVersion rejects a write whose caller observed a different updatedAt.
func (o *Order) CheckVersion(expected time.Time) error {
	if !kernel.SameVersion(o.version, expected) {
		return errs.NewConcurrencyConflictError("order", o.id, expected)
	}
	return nil
}

// Touch advances the stamp persisted by the next write. The write is attributed to the
// system until RecordActor names a user.
func (o *Order) Touch(now time.Time) {
	o.updatedAt = kernel.VersionStamp(now)
	o.updatedBy = 0
}

// RecordActor attributes the pending write to actorID.
func (o *Order) RecordActor(actorID int64) error {
	if actorID <= 0 {
		return errs.NewValueIsOutOfRangeError("actorID", actorID, 1, int64(math.MaxInt64))
	}
	o.updatedBy = actorID
	return nil
}

// ValidateUpdate rejects any change to a deleted or terminal order.
func (o *Order) ValidateUpdate() error {
	return o.validateMutable("update")
}

// ValidateResponsible checks that technicianID may become responsible without touching
// the worker set.
func (o *Order) ValidateResponsible(technicianID int64) error {
	if err := o.validateMutable("change responsible"); err != nil {
		return err
	}
	if w, ok := o.Worker(technicianID); !ok || !w.IsCurrent() {
		return errs.NewValueIsInvalidErrorWithCause("responsibleId",
			fmt.Errorf("technician %d is not a worker of the order", technicianID))
	}
	return nil
}

// ChangeResponsible hands responsibility to technicianID, who must already be in the
// worker set. Returns the rows whose flag changed.
func (o *Order) ChangeResponsible(technicianID int64) ([]*Worker, error) {
	if err := o.ValidateResponsible(technicianID); err != nil {
		return nil, err
	}
	var changed []*Worker
	for _, w := range o.workers {
		responsible := w.IsCurrent() && w.technicianID == technicianID
		if w.isResponsible != responsible {
			w.isResponsible = responsible
			changed = append(changed, w)
		}
	}
	return changed, nil
}

// ValidateStatusChange checks a requested status without mutating the order.
// activeVisits is the number of non-deleted visits recorded for the order.
func (o *Order) ValidateStatusChange(target Status, activeVisits int) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !o.status.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError(o.status, target)
	}
	if target == StatusPending && activeVisits > 0 {
		return errs.NewInvalidTransitionErrorWithReason(o.status, target,
			fmt.Sprintf("order has %d recorded visit(s)", activeVisits))
	}
	return nil
}

// ChangeStatus moves the order to target. When the resulting status is closing the
// active workers follow it; the rows changed by that cascade are returned.
func (o *Order) ChangeStatus(target Status, activeVisits int) ([]*Worker, error) {
	if err := o.ValidateStatusChange(target, activeVisits); err != nil {
		return nil, err
	}
	o.status = target
	return o.CascadeClosing(), nil
}

// CascadeClosing copies a closing order status onto every active worker.
func (o *Order) CascadeClosing() []*Worker {
	workerStatus, ok := closingWorkerStatus(o.status)
	if !ok {
		return nil
	}
	var affected []*Worker
	for _, w := range o.workers {
		if w.IsActive() {
			w.status = workerStatus
			affected = append(affected, w)
		}
	}
	return affected
}

// ValidateWorkers checks a requested worker set without mutating the order.
func (o *Order) ValidateWorkers(technicianIDs []int64, responsibleID *int64) error {
	if err := o.validateMutable("change workers"); err != nil {
		return err
	}
	seen := make(map[int64]struct{}, len(technicianIDs))
	for _, id := range technicianIDs {
		if id <= 0 {
			return errs.NewValueIsOutOfRangeError("workers", id, 1, int64(math.MaxInt64))
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("workers", fmt.Errorf("technician %d listed twice", id))
		}
		seen[id] = struct{}{}
	}
	if responsibleID != nil {
		if _, ok := seen[*responsibleID]; !ok {
			return errs.NewValueIsInvalidErrorWithCause("responsibleId",
				fmt.Errorf("technician %d is not in the worker list", *responsibleID))
		}
	}
	return nil
}

// WorkerChanges lists the rows touched by ReconcileWorkers.
type WorkerChanges struct {
	Added   []*Worker
	Removed []*Worker
	Kept    []*Worker
}

// ReconcileWorkers replaces the worker set with technicianIDs.
//
// Removed technicians become REASSIGNED and lose responsibility. Added technicians get
// an ASSIGNED row, reviving a superseded row for the same technician when one exists.
// Responsibility goes to responsibleID; when it is nil the current responsible keeps
// the role if still listed, otherwise the first listed technician takes it.
func (o *Order) ReconcileWorkers(technicianIDs []int64, responsibleID *int64, now time.Time) (WorkerChanges, error) {
	if err := o.ValidateWorkers(technicianIDs, responsibleID); err != nil {
		return WorkerChanges{}, err
	}

	requested := make(map[int64]struct{}, len(technicianIDs))
	for _, id := range technicianIDs {
		requested[id] = struct{}{}
	}

	responsible := o.resolveResponsible(technicianIDs, responsibleID)

	var changes WorkerChanges
	for _, w := range o.workers {
		if _, ok := requested[w.technicianID]; ok || !w.IsCurrent() {
			continue
		}
		w.status = WorkerReassigned
		w.isResponsible = false
		changes.Removed = append(changes.Removed, w)
	}

	for _, id := range technicianIDs {
		w, ok := o.Worker(id)
		switch {
		case !ok:
			w = newWorker(id, false, now)
			o.workers = append(o.workers, w)
			changes.Added = append(changes.Added, w)
		case w.status.IsSuperseded():
			w.status = WorkerAssigned
			changes.Added = append(changes.Added, w)
		default:
			changes.Kept = append(changes.Kept, w)
		}
		w.isResponsible = responsible != nil && *responsible == id
	}

	return changes, nil
}

// AssignWorker adds one technician to the worker set in ASSIGNED status. The first
// technician on an order without a responsible worker becomes responsible.
func (o *Order) AssignWorker(technicianID int64, now time.Time) (*Worker, error) {
	if technicianID <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("technicianID", technicianID, 1, int64(math.MaxInt64))
	}
	if err := o.validateMutable("assign technician"); err != nil {
		return nil, err
	}
	if o.status.IsClosing() {
		return nil, errs.NewInvalidStateError("order", o.status.String(), "order is closed")
	}

	_, hasResponsible := o.Responsible()

	w, ok := o.Worker(technicianID)
	switch {
	case !ok:
		w = newWorker(technicianID, !hasResponsible, now)
		o.workers = append(o.workers, w)
	case w.IsActive():
		return nil, errs.NewInvalidStateError("order", o.status.String(),
			fmt.Sprintf("technician %d is already assigned", technicianID))
	default:
		w.status = WorkerAssigned
		w.isResponsible = w.isResponsible || !hasResponsible
	}

	return w, nil
}

// ValidateVisit checks that technicianID may record a visit on the order.
func (o *Order) ValidateVisit(technicianID int64) error {
	if err := o.validateMutable("record visit"); err != nil {
		return err
	}
	if o.status.IsClosing() {
		return errs.NewInvalidStateError("order", o.status.String(), "order is closed")
	}
	if w, ok := o.Worker(technicianID); !ok || !w.IsCurrent() {
		return errs.NewInvalidStateError("order", o.status.String(),
			fmt.Sprintf("technician %d is not assigned", technicianID))
	}
	return nil
}

// VisitRecorded applies the sub-transitions triggered by a new visit. visitsBefore is
// the number of non-deleted visits before this one. Returns the workers moved to IN_PROGRESS.
func (o *Order) VisitRecorded(visitsBefore int) []*Worker {
	switch {
	case o.status == StatusPending && visitsBefore == 0:
		o.status = StatusInProgress
	case o.status == StatusInProgress:
	default:
		return nil
	}
	return o.moveWorkers(WorkerAssigned, WorkerInProgress)
}

// VisitRemoved applies the sub-transition triggered by soft-deleting a visit.
// remaining is the number of non-deleted visits left after the removal.
func (o *Order) VisitRemoved(remaining int) []*Worker {
	if o.status != StatusInProgress || remaining > 0 {
		return nil
	}
	o.status = StatusPending
	return o.moveWorkers(WorkerInProgress, WorkerAssigned)
}

// Delete soft-deletes the order. Active workers are cancelled and returned.
func (o *Order) Delete(now time.Time) ([]*Worker, error) {
	if o.IsDeleted() {
		return nil, errs.NewInvalidStateError("order", o.status.String(), "order is already deleted")
	}
	deletedAt := now.UTC()
	o.status = StatusDeleted
	o.deletedAt = &deletedAt

	var affected []*Worker
	for _, w := range o.workers {
		if w.IsActive() {
			w.status = WorkerCancelled
			affected = append(affected, w)
		}
	}
	return affected, nil
}

// Reschedule replaces the window of the order.
func (o *Order) Reschedule(scheduledAt, endAt *time.Time) error {
	if err := o.validateMutable("reschedule"); err != nil {
		return err
	}
	return o.setSchedule(scheduledAt, endAt)
}

// ReplaceServices replaces the catalogue services attached to the order.
func (o *Order) ReplaceServices(serviceIDs []int64) error {
	if err := o.validateMutable("change services"); err != nil {
		return err
	}
	return o.setServiceIDs(serviceIDs)
}

func (o *Order) validateMutable(action string) error {
	if o.IsDeleted() || o.status.IsTerminal() {
		return errs.NewInvalidStateError("order", o.status.String(), "cannot "+action)
	}
	return nil
}

func (o *Order) resolveResponsible(technicianIDs []int64, requested *int64) *int64 {
	if requested != nil {
		return requested
	}
	if current, ok := o.Responsible(); ok && slices.Contains(technicianIDs, current.technicianID) {
		id := current.technicianID
		return &id
	}
	if len(technicianIDs) > 0 {
		id := technicianIDs[0]
		return &id
	}
	return nil
}

func (o *Order) moveWorkers(from, to WorkerStatus) []*Worker {
	var moved []*Worker
	for _, w := range o.workers {
		if w.status == from {
			w.status = to
			moved = append(moved, w)
		}
	}
	return moved
}

func (o *Order) filterWorkers(keep func(*Worker) bool) []*Worker {
	var out []*Worker
	for _, w := range o.workers {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}

func (o *Order) setClientID(clientID int64) error {
	if clientID <= 0 {
		return errs.NewValueIsOutOfRangeError("clientID", clientID, 1, int64(math.MaxInt64))
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setServiceIDs(serviceIDs []int64) error {
	for _, id := range serviceIDs {
		if id <= 0 {
			return errs.NewValueIsOutOfRangeError("serviceIDs", id, 1, int64(math.MaxInt64))
		}
	}
	o.serviceIDs = slices.Clone(serviceIDs)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setSchedule(scheduledAt, endAt *time.Time) error {
	if scheduledAt == nil {
		if endAt != nil {
			return errs.NewValueIsInvalidErrorWithCause("endAt", errors.New("end date without a scheduled date"))
		}
		o.scheduledAt, o.endAt = nil, nil
		return nil
	}
	if _, err := kernel.EffectiveWindow(*scheduledAt, endAt); err != nil {
		return err
	}
	o.scheduledAt, o.endAt = utcPtr(scheduledAt), utcPtr(endAt)
	return nil
}

func (o *Order) setWorkers(workers []*Worker) error {
	seen := make(map[int64]struct{}, len(workers))
	for _, w := range workers {
		if w == nil {
			return errs.NewValueIsRequiredError("worker")
		}
		if _, dup := seen[w.technicianID]; dup {
			return errs.NewValueIsInvalidErrorWithCause("workers",
				fmt.Errorf("technician %d has more than one row", w.technicianID))
		}
		seen[w.technicianID] = struct{}{}
	}
	o.workers = slices.Clone(workers)
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
