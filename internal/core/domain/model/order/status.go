package order

import (
	"fmt"
	"slices"

	"fieldservice/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// Transition table (current -> allowed targets):
//
//	AWAITING_APPROVAL -> AWAITING_APPROVAL, PENDING, IN_PROGRESS
//	PENDING           -> PENDING, AWAITING_APPROVAL, IN_PROGRESS, ON_HOLD, CANCELLED
//	IN_PROGRESS       -> IN_PROGRESS, COMPLETED, CANCELLED, ON_HOLD, FAILED
//	COMPLETED         -> COMPLETED, IN_PROGRESS
//	ON_HOLD           -> ON_HOLD, IN_PROGRESS, CANCELLED, PENDING
//
// CANCELLED, FAILED and DELETED accept no transition at all, not even to themselves.
// DELETED is entered only through Order.Delete.
type Status string

const (
	StatusAwaitingApproval Status = "AWAITING_APPROVAL"
	StatusPending          Status = "PENDING"
	StatusInProgress       Status = "IN_PROGRESS"
	StatusCompleted        Status = "COMPLETED"
	StatusCancelled        Status = "CANCELLED"
	StatusOnHold           Status = "ON_HOLD"
	StatusFailed           Status = "FAILED"
	StatusDeleted          Status = "DELETED"
)

// Statuses lists every status in declaration order.
func Statuses() []Status {
	return []Status{
		StatusAwaitingApproval,
		StatusPending,
		StatusInProgress,
		StatusCompleted,
		StatusCancelled,
		StatusOnHold,
		StatusFailed,
		StatusDeleted,
	}
}

func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		StatusAwaitingApproval: {StatusAwaitingApproval, StatusPending, StatusInProgress},
		StatusPending:          {StatusPending, StatusAwaitingApproval, StatusInProgress, StatusOnHold, StatusCancelled},
		StatusInProgress:       {StatusInProgress, StatusCompleted, StatusCancelled, StatusOnHold, StatusFailed},
		StatusCompleted:        {StatusCompleted, StatusInProgress},
		StatusOnHold:           {StatusOnHold, StatusInProgress, StatusCancelled, StatusPending},
	}
}

// ParseStatus converts an external representation into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that s is one of the declared statuses.
func (s Status) Validate() error {
	if !slices.Contains(Statuses(), s) {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether the table contains the pair (s, target).
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(transitionTable()[s], target)
}

// IsClosing reports whether entering s closes the active work of the order's technicians.
func (s Status) IsClosing() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusFailed
}

// IsTerminal reports whether s has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(transitionTable()[s]) == 0
}

// WorkerStatus is the state of one technician's participation in an order.
type WorkerStatus string

const (
	WorkerAssigned   WorkerStatus = "ASSIGNED"
	WorkerInProgress WorkerStatus = "IN_PROGRESS"
	WorkerCompleted  WorkerStatus = "COMPLETED"
	WorkerFailed     WorkerStatus = "FAILED"
	WorkerCancelled  WorkerStatus = "CANCELLED"
	WorkerReassigned WorkerStatus = "REASSIGNED"
	WorkerDeclined   WorkerStatus = "DECLINED"
)

// ActiveWorkerStatuses are the statuses that count towards a technician's load.
func ActiveWorkerStatuses() []WorkerStatus {
	return []WorkerStatus{WorkerAssigned, WorkerInProgress}
}

func ParseWorkerStatus(s string) (WorkerStatus, error) {
	status := WorkerStatus(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s WorkerStatus) Validate() error {
	switch s {
	case WorkerAssigned, WorkerInProgress, WorkerCompleted, WorkerFailed,
		WorkerCancelled, WorkerReassigned, WorkerDeclined:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("worker status",
			fmt.Errorf("%q is not a valid worker status", string(s)))
	}
}

func (s WorkerStatus) String() string {
	return string(s)
}

// IsActive reports ASSIGNED or IN_PROGRESS.
func (s WorkerStatus) IsActive() bool {
	return slices.Contains(ActiveWorkerStatuses(), s)
}

// IsSuperseded reports rows that no longer belong to the order's worker set.
func (s WorkerStatus) IsSuperseded() bool {
	return s == WorkerReassigned || s == WorkerDeclined
}

// closingWorkerStatus maps a closing order status onto the status its active workers take.
func closingWorkerStatus(s Status) (WorkerStatus, bool) {
	switch s { //nolint:exhaustive // only closing statuses cascade
	case StatusCompleted:
		return WorkerCompleted, true
	case StatusCancelled:
		return WorkerCancelled, true
	case StatusFailed:
		return WorkerFailed, true
	default:
		return "", false
	}
}
