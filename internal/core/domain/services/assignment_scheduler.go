package services

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/notification"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/domain/model/technician"
	"fieldservice/internal/pkg/errs"
)

// DefaultMaxLoad is the number of active bookings at which a technician stops
// receiving automatic assignments.
const DefaultMaxLoad = 3

// Candidate is a technician eligible for an order together with its current load.
type Candidate struct {
	Technician *technician.Technician
	Load       int
}

// AssignmentScheduler picks the technician for an order.
//
// Selection algorithm:
//   - technicians whose availability covers the order window
//   - minus those at or above the load ceiling
//   - minus those with an overlapping active booking
//   - ordered by ascending load; ties keep the input order (technician id)
//
// Example usage:
//
//	scheduler, _ := services.NewAssignmentScheduler(services.DefaultMaxLoad)
//	ranked, err := scheduler.Rank(o, technicians, bookingsByTechnician, now)
//	if err != nil {
//	    return err
//	}
//	assignment, note, err := scheduler.Assign(o, ranked[0].Technician, now)
type AssignmentScheduler struct {
	availability AvailabilityIndex
	conflicts    ConflictDetector
	load         LoadCounter
	maxLoad      int
}

func NewAssignmentScheduler(maxLoad int) (AssignmentScheduler, error) {
	if maxLoad < 1 {
		return AssignmentScheduler{}, errs.NewValueIsOutOfRangeError("maxLoad", maxLoad, 1, "unbounded")
	}
	return AssignmentScheduler{
		availability: NewAvailabilityIndex(),
		conflicts:    NewConflictDetector(),
		load:         NewLoadCounter(),
		maxLoad:      maxLoad,
	}, nil
}

func (s AssignmentScheduler) MaxLoad() int {
	return s.maxLoad
}

// Window validates that o can be scheduled at now and returns its effective window.
func (s AssignmentScheduler) Window(o *order.Order, now time.Time) (kernel.TimeWindow, error) {
	if err := o.Validate(); err != nil {
		return kernel.TimeWindow{}, err
	}
	if o.IsDeleted() {
		return kernel.TimeWindow{}, errs.NewObjectNotFoundError("orderID", o.ID())
	}
	if o.ScheduledAt() == nil {
		return kernel.TimeWindow{}, errs.NewObjectNotFoundErrorWithCause("orderID", o.ID(), order.ErrOrderIsNotScheduled)
	}
	if o.ScheduledAt().Before(now) {
		return kernel.TimeWindow{}, errs.NewInvalidStateError("order", o.Status().String(),
			fmt.Sprintf("scheduled date %s is in the past", o.ScheduledAt().Format(time.RFC3339)))
	}
	if o.Status().IsClosing() || o.Status().IsTerminal() {
		return kernel.TimeWindow{}, errs.NewInvalidStateError("order", o.Status().String(), "order is closed")
	}
	return o.Window()
}

// Rank returns the eligible technicians for o, best first. bookings maps a technician
// id to its worker rows on other orders.
func (s AssignmentScheduler) Rank(
	o *order.Order,
	technicians []*technician.Technician,
	bookings map[int64][]order.Booking,
	now time.Time,
) ([]Candidate, error) {
	window, err := s.Window(o, now)
	if err != nil {
		return nil, err
	}

	available := s.availability.Available(technicians, window)
	if len(available) == 0 {
		return nil, errs.NewObjectNotFoundErrorWithCause("technician", o.ID(),
			fmt.Errorf("no technician available for %s", window))
	}

	var ranked []Candidate
	for _, t := range available {
		if w, ok := o.Worker(t.ID()); ok && w.IsActive() {
			continue
		}
		load, ok := s.qualify(window, bookings[t.ID()])
		if !ok {
			continue
		}
		ranked = append(ranked, Candidate{Technician: t, Load: load})
	}

	if len(ranked) == 0 {
		return nil, errs.NewSchedulingConflictError(o.ID(),
			fmt.Sprintf("all %d available technician(s) are overloaded or booked", len(available)))
	}

	slices.SortStableFunc(ranked, func(a, b Candidate) int {
		return cmp.Compare(a.Load, b.Load)
	})

	return ranked, nil
}

// Qualifies re-checks one technician against freshly read bookings.
func (s AssignmentScheduler) Qualifies(window kernel.TimeWindow, t *technician.Technician, bookings []order.Booking) bool {
	if t == nil || !t.IsSchedulable() || !t.Covers(window) {
		return false
	}
	_, ok := s.qualify(window, bookings)
	return ok
}

// Assign adds t to o as an ASSIGNED worker and returns the assignment with the
// notification for the technician.
func (s AssignmentScheduler) Assign(
	o *order.Order,
	t *technician.Technician,
	now time.Time,
) (order.Assignment, *notification.Notification, error) {
	w, err := o.AssignWorker(t.ID(), now)
	if err != nil {
		return order.Assignment{}, nil, err
	}
	o.Touch(now)

	note, err := notification.NewNotification(t.ID(), o.ID(), notification.KindOrderAssigned,
		"New order assigned",
		fmt.Sprintf("Order #%d was assigned to you for %s.", o.ID(), o.ScheduledAt().Format(time.RFC3339)),
		now)
	if err != nil {
		return order.Assignment{}, nil, err
	}

	return order.Assignment{
		OrderID:      o.ID(),
		TechnicianID: t.ID(),
		Status:       w.Status(),
		AssignedAt:   o.UpdatedAt(),
	}, note, nil
}

func (s AssignmentScheduler) qualify(window kernel.TimeWindow, bookings []order.Booking) (int, bool) {
	load := s.load.Load(bookings)
	if load >= s.maxLoad {
		return load, false
	}
	if s.conflicts.HasConflict(window, bookings) {
		return load, false
	}
	return load, true
}
