package services

import (
	"fmt"
	"time"

	"fieldservice/internal/core/domain/model/notification"
	"fieldservice/internal/core/domain/model/order"
)

// OrderUpdate is a requested change to an order. Nil fields are left untouched; a nil
// WorkerIDs keeps the worker set, an empty non-nil slice clears it.
type OrderUpdate struct {
	Status        *order.Status
	WorkerIDs     []int64
	ResponsibleID *int64
}

// Outcome reports what a change did to an order.
type Outcome struct {
	PreviousStatus order.Status
	Status         order.Status
	Notifications  []*notification.Notification
}

// StatusChanged reports whether the order status moved.
func (o Outcome) StatusChanged() bool {
	return o.PreviousStatus != o.Status
}

// OrderStatusMachine drives an order through status and worker changes and
// collects the notifications owed to the affected technicians.
type OrderStatusMachine struct{}

func NewOrderStatusMachine() OrderStatusMachine {
	return OrderStatusMachine{}
}

// Update applies req to o. Every check runs before the first mutation, so a
// rejected update leaves o as it was. activeVisits is the order's non-deleted visit count.
func (m OrderStatusMachine) Update(o *order.Order, req OrderUpdate, activeVisits int, now time.Time) (Outcome, error) {
	out := Outcome{PreviousStatus: o.Status()}

	if req.Status != nil {
		if err := o.ValidateStatusChange(*req.Status, activeVisits); err != nil {
			return Outcome{}, err
		}
	} else if err := o.ValidateUpdate(); err != nil {
		return Outcome{}, err
	}
	if req.WorkerIDs != nil {
		if err := o.ValidateWorkers(req.WorkerIDs, req.ResponsibleID); err != nil {
			return Outcome{}, err
		}
	} else if req.ResponsibleID != nil {
		if err := o.ValidateResponsible(*req.ResponsibleID); err != nil {
			return Outcome{}, err
		}
	}

	var notes []*notification.Notification
	if req.WorkerIDs != nil {
		changes, err := o.ReconcileWorkers(req.WorkerIDs, req.ResponsibleID, now)
		if err != nil {
			return Outcome{}, err
		}
		notes = append(notes, m.notify(o, changes.Removed, notification.KindOrderReassigned, now)...)
		notes = append(notes, m.notify(o, changes.Added, notification.KindOrderAssigned, now)...)
	} else if req.ResponsibleID != nil {
		if _, err := o.ChangeResponsible(*req.ResponsibleID); err != nil {
			return Outcome{}, err
		}
	}

	var cascaded []*order.Worker
	if req.Status != nil {
		var err error
		if cascaded, err = o.ChangeStatus(*req.Status, activeVisits); err != nil {
			return Outcome{}, err
		}
	} else {
		cascaded = o.CascadeClosing()
	}
	notes = append(notes, m.notify(o, cascaded, notification.KindOrderStatusChanged, now)...)

	o.Touch(now)
	out.Status = o.Status()
	out.Notifications = notes
	return out, nil
}

// VisitRecorded applies the sub-transitions of a new visit. visitsBefore excludes the new visit.
func (m OrderStatusMachine) VisitRecorded(o *order.Order, visitsBefore int, now time.Time) Outcome {
	out := Outcome{PreviousStatus: o.Status()}
	o.VisitRecorded(visitsBefore)
	o.Touch(now)
	out.Status = o.Status()
	return out
}

// VisitRemoved applies the sub-transition of a soft-deleted visit. remaining excludes the removed visit.
func (m OrderStatusMachine) VisitRemoved(o *order.Order, remaining int, now time.Time) Outcome {
	out := Outcome{PreviousStatus: o.Status()}
	o.VisitRemoved(remaining)
	o.Touch(now)
	out.Status = o.Status()
	return out
}

// Delete soft-deletes o and cancels the work of its active technicians.
func (m OrderStatusMachine) Delete(o *order.Order, now time.Time) (Outcome, error) {
	out := Outcome{PreviousStatus: o.Status()}
	affected, err := o.Delete(now)
	if err != nil {
		return Outcome{}, err
	}
	o.Touch(now)
	out.Status = o.Status()
	out.Notifications = m.notify(o, affected, notification.KindOrderDeleted, now)
	return out, nil
}

func (m OrderStatusMachine) notify(
	o *order.Order,
	workers []*order.Worker,
	kind notification.Kind,
	now time.Time,
) []*notification.Notification {
	notes := make([]*notification.Notification, 0, len(workers))
	for _, w := range workers {
		title, message := describe(o, kind)
		n, err := notification.NewNotification(w.TechnicianID(), o.ID(), kind, title, message, now)
		if err != nil {
			// technician ids on worker rows are validated on load; nothing to notify otherwise
			continue
		}
		notes = append(notes, n)
	}
	return notes
}

func describe(o *order.Order, kind notification.Kind) (string, string) {
	switch kind {
	case notification.KindOrderAssigned:
		return "New order assigned", fmt.Sprintf("Order #%d was assigned to you.", o.ID())
	case notification.KindOrderReassigned:
		return "Order reassigned", fmt.Sprintf("You were removed from order #%d.", o.ID())
	case notification.KindOrderDeleted:
		return "Order deleted", fmt.Sprintf("Order #%d was deleted.", o.ID())
	default:
		return "Order status changed", fmt.Sprintf("Order #%d is now %s.", o.ID(), o.Status())
	}
}
