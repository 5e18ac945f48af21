package commands

import (
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrRecordVisitCommandIsNotConstructed = errors.New(
	"RecordVisitCommand must be created via NewRecordVisitCommand constructor",
)

// RecordVisitCommand records a technician's visit on an order.
type RecordVisitCommand struct {
	orderID      int64
	technicianID int64
	window       kernel.TimeWindow
	actorID      int64

	guard guard.ConstructorGuard
}

func NewRecordVisitCommand(orderID, technicianID int64, startAt, endAt time.Time, actorID int64) (RecordVisitCommand, error) {
	window, windowErr := kernel.NewTimeWindow(startAt, endAt)

	if err := errors.Join(
		positiveID("orderID", orderID),
		positiveID("technicianID", technicianID),
		windowErr,
		positiveID("actorID", actorID),
	); err != nil {
		return RecordVisitCommand{}, err
	}

	return RecordVisitCommand{
		orderID:      orderID,
		technicianID: technicianID,
		window:       window,
		actorID:      actorID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RecordVisitCommand) Validate() error {
	return c.guard.Validate(ErrRecordVisitCommandIsNotConstructed)
}

func (c RecordVisitCommand) OrderID() int64            { return c.orderID }
func (c RecordVisitCommand) TechnicianID() int64       { return c.technicianID }
func (c RecordVisitCommand) Window() kernel.TimeWindow { return c.window }
func (c RecordVisitCommand) ActorID() int64            { return c.actorID }
