// Package commands contains the business operations that modify system state.
// Every handler validates its command, opens a unit of work, and commits only when
// the whole change, including queued notifications, has been written.
package commands

import (
	"context"

	"fieldservice/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	TechnicianRepoFactory interface {
		TechnicianRepository() ports.TechnicianRepository
	}

	VisitRepoFactory interface {
		VisitRepository() ports.VisitRepository
	}

	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// TechnicianUoW manages transactions for technician-only operations.
	TechnicianUoW interface {
		TxManager
		TechnicianRepoFactory
	}

	TechnicianUoWFactory interface {
		Create() TechnicianUoW
	}

	// VisitUoW manages transactions for visit-only operations.
	VisitUoW interface {
		TxManager
		VisitRepoFactory
	}

	VisitUoWFactory interface {
		Create() VisitUoW
	}

	// NotificationUoW manages transactions over the notification outbox.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}

	// UoW spans every aggregate. Order lifecycle commands use it because a status change
	// reads visits, writes workers and queues notifications in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   // ... mutate, write, queue notifications
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		TechnicianRepoFactory
		VisitRepoFactory
		NotificationRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

