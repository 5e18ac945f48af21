package commands

import (
	"context"
	"fmt"

	"fieldservice/internal/core/domain/model/notification"
	"fieldservice/internal/core/ports"
)

// DispatchNotificationsCommandHandler drains the notification outbox.
//
// A batch of unsent rows is locked with SKIP LOCKED, so several dispatchers never
// deliver the same row. Rows published before a failure are still marked sent; the
// failed row and the rest of the batch stay queued for the next run.
type DispatchNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	publisher  ports.NotificationPublisher
	clock      ports.Clock
}

func NewDispatchNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	publisher ports.NotificationPublisher,
	clock ports.Clock,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle returns the number of notifications delivered.
func (h DispatchNotificationsCommandHandler) Handle(ctx context.Context, cmd DispatchNotificationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	notificationRepo := uow.NotificationRepository()

	batch, err := notificationRepo.GetUnsentForUpdate(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(batch) == 0 {
		return 0, nil
	}

	sent := make([]*notification.Notification, 0, len(batch))
	var publishErr error
	for _, n := range batch {
		if publishErr = h.publisher.Publish(ctx, n); publishErr != nil {
			publishErr = fmt.Errorf("publish notification %s: %w", n.ID().String(), publishErr)
			break
		}
		n.MarkSent(h.clock.Now())
		sent = append(sent, n)
	}

	if len(sent) > 0 {
		if err = notificationRepo.MarkSent(ctx, sent...); err != nil {
			return 0, err
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, err
		}
	}

	return len(sent), publishErr
}
