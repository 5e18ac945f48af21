package ports

import (
	"context"

	"fieldservice/internal/core/domain/model/notification"
)

// NotificationRepository is the outbox written in the same transaction as the change
// that produced the notifications.
type NotificationRepository interface {
	Add(ctx context.Context, notifications ...*notification.Notification) error

	// GetUnsentForUpdate locks up to limit unsent notifications, oldest first, skipping
	// rows already locked by another dispatcher.
	GetUnsentForUpdate(ctx context.Context, limit int) ([]*notification.Notification, error)

	MarkSent(ctx context.Context, notifications ...*notification.Notification) error
}

// NotificationPublisher delivers a notification to its recipient.
type NotificationPublisher interface {
	Publish(ctx context.Context, n *notification.Notification) error
}
