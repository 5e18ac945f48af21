// Package notificationrepo is the notification outbox.
package notificationrepo

import (
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    int64     `gorm:"not null"`
	OrderID   int64     `gorm:"not null"`
	Kind      string    `gorm:"not null"`
	Title     string    `gorm:"not null"`
	Message   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	SentAt    *time.Time
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID().Bytes(),
		UserID:    n.UserID(),
		OrderID:   n.OrderID(),
		Kind:      string(n.Kind()),
		Title:     n.Title(),
		Message:   n.Message(),
		CreatedAt: n.CreatedAt(),
		SentAt:    n.SentAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromString(dto.ID.String())
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id,
		dto.UserID,
		dto.OrderID,
		notification.Kind(dto.Kind),
		dto.Title,
		dto.Message,
		dto.CreatedAt,
		dto.SentAt,
	)
}
