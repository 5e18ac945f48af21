package notificationrepo

import (
	"context"
	"fmt"

	"fieldservice/internal/core/domain/model/notification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Add(ctx context.Context, notifications ...*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	dtos := make([]NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		dtos = append(dtos, fromDomain(n))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return fmt.Errorf("queue notifications: %w", err)
	}
	return nil
}

func (r *GormNotificationRepository) GetUnsentForUpdate(ctx context.Context, limit int) ([]*notification.Notification, error) {
	var dtos []NotificationDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("sent_at IS NULL").
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, fmt.Errorf("lock unsent notifications: %w", err)
	}

	out := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *GormNotificationRepository) MarkSent(ctx context.Context, notifications ...*notification.Notification) error {
	for _, n := range notifications {
		if !n.IsSent() {
			continue
		}
		if err := r.db.WithContext(ctx).
			Model(&NotificationDTO{}).
			Where("id = ?", n.ID().Bytes()).
			Update("sent_at", n.SentAt()).Error; err != nil {
			return fmt.Errorf("mark notification %s sent: %w", n.ID(), err)
		}
	}
	return nil
}
