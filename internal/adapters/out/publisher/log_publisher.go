package publisher

import (
	"context"

	"fieldservice/internal/core/domain/model/notification"

	"go.uber.org/zap"
)

// LogPublisher writes notifications to the log. It is used when no Redis address is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With(zap.String("component", "notification-publisher"))}
}

func (p *LogPublisher) Publish(_ context.Context, n *notification.Notification) error {
	p.logger.Info("notification",
		zap.Stringer("id", n.ID()),
		zap.Int64("userID", n.UserID()),
		zap.Int64("orderID", n.OrderID()),
		zap.String("kind", string(n.Kind())),
		zap.String("title", n.Title()),
		zap.String("message", n.Message()),
	)
	return nil
}
