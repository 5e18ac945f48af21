package jobs

import (
	"context"
	"fmt"
	"time"

	"fieldservice/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type NotificationDispatcher interface {
	Handle(ctx context.Context, cmd commands.DispatchNotificationsCommand) (int, error)
}

// NotificationDispatchJob drains the notification outbox in batches.
type NotificationDispatchJob struct {
	dispatcher NotificationDispatcher
	schedule   string
	batchSize  int
	timeout    time.Duration
	cron       *cron.Cron
	logger     *zap.Logger
}

func NewNotificationDispatchJob(
	dispatcher NotificationDispatcher,
	schedule string,
	batchSize int,
	logger *zap.Logger,
) *NotificationDispatchJob {
	logger = logger.With(zap.String("component", "notification_dispatch_job"))
	return &NotificationDispatchJob{
		dispatcher: dispatcher,
		schedule:   schedule,
		batchSize:  batchSize,
		timeout:    30 * time.Second,
		cron:       newCron(logger),
		logger:     logger,
	}
}

func (j *NotificationDispatchJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.Error("notification dispatch failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("notification dispatch job started", zap.String("schedule", j.schedule))
	return nil
}

func (j *NotificationDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("notification dispatch job stopped")
}

// RunOnce keeps dispatching full batches until the outbox is drained or a publish fails.
func (j *NotificationDispatchJob) RunOnce(ctx context.Context) (int, error) {
	cmd, err := commands.NewDispatchNotificationsCommand(j.batchSize)
	if err != nil {
		return 0, err
	}

	total := 0
	for {
		sent, err := j.dispatcher.Handle(ctx, cmd)
		total += sent
		if err != nil {
			return total, err
		}
		if sent < j.batchSize || ctx.Err() != nil {
			break
		}
	}

	if total > 0 {
		j.logger.Debug("notifications dispatched", zap.Int("count", total))
	}
	return total, nil
}
