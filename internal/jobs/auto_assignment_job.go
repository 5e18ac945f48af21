package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/application/usecases/queries"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/ports"
	"fieldservice/internal/pkg/errs"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type AssignmentScheduler interface {
	Handle(ctx context.Context, cmd commands.ScheduleAssignmentCommand) (order.Assignment, error)
}

type UnassignedOrdersFinder interface {
	Handle(ctx context.Context, query queries.GetUnassignedOrdersQuery) ([]queries.UnassignedOrderResponse, error)
}

// AutoAssignmentJob schedules a technician onto every upcoming PENDING order that has
// nobody assigned.
type AutoAssignmentJob struct {
	scheduler AssignmentScheduler
	finder    UnassignedOrdersFinder
	clock     ports.Clock
	schedule  string
	batchSize int
	timeout   time.Duration
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewAutoAssignmentJob(
	scheduler AssignmentScheduler,
	finder UnassignedOrdersFinder,
	clock ports.Clock,
	schedule string,
	batchSize int,
	logger *zap.Logger,
) *AutoAssignmentJob {
	logger = logger.With(zap.String("component", "auto_assignment_job"))
	return &AutoAssignmentJob{
		scheduler: scheduler,
		finder:    finder,
		clock:     clock,
		schedule:  schedule,
		batchSize: batchSize,
		timeout:   time.Minute,
		cron:      newCron(logger),
		logger:    logger,
	}
}

func (j *AutoAssignmentJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.Error("auto assignment run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("auto assignment job started", zap.String("schedule", j.schedule))
	return nil
}

func (j *AutoAssignmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("auto assignment job stopped")
}

// RunOnce makes a single pass and returns how many orders got a technician. Orders the
// scheduler cannot place are skipped; only infrastructure failures abort the pass.
func (j *AutoAssignmentJob) RunOnce(ctx context.Context) (int, error) {
	query, err := queries.NewGetUnassignedOrdersQuery(j.clock.Now(), j.batchSize)
	if err != nil {
		return 0, err
	}
	pending, err := j.finder.Handle(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("find unassigned orders: %w", err)
	}

	assigned := 0
	for _, o := range pending {
		if ctx.Err() != nil {
			return assigned, ctx.Err()
		}

		cmd, err := commands.NewScheduleAssignmentCommand(o.ID)
		if err != nil {
			return assigned, err
		}
		assignment, err := j.scheduler.Handle(ctx, cmd)
		switch {
		case err == nil:
			assigned++
			j.logger.Info("order assigned",
				zap.Int64("orderID", assignment.OrderID),
				zap.Int64("technicianID", assignment.TechnicianID))
		case isExpected(err):
			j.logger.Debug("order left unassigned", zap.Int64("orderID", o.ID), zap.Error(err))
		default:
			return assigned, fmt.Errorf("schedule order %d: %w", o.ID, err)
		}
	}

	return assigned, nil
}

// isExpected reports business outcomes that another pass or an operator resolves.
func isExpected(err error) bool {
	return errors.Is(err, errs.ErrSchedulingConflict) ||
		errors.Is(err, errs.ErrConcurrencyConflict) ||
		errors.Is(err, errs.ErrInvalidState) ||
		errors.Is(err, errs.ErrObjectNotFound)
}
