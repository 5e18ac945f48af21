package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"fieldservice/internal/adapters/out/postgres/optimistic"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order and its workers, then binds the generated id.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	if err := aggregate.BindID(dto.ID); err != nil {
		return err
	}

	return r.saveWorkers(ctx, aggregate)
}

// Update writes the order row conditioned on its version, then upserts every worker row.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := optimistic.Update(ctx, r.db, &OrderDTO{}, "order", dto.ID, aggregate.Version(), map[string]any{
		"service_ids":  dto.ServiceIDs,
		"status":       dto.Status,
		"scheduled_at": dto.ScheduledAt,
		"end_at":       dto.EndAt,
		"updated_at":   dto.UpdatedAt,
		"updated_by":   dto.UpdatedBy,
		"deleted_at":   dto.DeletedAt,
	}); err != nil {
		return err
	}

	return r.saveWorkers(ctx, aggregate)
}

func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// Bookings loads the active worker rows of technicianIDs joined with their order windows.
func (r *GormOrderRepository) Bookings(ctx context.Context, technicianIDs []int64) (map[int64][]order.Booking, error) {
	bookings := make(map[int64][]order.Booking, len(technicianIDs))
	if len(technicianIDs) == 0 {
		return bookings, nil
	}

	active := make([]string, 0, len(order.ActiveWorkerStatuses()))
	for _, s := range order.ActiveWorkerStatuses() {
		active = append(active, s.String())
	}

	var rows []bookingRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT w.order_id, w.user_id, w.status, o.scheduled_at, o.end_at
		FROM order_workers w
		JOIN orders o ON o.id = w.order_id
		WHERE w.user_id = ANY(?)
		  AND w.status = ANY(?)
		  AND o.deleted_at IS NULL
		ORDER BY w.user_id, o.scheduled_at NULLS LAST, w.order_id
	`, pq.Array(technicianIDs), pq.Array(active)).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	for _, row := range rows {
		bookings[row.UserID] = append(bookings[row.UserID], row.toDomain())
	}

	return bookings, nil
}

func (r *GormOrderRepository) get(ctx context.Context, query *gorm.DB, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := query.First(&dto, "id = ? AND deleted_at IS NULL", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderID", id)
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}

	var workers []WorkerDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Order("created_at, user_id").
		Find(&workers).Error; err != nil {
		return nil, fmt.Errorf("get workers of order %d: %w", id, err)
	}

	return toDomain(dto, workers)
}

func (r *GormOrderRepository) saveWorkers(ctx context.Context, aggregate *order.Order) error {
	workers := workersFromDomain(aggregate)
	if len(workers) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "is_responsible"}),
	}).Create(&workers).Error
	if err != nil {
		return fmt.Errorf("save workers of order %d: %w", aggregate.ID(), err)
	}

	return nil
}
