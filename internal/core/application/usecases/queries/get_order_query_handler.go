package queries

import (
	"context"
	"fmt"
	"time"

	"fieldservice/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

type orderRow struct {
	ID           int64
	ClientID     int64
	ServiceIDs   pq.Int64Array
	Status       string
	ScheduledAt  *time.Time
	EndAt        *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	UpdatedBy    int64
	ActiveVisits int
}

// Handle returns errs.ObjectNotFoundError for a missing or soft-deleted order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var row orderRow
	result := db.Raw(`
		SELECT
			o.id,
			o.client_id,
			o.service_ids,
			o.status,
			o.scheduled_at,
			o.end_at,
			o.created_at,
			o.updated_at,
			o.updated_by,
			(SELECT count(*) FROM visits v WHERE v.order_id = o.id AND v.deleted_at IS NULL) AS active_visits
		FROM orders o
		WHERE o.id = ? AND o.deleted_at IS NULL
	`, query.OrderID()).Scan(&row)
	if result.Error != nil {
		return GetOrderQueryResponse{}, fmt.Errorf("get order %d: %w", query.OrderID(), result.Error)
	}
	if result.RowsAffected == 0 {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundErrorWithCause("orderID", query.OrderID(),
			gorm.ErrRecordNotFound)
	}

	workers := make([]OrderWorkerResponse, 0)
	err := db.Raw(`
		SELECT
			w.user_id AS technician_id,
			t.name,
			w.status,
			w.is_responsible,
			w.created_at AS assigned_at
		FROM order_workers w
		JOIN technicians t ON t.id = w.user_id
		WHERE w.order_id = ?
		ORDER BY w.created_at, w.user_id
	`, query.OrderID()).Scan(&workers).Error
	if err != nil {
		return GetOrderQueryResponse{}, fmt.Errorf("get workers of order %d: %w", query.OrderID(), err)
	}

	return GetOrderQueryResponse{
		ID:           row.ID,
		ClientID:     row.ClientID,
		ServiceIDs:   []int64(row.ServiceIDs),
		Status:       row.Status,
		ScheduledAt:  utc(row.ScheduledAt),
		EndAt:        utc(row.EndAt),
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
		UpdatedBy:    row.UpdatedBy,
		ActiveVisits: row.ActiveVisits,
		Workers:      workers,
	}, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
