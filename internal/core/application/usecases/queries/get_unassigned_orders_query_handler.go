package queries

import (
	"context"
	"fmt"
	"time"

	"fieldservice/internal/core/domain/model/order"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GetUnassignedOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetUnassignedOrdersQueryHandler(db *gorm.DB) GetUnassignedOrdersQueryHandler {
	return GetUnassignedOrdersQueryHandler{db: db}
}

// Handle returns the oldest-due orders first.
func (h GetUnassignedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUnassignedOrdersQuery,
) ([]UnassignedOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	active := make([]string, 0, len(order.ActiveWorkerStatuses()))
	for _, s := range order.ActiveWorkerStatuses() {
		active = append(active, s.String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT o.id, o.scheduled_at, o.end_at
		FROM orders o
		WHERE o.status = ?
		  AND o.deleted_at IS NULL
		  AND o.scheduled_at > ?
		  AND NOT EXISTS (
			SELECT 1 FROM order_workers w
			WHERE w.order_id = o.id AND w.status = ANY(?)
		  )
		ORDER BY o.scheduled_at, o.id
		LIMIT ?
	`, order.StatusPending.String(), query.Now(), pq.Array(active), query.Limit()).Rows()
	if err != nil {
		return nil, fmt.Errorf("select unassigned orders: %w", err)
	}
	defer rows.Close()

	orders := make([]UnassignedOrderResponse, 0)
	for rows.Next() {
		var (
			item  UnassignedOrderResponse
			endAt *time.Time
		)
		if err = rows.Scan(&item.ID, &item.ScheduledAt, &endAt); err != nil {
			return nil, fmt.Errorf("scan unassigned order: %w", err)
		}
		item.ScheduledAt = item.ScheduledAt.UTC()
		item.EndAt = utc(endAt)
		orders = append(orders, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unassigned orders: %w", err)
	}

	return orders, nil
}
