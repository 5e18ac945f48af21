package queries

import (
	"context"
	"fmt"
	"time"

	"fieldservice/internal/core/domain/model/order"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

type listedOrderRow struct {
	ID            int64
	ClientID      int64
	ServiceIDs    pq.Int64Array
	Status        string
	ScheduledAt   *time.Time
	EndAt         *time.Time
	UpdatedAt     time.Time
	ResponsibleID *int64
}

// Handle pages through non-deleted orders, soonest scheduled first. Orders without
// a date sort last.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	countSQL, countArgs, err := applyOrderFilters(sq.Select("count(*)").From("orders o"), query).ToSql()
	if err != nil {
		return ListOrdersQueryResponse{}, fmt.Errorf("build order count: %w", err)
	}
	var total int64
	if err = db.Raw(countSQL, countArgs...).Scan(&total).Error; err != nil {
		return ListOrdersQueryResponse{}, fmt.Errorf("count orders: %w", err)
	}

	listSQL, listArgs, err := applyOrderFilters(
		sq.Select(
			"o.id",
			"o.client_id",
			"o.service_ids",
			"o.status",
			"o.scheduled_at",
			"o.end_at",
			"o.updated_at",
		).
			Column(sq.Expr(`(
				SELECT w.user_id FROM order_workers w
				WHERE w.order_id = o.id AND w.is_responsible AND NOT (w.status = ANY(?))
				LIMIT 1
			) AS responsible_id`, pq.Array(supersededStatuses()))).
			From("orders o"),
		query,
	).
		OrderBy("o.scheduled_at ASC NULLS LAST", "o.id ASC").
		Limit(uint64(query.Limit())).
		Offset(uint64(query.Offset())).
		ToSql()
	if err != nil {
		return ListOrdersQueryResponse{}, fmt.Errorf("build order list: %w", err)
	}

	var rows []listedOrderRow
	if err = db.Raw(listSQL, listArgs...).Scan(&rows).Error; err != nil {
		return ListOrdersQueryResponse{}, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]ListedOrderResponse, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, ListedOrderResponse{
			ID:            row.ID,
			ClientID:      row.ClientID,
			ServiceIDs:    []int64(row.ServiceIDs),
			Status:        row.Status,
			ScheduledAt:   utc(row.ScheduledAt),
			EndAt:         utc(row.EndAt),
			UpdatedAt:     row.UpdatedAt.UTC(),
			ResponsibleID: row.ResponsibleID,
		})
	}

	return ListOrdersQueryResponse{Orders: orders, Total: total}, nil
}

func applyOrderFilters(b sq.SelectBuilder, query ListOrdersQuery) sq.SelectBuilder {
	b = b.Where("o.deleted_at IS NULL")

	if len(query.Statuses()) > 0 {
		statuses := make([]string, 0, len(query.Statuses()))
		for _, s := range query.Statuses() {
			statuses = append(statuses, s.String())
		}
		b = b.Where(sq.Eq{"o.status": statuses})
	}
	if id := query.ClientID(); id != nil {
		b = b.Where(sq.Eq{"o.client_id": *id})
	}
	if id := query.TechnicianID(); id != nil {
		b = b.Where(sq.Expr(`EXISTS (
			SELECT 1 FROM order_workers w
			WHERE w.order_id = o.id AND w.user_id = ? AND NOT (w.status = ANY(?))
		)`, *id, pq.Array(supersededStatuses())))
	}
	if from := query.From(); from != nil {
		b = b.Where(sq.GtOrEq{"o.scheduled_at": *from})
	}
	if to := query.To(); to != nil {
		b = b.Where(sq.Lt{"o.scheduled_at": *to})
	}

	return b
}

func supersededStatuses() []string {
	return []string{order.WorkerReassigned.String(), order.WorkerDeclined.String()}
}
