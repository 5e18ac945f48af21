// Package orderrepo persists the Order aggregate: one orders row plus its order_workers rows.
package orderrepo

import (
	"time"

	"fieldservice/internal/core/domain/model/order"

	"github.com/lib/pq"
)

type OrderDTO struct {
	ID          int64         `gorm:"primaryKey;autoIncrement"`
	ClientID    int64         `gorm:"not null"`
	ServiceIDs  pq.Int64Array `gorm:"type:bigint[]"`
	Status      string        `gorm:"not null"`
	ScheduledAt *time.Time
	EndAt       *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
	UpdatedBy   int64     `gorm:"not null"`
	DeletedAt   *time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

type WorkerDTO struct {
	OrderID       int64     `gorm:"primaryKey;autoIncrement:false"`
	UserID        int64     `gorm:"primaryKey;autoIncrement:false"`
	Status        string    `gorm:"not null"`
	IsResponsible bool      `gorm:"not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
}

func (WorkerDTO) TableName() string {
	return "order_workers"
}

// bookingRow is one line of the bookings join.
type bookingRow struct {
	OrderID     int64
	UserID      int64
	Status      string
	ScheduledAt *time.Time
	EndAt       *time.Time
}

func fromDomain(aggregate *order.Order) OrderDTO {
	serviceIDs := aggregate.ServiceIDs()
	if serviceIDs == nil {
		serviceIDs = []int64{}
	}

	return OrderDTO{
		ID:          aggregate.ID(),
		ClientID:    aggregate.ClientID(),
		ServiceIDs:  pq.Int64Array(serviceIDs),
		Status:      aggregate.Status().String(),
		ScheduledAt: aggregate.ScheduledAt(),
		EndAt:       aggregate.EndAt(),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
		UpdatedBy:   aggregate.UpdatedBy(),
		DeletedAt:   aggregate.DeletedAt(),
	}
}

func workersFromDomain(aggregate *order.Order) []WorkerDTO {
	workers := aggregate.Workers()
	dtos := make([]WorkerDTO, 0, len(workers))
	for _, w := range workers {
		dtos = append(dtos, WorkerDTO{
			OrderID:       aggregate.ID(),
			UserID:        w.TechnicianID(),
			Status:        w.Status().String(),
			IsResponsible: w.IsResponsible(),
			CreatedAt:     w.CreatedAt(),
		})
	}
	return dtos
}

func toDomain(dto OrderDTO, workerDTOs []WorkerDTO) (*order.Order, error) {
	workers := make([]*order.Worker, 0, len(workerDTOs))
	for _, wd := range workerDTOs {
		w, err := order.RestoreWorker(wd.UserID, order.WorkerStatus(wd.Status), wd.IsResponsible, wd.CreatedAt)
		if err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:          dto.ID,
		ClientID:    dto.ClientID,
		ServiceIDs:  []int64(dto.ServiceIDs),
		Status:      order.Status(dto.Status),
		ScheduledAt: dto.ScheduledAt,
		EndAt:       dto.EndAt,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
		UpdatedBy:   dto.UpdatedBy,
		DeletedAt:   dto.DeletedAt,
	}, workers)
}

func (r bookingRow) toDomain() order.Booking {
	return order.Booking{
		OrderID:      r.OrderID,
		TechnicianID: r.UserID,
		Status:       order.WorkerStatus(r.Status),
		ScheduledAt:  r.ScheduledAt,
		EndAt:        r.EndAt,
	}
}
