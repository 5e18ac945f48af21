// Package visitrepo persists visits. Every update is conditioned on the stored updated_at.
package visitrepo

import (
	"time"

	"fieldservice/internal/core/domain/model/visit"
)

type VisitDTO struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	OrderID      int64     `gorm:"not null"`
	TechnicianID int64     `gorm:"not null"`
	StartAt      time.Time `gorm:"not null"`
	EndAt        time.Time `gorm:"not null"`
	IsReviewed   bool      `gorm:"not null"`
	Evaluation   *int16
	CreatedBy    int64     `gorm:"not null"`
	UpdatedBy    int64     `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
	DeletedAt    *time.Time
}

func (VisitDTO) TableName() string {
	return "visits"
}

func fromDomain(v *visit.Visit) VisitDTO {
	var evaluation *int16
	if e := v.Evaluation(); e != nil {
		value := int16(*e)
		evaluation = &value
	}

	return VisitDTO{
		ID:           v.ID(),
		OrderID:      v.OrderID(),
		TechnicianID: v.TechnicianID(),
		StartAt:      v.Window().Start(),
		EndAt:        v.Window().End(),
		IsReviewed:   v.IsReviewed(),
		Evaluation:   evaluation,
		CreatedBy:    v.CreatedBy(),
		UpdatedBy:    v.UpdatedBy(),
		UpdatedAt:    v.UpdatedAt(),
		DeletedAt:    v.DeletedAt(),
	}
}

func toDomain(dto VisitDTO) (*visit.Visit, error) {
	var evaluation *int
	if dto.Evaluation != nil {
		value := int(*dto.Evaluation)
		evaluation = &value
	}

	return visit.RestoreVisit(visit.Snapshot{
		ID:           dto.ID,
		OrderID:      dto.OrderID,
		TechnicianID: dto.TechnicianID,
		StartAt:      dto.StartAt,
		EndAt:        dto.EndAt,
		IsReviewed:   dto.IsReviewed,
		Evaluation:   evaluation,
		CreatedBy:    dto.CreatedBy,
		UpdatedBy:    dto.UpdatedBy,
		UpdatedAt:    dto.UpdatedAt,
		DeletedAt:    dto.DeletedAt,
	})
}
