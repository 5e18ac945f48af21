// Package technicianrepo persists technicians and their availability windows.
package technicianrepo

import (
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/technician"
)

type TechnicianDTO struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	DNI       string `gorm:"column:dni;not null"`
	Name      string `gorm:"not null"`
	Status    string `gorm:"not null"`
	CreatedAt time.Time
	DeletedAt *time.Time
}

func (TechnicianDTO) TableName() string {
	return "technicians"
}

type AvailabilityDTO struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	TechnicianID int64     `gorm:"not null"`
	StartAt      time.Time `gorm:"not null"`
	EndAt        time.Time `gorm:"not null"`
	Type         string    `gorm:"not null"`
}

func (AvailabilityDTO) TableName() string {
	return "technician_availabilities"
}

func fromDomain(aggregate *technician.Technician) TechnicianDTO {
	return TechnicianDTO{
		ID:        aggregate.ID(),
		DNI:       aggregate.DNI(),
		Name:      aggregate.Name(),
		Status:    aggregate.Status().String(),
		DeletedAt: aggregate.DeletedAt(),
	}
}

func availabilityFromDomain(technicianID int64, a *technician.Availability) AvailabilityDTO {
	return AvailabilityDTO{
		ID:           a.ID(),
		TechnicianID: technicianID,
		StartAt:      a.Window().Start(),
		EndAt:        a.Window().End(),
		Type:         string(a.Type()),
	}
}

func toDomain(dto TechnicianDTO, availabilityDTOs []AvailabilityDTO) (*technician.Technician, error) {
	availabilities := make([]*technician.Availability, 0, len(availabilityDTOs))
	for _, ad := range availabilityDTOs {
		window, err := kernel.NewTimeWindow(ad.StartAt, ad.EndAt)
		if err != nil {
			return nil, err
		}
		a, err := technician.RestoreAvailability(ad.ID, window, technician.AvailabilityType(ad.Type))
		if err != nil {
			return nil, err
		}
		availabilities = append(availabilities, a)
	}

	return technician.RestoreTechnician(
		dto.ID,
		dto.DNI,
		dto.Name,
		technician.Status(dto.Status),
		dto.DeletedAt,
		availabilities,
	)
}
