package services

import (
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/technician"
)

// AvailabilityIndex selects technicians able to work a whole window.
type AvailabilityIndex struct{}

func NewAvailabilityIndex() AvailabilityIndex {
	return AvailabilityIndex{}
}

// Available returns the ACTIVE, non-deleted technicians with an availability covering
// window, keeping input order. An empty result is not an error.
func (AvailabilityIndex) Available(technicians []*technician.Technician, window kernel.TimeWindow) []*technician.Technician {
	var out []*technician.Technician
	for _, t := range technicians {
		if t == nil || !t.IsSchedulable() {
			continue
		}
		if t.Covers(window) {
			out = append(out, t)
		}
	}
	return out
}
