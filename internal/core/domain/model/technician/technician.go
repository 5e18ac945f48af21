package technician

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

var (
	ErrDNIIsRequired              = errs.NewValueIsRequiredError("dni")
	ErrNameIsRequired             = errs.NewValueIsRequiredError("name")
	ErrTechnicianIsNotConstructed = errors.New("Technician must be created via NewTechnician or RestoreTechnician constructor")
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

func (s Status) Validate() error {
	if s != StatusActive && s != StatusInactive {
		return errs.NewValueIsInvalidErrorWithCause("technician status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// Technician is a field worker that can be assigned to orders.
type Technician struct {
	id             int64
	dni            string
	name           string
	status         Status
	deletedAt      *time.Time
	availabilities []*Availability
	guard          guard.ConstructorGuard
}

// NewTechnician creates an ACTIVE technician without availabilities.
func NewTechnician(dni, name string) (*Technician, error) {
	t := &Technician{
		status: StatusActive,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setDNI(dni),
		t.setName(name),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTechnician rebuilds a persisted technician.
func RestoreTechnician(
	id int64,
	dni, name string,
	status Status,
	deletedAt *time.Time,
	availabilities []*Availability,
) (*Technician, error) {
	t := &Technician{
		deletedAt: deletedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.BindID(id),
		t.setDNI(dni),
		t.setName(name),
		t.setStatus(status),
		t.setAvailabilities(availabilities),
	); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Technician) Validate() error {
	if t == nil {
		return ErrTechnicianIsNotConstructed
	}
	return t.guard.Validate(ErrTechnicianIsNotConstructed)
}

// BindID sets the database identifier once.
func (t *Technician) BindID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("id", id, 1, int64(math.MaxInt64))
	}
	if t.id != 0 && t.id != id {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("technician already bound to %d", t.id))
	}
	t.id = id
	return nil
}

func (t *Technician) ID() int64 {
	return t.id
}

func (t *Technician) DNI() string {
	return t.dni
}

func (t *Technician) Name() string {
	return t.name
}

func (t *Technician) Status() Status {
	return t.status
}

func (t *Technician) DeletedAt() *time.Time {
	return t.deletedAt
}

func (t *Technician) Availabilities() []*Availability {
	return slices.Clone(t.availabilities)
}

// IsSchedulable reports ACTIVE and not soft-deleted.
func (t *Technician) IsSchedulable() bool {
	return t.status == StatusActive && t.deletedAt == nil
}

// Covers reports whether some availability contains the whole window.
func (t *Technician) Covers(window kernel.TimeWindow) bool {
	for _, a := range t.availabilities {
		if a.Window().Covers(window) {
			return true
		}
	}
	return false
}

// AddAvailability declares a new availability window.
func (t *Technician) AddAvailability(window kernel.TimeWindow, kind AvailabilityType) (*Availability, error) {
	if t.deletedAt != nil {
		return nil, errs.NewInvalidStateError("technician", t.status.String(), "technician is deleted")
	}
	a, err := NewAvailability(window, kind)
	if err != nil {
		return nil, err
	}
	t.availabilities = append(t.availabilities, a)
	return a, nil
}

func (t *Technician) Deactivate() {
	t.status = StatusInactive
}

func (t *Technician) setDNI(dni string) error {
	dni = strings.TrimSpace(dni)
	if dni == "" {
		return ErrDNIIsRequired
	}
	t.dni = dni
	return nil
}

func (t *Technician) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	t.name = name
	return nil
}

func (t *Technician) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	t.status = status
	return nil
}

func (t *Technician) setAvailabilities(availabilities []*Availability) error {
	for _, a := range availabilities {
		if a == nil {
			return errs.NewValueIsRequiredError("availability")
		}
		if err := a.Window().Validate(); err != nil {
			return err
		}
	}
	t.availabilities = slices.Clone(availabilities)
	return nil
}
