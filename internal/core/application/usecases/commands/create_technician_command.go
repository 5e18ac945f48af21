package commands

import (
	"errors"
	"strings"

	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

var ErrCreateTechnicianCommandIsNotConstructed = errors.New(
	"CreateTechnicianCommand must be created via NewCreateTechnicianCommand constructor",
)

// CreateTechnicianCommand registers a technician identified by a national id (DNI).
type CreateTechnicianCommand struct { //nolint:recvcheck //using for validation
	dni  string
	name string

	guard guard.ConstructorGuard
}

func NewCreateTechnicianCommand(dni, name string) (CreateTechnicianCommand, error) {
	cmd := CreateTechnicianCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDNI(dni),
		cmd.setName(name),
	); err != nil {
		return CreateTechnicianCommand{}, err
	}

	return cmd, nil
}

func (c CreateTechnicianCommand) Validate() error {
	return c.guard.Validate(ErrCreateTechnicianCommandIsNotConstructed)
}

func (c CreateTechnicianCommand) DNI() string {
	return c.dni
}

func (c CreateTechnicianCommand) Name() string {
	return c.name
}

func (c *CreateTechnicianCommand) setDNI(dni string) error {
	dni = strings.TrimSpace(dni)
	if dni == "" {
		return errs.NewValueIsRequiredError("dni")
	}

	c.dni = dni
	return nil
}

func (c *CreateTechnicianCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}
