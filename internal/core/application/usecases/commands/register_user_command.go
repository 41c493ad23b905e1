package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrRegisterUserCommandIsNotConstructed = errors.New(
		"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
	)
	ErrNameIsRequired     = errs.NewValueIsRequiredError("name")
	ErrUsernameIsRequired = errs.NewValueIsRequiredError("username")
	// ErrLocationIsRequiredForRole is returned when registering a located role without a location.
	ErrLocationIsRequiredForRole = errs.NewValueIsRequiredError("location")
)

// RegisterUserCommand registers a customer, restaurant, courier or manager.
// The contact keys must not be used by any other user of any role.
//
// Example:
//
//	loc, _ := kernel.NewLocation(2, 3)
//	cmd, err := NewRegisterUserCommand(account.CourierRole, "Ann", account.Contact{Username: "ann"}, loc)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
//	fmt.Println("courier", cmd.UserID())
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.UUID
	role     account.Role
	name     string
	contact  account.Contact
	location kernel.Location

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand validates the registration and assigns a fresh user ID.
// Managers have no location; pass the zero Location for them.
func NewRegisterUserCommand(
	role account.Role,
	name string,
	contact account.Contact,
	location kernel.Location,
) (RegisterUserCommand, error) {
	command := RegisterUserCommand{
		userID: kernel.NewUUID(),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRole(role),
		command.setName(name),
		command.setContact(contact),
		command.setLocation(role, location),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	return command, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

// UserID is the identifier the new user will have.
func (c RegisterUserCommand) UserID() kernel.UUID {
	return c.userID
}

func (c RegisterUserCommand) Role() account.Role {
	return c.role
}

func (c RegisterUserCommand) Name() string {
	return c.name
}

func (c RegisterUserCommand) Contact() account.Contact {
	return c.contact
}

func (c RegisterUserCommand) Location() kernel.Location {
	return c.location
}

func (c *RegisterUserCommand) setRole(role account.Role) error {
	if role == account.UnknownRole {
		return errs.NewValueIsInvalidError("role")
	}
	c.role = role
	return nil
}

func (c *RegisterUserCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *RegisterUserCommand) setContact(contact account.Contact) error {
	if strings.TrimSpace(contact.Username) == "" {
		return ErrUsernameIsRequired
	}
	c.contact = contact
	return nil
}

func (c *RegisterUserCommand) setLocation(role account.Role, location kernel.Location) error {
	if role == account.ManagerRole {
		return nil
	}
	if err := location.Validate(); err != nil {
		return errors.Join(ErrLocationIsRequiredForRole, err)
	}
	c.location = location
	return nil
}
