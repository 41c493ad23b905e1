package account

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrManagerIsNotConstructed = errs.NewValueIsRequiredError("manager must be created via NewManager constructor")

// Manager administers platform settings: delivery policy, discount rates and profit targets.
type Manager struct {
	id       kernel.UUID
	name     string
	username string
	guard    guard.ConstructorGuard
}

func NewManager(id kernel.UUID, name string, username string) (*Manager, error) {
	m := &Manager{guard: guard.NewConstructorGuard()}

	name = strings.TrimSpace(name)
	username = strings.TrimSpace(username)

	var nameErr, usernameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if username == "" {
		usernameErr = errs.NewValueIsRequiredError("username")
	}
	if err := errors.Join(id.Validate(), nameErr, usernameErr); err != nil {
		return nil, err
	}

	m.id = id
	m.name = name
	m.username = username
	return m, nil
}

func (m *Manager) Validate() error {
	if m == nil {
		return ErrManagerIsNotConstructed
	}
	return m.guard.Validate(ErrManagerIsNotConstructed)
}

func (m *Manager) ID() kernel.UUID {
	return m.id
}

func (m *Manager) Name() string {
	return m.name
}

func (m *Manager) Username() string {
	return m.username
}

func (m *Manager) Role() Role {
	return ManagerRole
}
