package account

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

type Role int

const (
	UnknownRole Role = iota
	CustomerRole
	RestaurantRole
	CourierRole
	ManagerRole
)

func (r Role) String() string {
	switch r {
	case CustomerRole:
		return "customer"
	case RestaurantRole:
		return "restaurant"
	case CourierRole:
		return "courier"
	case ManagerRole:
		return "manager"
	case UnknownRole:
	}
	return "unknown"
}

func ParseRole(s string) (Role, error) {
	for _, r := range []Role{CustomerRole, RestaurantRole, CourierRole, ManagerRole} {
		if r.String() == s {
			return r, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a role", s))
}

// User is implemented by every registered entity.
type User interface {
	ID() kernel.UUID
	Name() string
	Role() Role
}
