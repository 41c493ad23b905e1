// Package guard provides ConstructorGuard, a marker embedded in value objects and
// aggregates to tell a constructed instance apart from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the object was not
// constructed and the caller passed no error of its own.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a private field. Only constructors call
// NewConstructorGuard, so a zero value of the enclosing struct fails Validate.
//
// Example:
//
//	var ErrDishIsNotConstructed = errors.New("Dish must be created via NewDish")
//
//	type Dish struct {
//	    name  string
//	    guard guard.ConstructorGuard
//	}
//
//	func (d *Dish) Validate() error {
//	    return d.guard.Validate(ErrDishIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard and validationError otherwise.
// A nil validationError is replaced by ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
