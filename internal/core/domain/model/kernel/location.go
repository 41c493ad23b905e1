package kernel

import (
	"errors"
	"fmt"
	"math"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrLocationIsNotConstructed is returned when a zero value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is an immutable point on the plane where restaurants, customers and
// couriers live. Coordinates are real numbers; any finite value is accepted.
//
// Two locations are equal when both coordinates match exactly.
//
// Example:
//
//	restaurant, _ := kernel.NewLocation(0, 0)
//	courier, _ := kernel.NewLocation(3, 4)
//	d, _ := courier.DistanceTo(restaurant) // 5
type Location struct { //nolint:recvcheck //using for validation
	x     float64
	y     float64
	guard guard.ConstructorGuard
}

// NewLocation creates a Location. NaN and infinite coordinates are rejected.
//
// Parameters:
//   - x: abscissa, must be finite
//   - y: ordinate, must be finite
//
// Returns:
//   - Location: a valid location
//   - error: joined validation errors for every rejected coordinate
func NewLocation(x float64, y float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setX(x), loc.setY(y)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// MustNewLocation is NewLocation for coordinates known to be finite. It panics otherwise.
func MustNewLocation(x float64, y float64) Location {
	loc, err := NewLocation(x, y)
	if err != nil {
		panic(err)
	}
	return loc
}

// Validate reports whether the Location was built by NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) X() float64 {
	return l.x
}

func (l Location) Y() float64 {
	return l.y
}

// String implements fmt.Stringer, e.g. "Location(1.5,-2)".
func (l Location) String() string {
	return fmt.Sprintf("Location(%g,%g)", l.x, l.y)
}

// IsEqual compares coordinates exactly. Both locations must be constructed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.x == other.x && l.y == other.y, nil
}

// DistanceTo returns the Euclidean distance between two locations.
// The distance is symmetric and zero only for equal locations.
//
// Example:
//
//	a, _ := kernel.NewLocation(1, 1)
//	b, _ := kernel.NewLocation(4, 5)
//	d, err := a.DistanceTo(b) // d = 5, err = nil
func (l Location) DistanceTo(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	return math.Hypot(l.x-other.x, l.y-other.y), nil
}

// setX and setY use pointer receivers so construction can validate in place;
// every other method uses a value receiver.
func (l *Location) setX(x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return errs.NewValueIsOutOfRangeError("x", x, -math.MaxFloat64, math.MaxFloat64)
	}

	l.x = x
	return nil
}

func (l *Location) setY(y float64) error {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return errs.NewValueIsOutOfRangeError("y", y, -math.MaxFloat64, math.MaxFloat64)
	}

	l.y = y
	return nil
}
