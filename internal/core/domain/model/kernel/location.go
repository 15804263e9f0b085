package kernel

import (
	"fmt"
	"strings"

	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/guard"
)

const (
	// ZoneSeparator splits a location code into its zone prefix and the rest of the bin path.
	ZoneSeparator = "-"

	maxLocationLength = 64
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location is a warehouse bin code, e.g. "A-01-03". The zone of a location is the
// prefix before its first ZoneSeparator ("A" in the example). A code with no
// separator is its own zone.
//
// Example:
//
//	loc, err := kernel.NewLocation("B-12-04")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(loc.Zone()) // B
type Location struct { //nolint:recvcheck //using for validation
	code  string
	guard guard.ConstructorGuard
}

// NewLocation trims and validates a bin code.
func NewLocation(code string) (Location, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Location{}, errs.NewValueIsRequiredError("location")
	}
	if len(code) > maxLocationLength {
		return Location{}, errs.NewValueIsOutOfRangeError("location length", len(code), 1, maxLocationLength)
	}
	if strings.ContainsAny(code, ",\n\t") {
		return Location{}, errs.NewValueIsInvalidErrorWithCause(
			"location",
			fmt.Errorf("%q contains a forbidden character", code),
		)
	}

	return Location{code: code, guard: guard.NewConstructorGuard()}, nil
}

// MustNewLocation is NewLocation for literals known to be valid; it panics otherwise.
func MustNewLocation(code string) Location {
	loc, err := NewLocation(code)
	if err != nil {
		panic(err)
	}
	return loc
}

// Validate checks that the Location was built through NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Code returns the bin code.
func (l Location) Code() string {
	return l.code
}

// Zone returns the location prefix before the first ZoneSeparator.
func (l Location) Zone() string {
	zone, _, _ := strings.Cut(l.code, ZoneSeparator)
	return zone
}

// IsEqual reports whether both locations carry the same code.
func (l Location) IsEqual(other Location) bool {
	return l.code == other.code
}

func (l Location) String() string {
	return l.code
}
