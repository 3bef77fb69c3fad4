package unitreg

import "fmt"

// UnitNotFoundError means the requested name is not a registered unit.
type UnitNotFoundError struct {
	Name string
}

func (e *UnitNotFoundError) Error() string {
	return fmt.Sprintf("unit not found: %q", e.Name)
}

// UnitDeactivatedError means the unit exists but was deactivated through
// runtime configuration before any construction was attempted.
type UnitDeactivatedError struct {
	Name string
}

func (e *UnitDeactivatedError) Error() string {
	return fmt.Sprintf("unit %q was deactivated through configuration", e.Name)
}

// AmbiguousUnitError means the sole-unit shorthand was used while the
// registry does not hold exactly one unit.
type AmbiguousUnitError struct {
	Registered int
}

func (e *AmbiguousUnitError) Error() string {
	return fmt.Sprintf("no unit name given and %d units are registered", e.Registered)
}

// UnitClosedError means access was attempted after the unit was closed.
type UnitClosedError struct {
	Name string
}

func (e *UnitClosedError) Error() string {
	return fmt.Sprintf("unit %q is closed", e.Name)
}

// DuplicateUnitError means the same unit name appears more than once in
// the descriptors.
type DuplicateUnitError struct {
	Name string
}

func (e *DuplicateUnitError) Error() string {
	return fmt.Sprintf("duplicate unit: %q", e.Name)
}

// ConstructError wraps a failure of the construction call for one unit.
type ConstructError struct {
	Name string
	Err  error
}

func (e *ConstructError) Error() string {
	return fmt.Sprintf("construct unit %q: %v", e.Name, e.Err)
}

func (e *ConstructError) Unwrap() error { return e.Err }

// TeardownError wraps a failure of the teardown call for one unit.
type TeardownError struct {
	Name string
	Err  error
}

func (e *TeardownError) Error() string {
	return fmt.Sprintf("tear down unit %q: %v", e.Name, e.Err)
}

func (e *TeardownError) Unwrap() error { return e.Err }

// StartError wraps the first construction failure observed by StartAll.
type StartError struct {
	Err error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("start units: %v", e.Err)
}

func (e *StartError) Unwrap() error { return e.Err }

// StartInterruptedError means the caller's context was canceled while
// StartAll was waiting for units to come up. It is distinct from a
// construction failure.
type StartInterruptedError struct {
	Err error
}

func (e *StartInterruptedError) Error() string {
	return fmt.Sprintf("start units interrupted: %v", e.Err)
}

func (e *StartInterruptedError) Unwrap() error { return e.Err }
