package insights

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned when a salary range check is given a job whose
// salary fields are missing, non-numeric or inverted.
var ErrInvalidRange = errors.New("invalid salary range")

// Reasons reported by RangeError
const (
	ReasonMissing    = "missing"
	ReasonNotInteger = "not an integer"
	ReasonInverted   = "max_salary is lower than min_salary"
)

// RangeError describes which check of MatchesSalaryRange failed.
type RangeError struct {
	// Field is the salary column at fault, empty for an inverted range.
	Field string

	// Reason is one of the Reason constants.
	Reason string
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidRange, e.Reason)
	}
	return fmt.Sprintf("%s: %s is %s", ErrInvalidRange, e.Field, e.Reason)
}

// Is lets errors.Is match ErrInvalidRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrInvalidRange
}
