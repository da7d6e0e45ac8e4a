package errs

import "errors"

// Error kinds. Every domain sentinel is marked with exactly one of these so
// that callers can classify failures with errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrAuthorization = errors.New("authorization error")
	ErrAvailability  = errors.New("availability error")
	ErrTiming        = errors.New("timing error")
)

// Kinds lists the taxonomy markers in the order handlers check them.
var Kinds = []error{ErrValidation, ErrNotFound, ErrAuthorization, ErrAvailability, ErrTiming}

// KindOf returns the taxonomy marker carried by err, or nil.
func KindOf(err error) error {
	for _, k := range Kinds {
		if Is(err, k) {
			return k
		}
	}
	return nil
}
