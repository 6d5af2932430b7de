package crud

import (
	"errors"
	"fmt"

	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/app/system/status"
)

// ErrNotFound is returned when an id does not resolve, including ids that
// are not valid hex.
var ErrNotFound = content.ErrNotFound

// PersistenceError wraps a store failure. Its message is safe to show;
// the cause is only reachable through Unwrap.
type PersistenceError struct {
	Resource string
	Op       string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s failed", e.Resource, e.Op)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// AsValidation converts err to schema.Errors when it describes bad input.
// Status transition errors are reported on the "status" field.
func AsValidation(err error) (schema.Errors, bool) {
	var errs schema.Errors
	if errors.As(err, &errs) {
		return errs, len(errs) > 0
	}
	var te *status.TransitionError
	if errors.As(err, &te) {
		return schema.Field("status", "%s", te.Error()), true
	}
	return nil, false
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
