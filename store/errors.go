package store

import "errors"

// ValidationError reports input the store refused to keep.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

var ErrEmptyTodo = &ValidationError{Reason: "empty todo"}

func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
