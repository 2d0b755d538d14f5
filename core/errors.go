package core

import "errors"

var (
	ErrNotFound         = errors.New("todos: not found")
	ErrMethodNotAllowed = errors.New("todos: method not allowed")
	ErrUnknownAction    = errors.New("todos: unknown action")
	ErrAmbiguousAction  = errors.New("todos: more than one action named")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsMethodNotAllowedError(err error) bool {
	return errors.Is(err, ErrMethodNotAllowed)
}

func IsUnknownActionError(err error) bool {
	return errors.Is(err, ErrUnknownAction)
}
