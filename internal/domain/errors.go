package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrNetwork           = errors.New("network error")
	ErrTimeout           = errors.New("request timed out")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidIngredient = errors.New("wrong ingredient format")
	ErrEmptyQuery        = errors.New("empty search query")
	ErrInvalidServings   = errors.New("servings must be positive")
	ErrNoRecipe          = errors.New("no recipe loaded")
	ErrStorage           = errors.New("storage failure")
	ErrStale             = errors.New("response superseded by a newer request")
)

// APIError is a non-success response from the recipe API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// Is makes every APIError match ErrNetwork, and 404s match ErrNotFound.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return true
	case ErrNotFound:
		return e.Status == 404
	}
	return false
}

// ValidationError reports malformed user-submitted data. It matches
// ErrValidation and unwraps to the more specific cause, if any.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) Unwrap() error { return e.Err }
