package services

import (
	"errors"
	"fmt"

	"github.com/lead-studio/backend/internal/repositories"
)

var (
	ErrNotFound        = repositories.ErrNotFound
	ErrInvalidInput    = errors.New("invalid input")
	ErrProfileRequired = errors.New("user profile required")
	ErrForbidden       = errors.New("forbidden")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
