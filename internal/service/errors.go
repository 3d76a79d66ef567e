package service

import (
	"errors"
	"fmt"

	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/repository"
)

// Service outcomes. Every operation returns one of these (possibly wrapped)
// instead of letting storage or upstream failures escape raw; the HTTP layer
// maps each to a status code.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidID          = errors.New("invalid user ID format")
	ErrMissingField       = errors.New("missing required field")
	ErrUpstreamService    = errors.New("upstream service failed")
	ErrStorage            = errors.New("storage error")
)

// storageErr folds unrecognized repository failures into ErrStorage while
// keeping the original cause in the chain.
func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

// translate maps repository sentinels onto the service taxonomy.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrAlreadyExists
	case errors.Is(err, repository.ErrInvalidID):
		return ErrInvalidID
	default:
		return storageErr(err)
	}
}
