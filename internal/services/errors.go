// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrFileTooLarge       = errors.New("file too large")
	ErrNoFiles            = errors.New("no files uploaded")
)

var (
	ErrMissingProductFields = fmt.Errorf("%w: missing title, image or price", ErrInvalidInput)
	ErrInvalidDiscount      = fmt.Errorf("%w: discount must be between 0 and 100", ErrInvalidInput)
	ErrInvalidStatus        = fmt.Errorf("%w: unknown product status", ErrInvalidInput)
	ErrCategoryNameRequired = fmt.Errorf("%w: category name is required", ErrInvalidInput)
	ErrCategoryExists       = fmt.Errorf("%w: category already exists", ErrConflict)
	ErrCategoryInUse        = fmt.Errorf("%w: category is referenced by products", ErrConflict)
	ErrUserExists           = fmt.Errorf("%w: user already exists", ErrConflict)
)
