// Package service contains the application's business logic, sitting between
// the HTTP handlers and the repositories.
package service

import (
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// repoError maps a repository failure to an API error: missing rows become
// NOT_FOUND for the named resource, everything else is a storage failure.
func repoError(err error, resource string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewStorageError(err)
}
