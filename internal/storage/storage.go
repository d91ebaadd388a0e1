package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/developers-api/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// DeveloperStore captures persistence operations needed by the developer service.
// Every call is a single statement against the backing store.
type DeveloperStore interface {
	FindByID(ctx context.Context, id int64) (models.Developer, error)
	FindByEmail(ctx context.Context, email string) (models.Developer, error)
	FindAll(ctx context.Context) ([]models.Developer, error)
	FindActiveBySpecialty(ctx context.Context, specialty string) ([]models.Developer, error)
	// Save inserts when d.ID is zero and fully overwrites the row otherwise.
	Save(ctx context.Context, d models.Developer) (models.Developer, error)
	UpdateStatus(ctx context.Context, id int64, status models.Status) error
	DeleteByID(ctx context.Context, id int64) error
}
