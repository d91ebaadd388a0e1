package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hongminglow/developers-api/internal/models"
	"github.com/hongminglow/developers-api/internal/storage"
)

// DeveloperService enforces the developer business rules on top of a store.
type DeveloperService struct {
	store storage.DeveloperStore
	log   logrus.FieldLogger
}

// NewDeveloperService constructs the service. A nil logger falls back to the logrus standard logger.
func NewDeveloperService(store storage.DeveloperStore, log logrus.FieldLogger) *DeveloperService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DeveloperService{store: store, log: log.WithField("component", "developer_service")}
}

// Create inserts a new developer with status forced to ACTIVE.
// An email already used by any record, deleted ones included, yields ErrDuplicateEmail.
func (s *DeveloperService) Create(ctx context.Context, d models.Developer) (models.Developer, error) {
	if err := validate(d); err != nil {
		return models.Developer{}, err
	}

	_, err := s.store.FindByEmail(ctx, d.Email)
	switch {
	case err == nil:
		s.log.WithField("email", d.Email).Debug("create rejected: email in use")
		return models.Developer{}, ErrDuplicateEmail
	case !errors.Is(err, storage.ErrNotFound):
		return models.Developer{}, s.storeFailure("find developer by email", err)
	}

	d.ID = 0
	d.Status = models.StatusActive
	created, err := s.store.Save(ctx, d)
	if err != nil {
		// a concurrent insert can win between the lookup and the insert; the unique index catches it
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.Developer{}, ErrDuplicateEmail
		}
		return models.Developer{}, s.storeFailure("insert developer", err)
	}
	s.log.WithField("developer_id", created.ID).Info("developer created")
	return created, nil
}

// Update overwrites every stored field of the developer identified by d.ID.
// An absent status is stored as ACTIVE.
func (s *DeveloperService) Update(ctx context.Context, d models.Developer) (models.Developer, error) {
	if d.ID <= 0 {
		return models.Developer{}, ErrNotFound
	}
	if d.Status == "" {
		d.Status = models.StatusActive
	}
	if !d.Status.Valid() {
		return models.Developer{}, validationError("status must be ACTIVE or DELETED, got %q", d.Status)
	}
	if err := validate(d); err != nil {
		return models.Developer{}, err
	}

	updated, err := s.store.Save(ctx, d)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return models.Developer{}, ErrNotFound
		case errors.Is(err, storage.ErrAlreadyExists):
			return models.Developer{}, ErrDuplicateEmail
		}
		return models.Developer{}, s.storeFailure("update developer", err)
	}
	s.log.WithField("developer_id", updated.ID).Info("developer updated")
	return updated, nil
}

// GetAll returns every developer regardless of status.
func (s *DeveloperService) GetAll(ctx context.Context) ([]models.Developer, error) {
	out, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, s.storeFailure("list developers", err)
	}
	return out, nil
}

// FindAllActiveBySpecialty returns ACTIVE developers with exactly this specialty.
func (s *DeveloperService) FindAllActiveBySpecialty(ctx context.Context, specialty string) ([]models.Developer, error) {
	out, err := s.store.FindActiveBySpecialty(ctx, specialty)
	if err != nil {
		return nil, s.storeFailure("list developers by specialty", err)
	}
	return out, nil
}

// GetByID reports found=false for an unknown id; that is not an error at this layer.
func (s *DeveloperService) GetByID(ctx context.Context, id int64) (models.Developer, bool, error) {
	d, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Developer{}, false, nil
		}
		return models.Developer{}, false, s.storeFailure("find developer by id", err)
	}
	return d, true, nil
}

// SoftDeleteByID marks the developer DELETED. The row stays readable.
func (s *DeveloperService) SoftDeleteByID(ctx context.Context, id int64) error {
	if err := s.store.UpdateStatus(ctx, id, models.StatusDeleted); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return s.storeFailure("soft delete developer", err)
	}
	s.log.WithField("developer_id", id).Info("developer soft deleted")
	return nil
}

// HardDeleteByID removes the developer row.
func (s *DeveloperService) HardDeleteByID(ctx context.Context, id int64) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return s.storeFailure("hard delete developer", err)
	}
	s.log.WithField("developer_id", id).Info("developer hard deleted")
	return nil
}

func (s *DeveloperService) storeFailure(op string, err error) error {
	s.log.WithError(err).WithField("op", op).Error("store call failed")
	return fmt.Errorf("%s: %w", op, err)
}

func validate(d models.Developer) error {
	switch {
	case strings.TrimSpace(d.FirstName) == "":
		return validationError("firstName is required")
	case strings.TrimSpace(d.LastName) == "":
		return validationError("lastName is required")
	case strings.TrimSpace(d.Email) == "":
		return validationError("email is required")
	}
	return nil
}
