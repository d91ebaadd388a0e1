// Package memory implements the developer store on a mutex-guarded map.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hongminglow/developers-api/internal/models"
	"github.com/hongminglow/developers-api/internal/storage"
)

var _ storage.DeveloperStore = (*Store)(nil)

// Store keeps developer records in process memory for tests and local runs.
type Store struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]models.Developer
}

// New returns an initialized in-memory store.
func New() *Store {
	return &Store{rows: make(map[int64]models.Developer)}
}

// FindByID fetches a developer by id.
func (s *Store) FindByID(_ context.Context, id int64) (models.Developer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.rows[id]
	if !ok {
		return models.Developer{}, storage.ErrNotFound
	}
	return d, nil
}

// FindByEmail fetches a developer by email address, whatever its status.
func (s *Store) FindByEmail(_ context.Context, email string) (models.Developer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.rows {
		if d.Email == email {
			return d, nil
		}
	}
	return models.Developer{}, storage.ErrNotFound
}

// FindAll returns every developer ordered by id.
func (s *Store) FindAll(_ context.Context) ([]models.Developer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter(func(models.Developer) bool { return true }), nil
}

// FindActiveBySpecialty returns ACTIVE developers whose specialty matches exactly.
func (s *Store) FindActiveBySpecialty(_ context.Context, specialty string) ([]models.Developer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter(func(d models.Developer) bool {
		return d.Status == models.StatusActive && d.Specialty == specialty
	}), nil
}

// Save inserts a new developer when d.ID is zero, otherwise overwrites the matching one.
func (s *Store) Save(_ context.Context, d models.Developer) (models.Developer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// an update of a missing row never reaches the email check, like UPDATE ... WHERE id
	if d.ID != 0 {
		if _, ok := s.rows[d.ID]; !ok {
			return models.Developer{}, storage.ErrNotFound
		}
	}
	for id, existing := range s.rows {
		if existing.Email == d.Email && id != d.ID {
			return models.Developer{}, storage.ErrAlreadyExists
		}
	}
	if d.ID == 0 {
		s.nextID++
		d.ID = s.nextID
	}
	s.rows[d.ID] = d
	return d, nil
}

// UpdateStatus changes only the status.
func (s *Store) UpdateStatus(_ context.Context, id int64, status models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.rows[id]
	if !ok {
		return storage.ErrNotFound
	}
	d.Status = status
	s.rows[id] = d
	return nil
}

// DeleteByID removes the developer.
func (s *Store) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

// filter must be called with s.mu held.
func (s *Store) filter(keep func(models.Developer) bool) []models.Developer {
	out := make([]models.Developer, 0, len(s.rows))
	for _, d := range s.rows {
		if keep(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
