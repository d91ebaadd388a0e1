package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/developers-api/internal/models"
	"github.com/hongminglow/developers-api/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the storage.DeveloperStore interface at compile time.
var _ storage.DeveloperStore = (*Store)(nil)

const uniqueViolation = "23505"

const developerColumns = `id, first_name, last_name, email, specialty, status`

// Store provides Postgres-backed persistence for developers.
type Store struct {
	pool *pgxpool.Pool
}

// NewDeveloperStore creates a new Store and runs migrations.
func NewDeveloperStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS developers (
			id BIGSERIAL PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL,
			specialty TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'ACTIVE' CHECK (status IN ('ACTIVE', 'DELETED'))
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS developers_email_unique_idx ON developers (email);`,
		`CREATE INDEX IF NOT EXISTS developers_status_specialty_idx ON developers (status, specialty);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// FindByID fetches a developer by primary key.
func (s *Store) FindByID(ctx context.Context, id int64) (models.Developer, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+developerColumns+` FROM developers WHERE id = $1`, id)
	return scanDeveloper(row)
}

// FindByEmail fetches a developer by email address, whatever its status.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.Developer, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+developerColumns+` FROM developers WHERE email = $1`, email)
	return scanDeveloper(row)
}

// FindAll returns every developer row.
func (s *Store) FindAll(ctx context.Context) ([]models.Developer, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+developerColumns+` FROM developers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectDevelopers(rows)
}

// FindActiveBySpecialty returns ACTIVE developers whose specialty matches exactly.
func (s *Store) FindActiveBySpecialty(ctx context.Context, specialty string) ([]models.Developer, error) {
	rows, err := s.pool.Query(ctx, `
	SELECT `+developerColumns+`
	FROM developers
	WHERE status = $1 AND specialty = $2
	ORDER BY id;
	`, string(models.StatusActive), specialty)
	if err != nil {
		return nil, err
	}
	return collectDevelopers(rows)
}

// Save inserts a new row or overwrites the row matching d.ID.
func (s *Store) Save(ctx context.Context, d models.Developer) (models.Developer, error) {
	if d.ID == 0 {
		const query = `
		INSERT INTO developers (first_name, last_name, email, specialty, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
		`
		err := s.pool.QueryRow(ctx, query, d.FirstName, d.LastName, d.Email, d.Specialty, string(d.Status)).Scan(&d.ID)
		if err != nil {
			return models.Developer{}, translate(err)
		}
		return d, nil
	}

	const query = `
	UPDATE developers
	SET first_name = $2, last_name = $3, email = $4, specialty = $5, status = $6
	WHERE id = $1;
	`
	tag, err := s.pool.Exec(ctx, query, d.ID, d.FirstName, d.LastName, d.Email, d.Specialty, string(d.Status))
	if err != nil {
		return models.Developer{}, translate(err)
	}
	if tag.RowsAffected() == 0 {
		return models.Developer{}, storage.ErrNotFound
	}
	return d, nil
}

// UpdateStatus changes only the status column.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status models.Status) error {
	tag, err := s.pool.Exec(ctx, `UPDATE developers SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteByID removes the row.
func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM developers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return storage.ErrAlreadyExists
	}
	return err
}

func scanDeveloper(row pgx.Row) (models.Developer, error) {
	var d models.Developer
	var status string
	if err := row.Scan(&d.ID, &d.FirstName, &d.LastName, &d.Email, &d.Specialty, &status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Developer{}, storage.ErrNotFound
		}
		return models.Developer{}, err
	}
	d.Status = models.Status(status)
	return d, nil
}

func collectDevelopers(rows pgx.Rows) ([]models.Developer, error) {
	defer rows.Close()
	var out []models.Developer
	for rows.Next() {
		d, err := scanDeveloper(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
