// Package sqlite implements the developer store on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/hongminglow/developers-api/internal/models"
	"github.com/hongminglow/developers-api/internal/storage"
)

// Ensure Store implements the public interface.
var _ storage.DeveloperStore = (*Store)(nil)

const developerColumns = `id, first_name, last_name, email, specialty, status`

// Store implements storage.DeveloperStore on top of database/sql.
type Store struct {
	conn *sql.DB
}

// Open connects to the database at dsn and applies the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and avoids SQLITE_BUSY
	conn.SetMaxOpenConns(1)
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	s := New(conn)
	if err := s.Migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing connection. The schema is not touched.
func New(conn *sql.DB) *Store {
	return &Store{conn: conn}
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Migrate creates the developers table and its indexes if they are missing.
func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS developers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
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
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// FindByID fetches a developer by primary key.
func (s *Store) FindByID(ctx context.Context, id int64) (models.Developer, error) {
	row := s.conn.QueryRowContext(ctx, `SELECT `+developerColumns+` FROM developers WHERE id = ?`, id)
	return scanDeveloper(row)
}

// FindByEmail fetches a developer by email address, whatever its status.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.Developer, error) {
	row := s.conn.QueryRowContext(ctx, `SELECT `+developerColumns+` FROM developers WHERE email = ?`, email)
	return scanDeveloper(row)
}

// FindAll returns every developer row.
func (s *Store) FindAll(ctx context.Context) ([]models.Developer, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT `+developerColumns+` FROM developers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectDevelopers(rows)
}

// FindActiveBySpecialty returns ACTIVE developers whose specialty matches exactly.
func (s *Store) FindActiveBySpecialty(ctx context.Context, specialty string) ([]models.Developer, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT `+developerColumns+` FROM developers WHERE status = ? AND specialty = ? ORDER BY id`, string(models.StatusActive), specialty)
	if err != nil {
		return nil, err
	}
	return collectDevelopers(rows)
}

// Save inserts a new row or overwrites the row matching d.ID.
func (s *Store) Save(ctx context.Context, d models.Developer) (models.Developer, error) {
	if d.ID == 0 {
		res, err := s.conn.ExecContext(ctx, `INSERT INTO developers (first_name, last_name, email, specialty, status) VALUES (?, ?, ?, ?, ?)`,
			d.FirstName, d.LastName, d.Email, d.Specialty, string(d.Status))
		if err != nil {
			return models.Developer{}, translate(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return models.Developer{}, err
		}
		d.ID = id
		return d, nil
	}

	res, err := s.conn.ExecContext(ctx, `UPDATE developers SET first_name = ?, last_name = ?, email = ?, specialty = ?, status = ? WHERE id = ?`,
		d.FirstName, d.LastName, d.Email, d.Specialty, string(d.Status), d.ID)
	if err != nil {
		return models.Developer{}, translate(err)
	}
	if err := expectRows(res); err != nil {
		return models.Developer{}, err
	}
	return d, nil
}

// UpdateStatus changes only the status column.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status models.Status) error {
	res, err := s.conn.ExecContext(ctx, `UPDATE developers SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	return expectRows(res)
}

// DeleteByID removes the row.
func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM developers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectRows(res)
}

func expectRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func translate(err error) error {
	var se *msqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE")) {
			return storage.ErrAlreadyExists
		}
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDeveloper(row scanner) (models.Developer, error) {
	var d models.Developer
	var status string
	if err := row.Scan(&d.ID, &d.FirstName, &d.LastName, &d.Email, &d.Specialty, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Developer{}, storage.ErrNotFound
		}
		return models.Developer{}, err
	}
	d.Status = models.Status(status)
	return d, nil
}

func collectDevelopers(rows *sql.Rows) ([]models.Developer, error) {
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
