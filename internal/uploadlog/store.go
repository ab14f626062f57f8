package uploadlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"tcloud/internal/services"
)

// ErrNotFound is returned when an upload ID has no record.
var ErrNotFound = errors.New("uploadlog: upload not found")

const defaultListLimit = 20

// Store persists upload records in SQLite.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open creates or opens the history database at path and applies migrations.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("uploadlog: database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("uploadlog: create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("uploadlog: open sqlite db: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("uploadlog: apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, now: time.Now}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("uploadlog: %w", err)
	}
	return store, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Begin records a new upload in the uploading state and returns it with its
// ID and start time assigned.
func (s *Store) Begin(ctx context.Context, rec Record) (Record, error) {
	if strings.TrimSpace(rec.SourcePath) == "" {
		return Record{}, errors.New("uploadlog: source path is required")
	}
	rec.ID = uuid.NewString()
	rec.Status = StatusUploading
	rec.StartedAt = s.now().UTC()
	rec.FinishedAt = time.Time{}
	rec.BytesSent = 0
	rec.Error = ""

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO uploads (
            id, source_path, file_name, file_size, factory_id, profiles,
            location, status, started_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.SourcePath,
		rec.FileName,
		rec.FileSize,
		rec.FactoryID,
		strings.Join(rec.Profiles, ","),
		rec.Location,
		string(rec.Status),
		formatTime(rec.StartedAt),
	)
	if err != nil {
		return Record{}, fmt.Errorf("uploadlog: insert upload: %w", err)
	}
	return rec, nil
}

// SetLocation stores the upload session location once it is known.
func (s *Store) SetLocation(ctx context.Context, id, location string) error {
	return s.update(ctx, id, "UPDATE uploads SET location = ? WHERE id = ?", location, id)
}

// Complete marks an upload finished with all bytes sent.
func (s *Store) Complete(ctx context.Context, id string, bytesSent int64) error {
	return s.update(ctx, id,
		"UPDATE uploads SET status = ?, bytes_sent = ?, finished_at = ? WHERE id = ?",
		string(StatusCompleted), bytesSent, formatTime(s.now().UTC()), id,
	)
}

// Fail marks an upload failed with the given cause, classified with
// services.Kind.
func (s *Store) Fail(ctx context.Context, id string, bytesSent int64, cause error) error {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	return s.update(ctx, id,
		"UPDATE uploads SET status = ?, bytes_sent = ?, error_message = ?, error_kind = ?, finished_at = ? WHERE id = ?",
		string(StatusFailed), bytesSent, message, services.Kind(cause), formatTime(s.now().UTC()), id,
	)
}

func (s *Store) update(ctx context.Context, id, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("uploadlog: update upload %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("uploadlog: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Get returns the record with the given ID.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, err
}

// List returns up to limit records, newest first. A limit <= 0 uses a
// default of 20.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY started_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("uploadlog: list uploads: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("uploadlog: iterate uploads: %w", err)
	}
	return out, nil
}

const selectColumns = `SELECT id, source_path, file_name, file_size, factory_id, profiles,
    location, status, bytes_sent, error_message, error_kind, started_at, finished_at FROM uploads`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec      Record
		profiles string
		status   string
		started  string
		finished string
	)
	err := row.Scan(
		&rec.ID,
		&rec.SourcePath,
		&rec.FileName,
		&rec.FileSize,
		&rec.FactoryID,
		&profiles,
		&rec.Location,
		&status,
		&rec.BytesSent,
		&rec.Error,
		&rec.ErrorKind,
		&started,
		&finished,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("uploadlog: scan upload: %w", err)
	}
	rec.Status = Status(status)
	if profiles != "" {
		rec.Profiles = strings.Split(profiles, ",")
	}
	rec.StartedAt = parseTime(started)
	rec.FinishedAt = parseTime(finished)
	return rec, nil
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
