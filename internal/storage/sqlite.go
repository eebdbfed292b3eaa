// Package storage provides SQLite-based persistence for the world index and
// for cloud-stored world files.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/worldforge/internal/worldfile"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// WorldRecord is one indexed world.
type WorldRecord struct {
	ID               int64
	Name             string
	Path             string
	Cloud            bool
	GameMode         int
	DifficultyOrigin string
	DifficultyName   string
	Width            int
	Height           int
	Seed             string
	Evil             int
	CreatedAt        time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS worlds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			cloud INTEGER NOT NULL DEFAULT 0,
			game_mode INTEGER NOT NULL,
			difficulty_origin TEXT NOT NULL DEFAULT '',
			difficulty_name TEXT NOT NULL DEFAULT '',
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			seed TEXT NOT NULL DEFAULT '',
			evil INTEGER NOT NULL DEFAULT -1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (path, cloud)
		);
		CREATE INDEX IF NOT EXISTS idx_worlds_created ON worlds(created_at DESC);

		CREATE TABLE IF NOT EXISTS cloud_files (
			path TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveWorld inserts or replaces the record of the world at (Path, Cloud).
// Returns the ID of the record.
func (s *Store) SaveWorld(w WorldRecord) (int64, error) {
	_, err := s.db.Exec(
		`INSERT INTO worlds
		 (name, path, cloud, game_mode, difficulty_origin, difficulty_name, width, height, seed, evil)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (path, cloud) DO UPDATE SET
		   name = excluded.name,
		   game_mode = excluded.game_mode,
		   difficulty_origin = excluded.difficulty_origin,
		   difficulty_name = excluded.difficulty_name,
		   width = excluded.width,
		   height = excluded.height,
		   seed = excluded.seed,
		   evil = excluded.evil`,
		w.Name, w.Path, w.Cloud, w.GameMode, w.DifficultyOrigin, w.DifficultyName,
		w.Width, w.Height, w.Seed, w.Evil,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save world: %w", err)
	}

	var id int64
	if err := s.db.QueryRow(
		"SELECT id FROM worlds WHERE path = ? AND cloud = ?",
		w.Path, w.Cloud,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("storage: cannot get world ID: %w", err)
	}
	return id, nil
}

const worldColumns = `id, name, path, cloud, game_mode, difficulty_origin, difficulty_name,
		        width, height, seed, evil, created_at`

// Worlds retrieves every indexed world, newest first.
func (s *Store) Worlds() ([]WorldRecord, error) {
	rows, err := s.db.Query(
		`SELECT ` + worldColumns + `
		 FROM worlds
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query worlds: %w", err)
	}
	defer rows.Close()

	var worlds []WorldRecord
	for rows.Next() {
		w, err := scanWorld(rows)
		if err != nil {
			return nil, err
		}
		worlds = append(worlds, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return worlds, nil
}

// WorldByPath retrieves the world at path. Returns nil if it is not indexed.
func (s *Store) WorldByPath(path string, cloud bool) (*WorldRecord, error) {
	row := s.db.QueryRow(
		`SELECT `+worldColumns+`
		 FROM worlds
		 WHERE path = ? AND cloud = ?`,
		path, cloud,
	)
	w, err := scanWorld(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// DeleteWorld removes the world at path from the index.
func (s *Store) DeleteWorld(path string, cloud bool) error {
	_, err := s.db.Exec("DELETE FROM worlds WHERE path = ? AND cloud = ?", path, cloud)
	if err != nil {
		return fmt.Errorf("storage: cannot delete world: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorld(row scanner) (WorldRecord, error) {
	var w WorldRecord
	var createdAt any
	err := row.Scan(
		&w.ID,
		&w.Name,
		&w.Path,
		&w.Cloud,
		&w.GameMode,
		&w.DifficultyOrigin,
		&w.DifficultyName,
		&w.Width,
		&w.Height,
		&w.Seed,
		&w.Evil,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return w, err
	}
	if err != nil {
		return w, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	w.CreatedAt = parseTime(createdAt)
	return w, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// PutCloudFile stores data as the cloud file at path.
func (s *Store) PutCloudFile(path string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO cloud_files (path, data) VALUES (?, ?)
		 ON CONFLICT (path) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		path, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot store cloud file: %w", err)
	}
	return nil
}

// CloudFile returns the cloud file at path. Missing files wrap
// worldfile.ErrNotFound.
func (s *Store) CloudFile(path string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM cloud_files WHERE path = ?", path).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s (cloud)", worldfile.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read cloud file: %w", err)
	}
	return data, nil
}

// CloudFileExists reports whether a cloud file exists at path.
func (s *Store) CloudFileExists(path string) (bool, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM cloud_files WHERE path = ?", path).Scan(&n); err != nil {
		return false, fmt.Errorf("storage: cannot query cloud file: %w", err)
	}
	return n > 0, nil
}

// DeleteCloudFile removes the cloud file at path.
func (s *Store) DeleteCloudFile(path string) error {
	if _, err := s.db.Exec("DELETE FROM cloud_files WHERE path = ?", path); err != nil {
		return fmt.Errorf("storage: cannot delete cloud file: %w", err)
	}
	return nil
}

// CloudFiles adapts the cloud_files table to worldfile.FileStore.
type CloudFiles struct {
	Store *Store
}

func (c CloudFiles) Exists(path string) bool {
	ok, err := c.Store.CloudFileExists(path)
	return err == nil && ok
}

func (c CloudFiles) ReadAll(path string) ([]byte, error) {
	return c.Store.CloudFile(path)
}
