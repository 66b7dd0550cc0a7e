// Package storage provides SQLite-based persistence for saved viewer poses.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only caster poses are stored; level grids always come from level files.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-raycast/internal/config"
)

// ErrPoseNotFound is returned when a named pose does not exist.
var ErrPoseNotFound = errors.New("storage: pose not found")

// Store manages the SQLite database connection for pose persistence.
type Store struct {
	db *sql.DB
}

// Pose is a named caster position and facing angle for a level.
type Pose struct {
	ID        int64
	LevelID   string
	Name      string
	X         float64
	Y         float64
	Angle     float64 // Radians
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS poses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			name TEXT NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			angle REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (level_id, name)
		);
		CREATE INDEX IF NOT EXISTS idx_poses_level_id ON poses(level_id);
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

// SavePose records a pose, replacing any existing pose with the same level
// and name. Returns the ID of the stored record.
func (s *Store) SavePose(p Pose) (int64, error) {
	_, err := s.db.Exec(
		`INSERT INTO poses (level_id, name, x, y, angle)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (level_id, name) DO UPDATE SET
		   x = excluded.x,
		   y = excluded.y,
		   angle = excluded.angle,
		   created_at = CURRENT_TIMESTAMP`,
		p.LevelID, p.Name, p.X, p.Y, p.Angle,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save pose: %w", err)
	}

	// LastInsertId is not reliable for the update branch of an upsert.
	var id int64
	err = s.db.QueryRow(
		"SELECT id FROM poses WHERE level_id = ? AND name = ?",
		p.LevelID, p.Name,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get saved pose ID: %w", err)
	}

	return id, nil
}

// Pose retrieves a named pose for a level.
// Returns ErrPoseNotFound if it does not exist.
func (s *Store) Pose(levelID, name string) (Pose, error) {
	var p Pose
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, level_id, name, x, y, angle, created_at
		 FROM poses
		 WHERE level_id = ? AND name = ?`,
		levelID, name,
	).Scan(&p.ID, &p.LevelID, &p.Name, &p.X, &p.Y, &p.Angle, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return Pose{}, fmt.Errorf("%w: %s/%s", ErrPoseNotFound, levelID, name)
	}
	if err != nil {
		return Pose{}, fmt.Errorf("storage: cannot query pose: %w", err)
	}

	p.CreatedAt = parseTime(createdAt)
	return p, nil
}

// Poses retrieves all poses for a level ordered by name.
// An empty levelID returns the poses of every level.
func (s *Store) Poses(levelID string) ([]Pose, error) {
	query := `SELECT id, level_id, name, x, y, angle, created_at
		 FROM poses`
	var args []any
	if levelID != "" {
		query += " WHERE level_id = ?"
		args = append(args, levelID)
	}
	query += " ORDER BY level_id, name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query poses: %w", err)
	}
	defer rows.Close()

	var poses []Pose
	for rows.Next() {
		var p Pose
		var createdAt any
		if err := rows.Scan(&p.ID, &p.LevelID, &p.Name, &p.X, &p.Y, &p.Angle, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.CreatedAt = parseTime(createdAt)
		poses = append(poses, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return poses, nil
}

// DeletePose removes a named pose.
// Returns ErrPoseNotFound if nothing was deleted.
func (s *Store) DeletePose(levelID, name string) error {
	res, err := s.db.Exec("DELETE FROM poses WHERE level_id = ? AND name = ?", levelID, name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete pose: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s/%s", ErrPoseNotFound, levelID, name)
	}
	return nil
}

// parseTime handles the driver returning either time.Time or a string.
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
