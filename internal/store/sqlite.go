package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/amishk599/jobping/internal/model"
)

var _ model.SeenStore = (*SQLiteStore)(nil)

// SQLiteStore keeps seen posting IDs in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// seen_jobs table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS seen_jobs (
		job_id     TEXT PRIMARY KEY,
		first_seen DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating seen_jobs table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load returns every recorded posting ID.
func (s *SQLiteStore) Load() (model.SeenSet, error) {
	rows, err := s.db.Query("SELECT job_id FROM seen_jobs")
	if err != nil {
		return model.SeenSet{}, fmt.Errorf("loading seen jobs: %w", err)
	}
	defer rows.Close()

	set := model.NewSeenSet()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return model.SeenSet{}, fmt.Errorf("scanning seen job: %w", err)
		}
		set.Add(id)
	}
	if err := rows.Err(); err != nil {
		return model.SeenSet{}, fmt.Errorf("loading seen jobs: %w", err)
	}
	return set, nil
}

// Save records every ID in set. Rows are only ever inserted, never deleted, so
// IDs already stored keep their original first_seen.
func (s *SQLiteStore) Save(set model.SeenSet) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("saving seen jobs: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO seen_jobs (job_id) VALUES (?)")
	if err != nil {
		return fmt.Errorf("saving seen jobs: %w", err)
	}
	defer stmt.Close()

	for _, id := range set.Slice() {
		if _, err := stmt.Exec(id); err != nil {
			return fmt.Errorf("marking job %s as seen: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("saving seen jobs: %w", err)
	}
	return nil
}

// Count returns the number of recorded IDs.
func (s *SQLiteStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM seen_jobs").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting seen jobs: %w", err)
	}
	return count, nil
}

// Reset deletes every recorded ID.
func (s *SQLiteStore) Reset() error {
	if _, err := s.db.Exec("DELETE FROM seen_jobs"); err != nil {
		return fmt.Errorf("resetting seen jobs: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
