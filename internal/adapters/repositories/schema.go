package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Initialize the database schema for missions and the coverage cache.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createMissionsQuery := `
	CREATE TABLE IF NOT EXISTS missions (
		id BIGSERIAL PRIMARY KEY,
		status TEXT NOT NULL,
		input_json JSONB NOT NULL,
		result_json JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createCoverageCacheQuery := `
	CREATE TABLE IF NOT EXISTS coverage_cache (
		fingerprint TEXT PRIMARY KEY,
		result JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createStatusIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_missions_status_created
	ON missions(status, created_at DESC);
	`

	statements := []string{
		createMissionsQuery,
		createCoverageCacheQuery,
		createStatusIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit: %w", err)
	}
	return nil
}

// failureJSON encodes a failed build outcome for result_json.
func failureJSON(buildErr string, logs []string) ([]byte, error) {
	payload, err := json.Marshal(struct {
		Error string   `json:"error"`
		Logs  []string `json:"logs"`
	}{Error: buildErr, Logs: logs})
	if err != nil {
		return nil, fmt.Errorf("encode failure payload: %w", err)
	}
	return payload, nil
}
