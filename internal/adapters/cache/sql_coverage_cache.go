package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"agro-mission-service/internal/platform/obs"
	"agro-mission-service/internal/ports"
)

// SQLCoverageCache is a Postgres-backed cache of coverage-planner responses,
// keyed by the request fingerprint. Planner calls are expensive (external
// geometry engine), responses are deterministic for identical inputs.
type SQLCoverageCache struct {
	DB *sql.DB
}

func NewSQLCoverageCache(db *sql.DB) *SQLCoverageCache {
	return &SQLCoverageCache{DB: db}
}

// Fetch a cached planner response. A miss is (zero, false, nil).
func (s *SQLCoverageCache) Get(ctx context.Context, key string) (_ ports.CoverageResult, _ bool, err error) {
	defer obs.Time(ctx, "coverage.cache.Get")(&err)

	if s.DB == nil {
		return ports.CoverageResult{}, false, errors.New("coverage cache: db is nil")
	}
	if key == "" {
		return ports.CoverageResult{}, false, errors.New("get coverage cache: key must not be empty")
	}

	q := `
	SELECT result
	FROM coverage_cache
	WHERE fingerprint = $1;
	`

	var raw []byte
	if err := s.DB.QueryRowContext(ctx, q, key).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.CoverageResult{}, false, nil
		}
		return ports.CoverageResult{}, false, fmt.Errorf("get coverage cache: query coverage_cache table: %w", err)
	}

	var res ports.CoverageResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return ports.CoverageResult{}, false, fmt.Errorf("get coverage cache: decode cached result: %w", err)
	}

	return res, true, nil
}

// Store a planner response under the request fingerprint.
func (s *SQLCoverageCache) Put(ctx context.Context, key string, res ports.CoverageResult) error {
	if s.DB == nil {
		return errors.New("coverage cache: db is nil")
	}
	if key == "" {
		return errors.New("insert coverage cache: key must not be empty")
	}

	raw, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("insert coverage cache: encode result: %w", err)
	}

	q := `
	INSERT INTO coverage_cache (fingerprint, result)
	VALUES ($1, $2)
	ON CONFLICT (fingerprint) DO UPDATE
	SET result = EXCLUDED.result;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, raw); err != nil {
		return fmt.Errorf("insert coverage cache key=%q: %w", key, err)
	}

	return nil
}
