package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agro-mission-service/internal/ports"
)

// Postgres-backed implementation of the MissionRepository port.
type PostgresMissionRepository struct{ DB *sql.DB }

func NewPostgresMissionRepository(db *sql.DB) *PostgresMissionRepository {
	return &PostgresMissionRepository{DB: db}
}

// Create a mission row in running state and return its id.
func (r *PostgresMissionRepository) CreateMission(ctx context.Context, input []byte) (int64, error) {
	if r.DB == nil {
		return 0, errors.New("mission repository: DB is nil")
	}

	q := `
	INSERT INTO missions (status, input_json)
	VALUES ($1, $2)
	RETURNING id;
	`

	var id int64
	if err := r.DB.QueryRowContext(ctx, q, ports.MissionStatusRunning, input).Scan(&id); err != nil {
		return 0, fmt.Errorf("create mission: insert missions row: %w", err)
	}
	return id, nil
}

// Store a successful build result.
func (r *PostgresMissionRepository) MarkMissionSuccess(ctx context.Context, id int64, result []byte) error {
	if r.DB == nil {
		return errors.New("mission repository: DB is nil")
	}

	q := `
	UPDATE missions
	SET status = $1, result_json = $2
	WHERE id = $3;
	`

	if _, err := r.DB.ExecContext(ctx, q, ports.MissionStatusSuccess, result, id); err != nil {
		return fmt.Errorf("mark mission %d success: %w", id, err)
	}
	return nil
}

// Store a failed build outcome with its diagnostic trail.
func (r *PostgresMissionRepository) MarkMissionFailed(ctx context.Context, id int64, buildErr string, logs []string) error {
	if r.DB == nil {
		return errors.New("mission repository: DB is nil")
	}

	payload, err := failureJSON(buildErr, logs)
	if err != nil {
		return fmt.Errorf("mark mission %d failed: %w", id, err)
	}

	q := `
	UPDATE missions
	SET status = $1, result_json = $2
	WHERE id = $3;
	`

	if _, err := r.DB.ExecContext(ctx, q, ports.MissionStatusFailed, payload, id); err != nil {
		return fmt.Errorf("mark mission %d failed: %w", id, err)
	}
	return nil
}

// Return the latest missions, newest first.
func (r *PostgresMissionRepository) ListMissions(ctx context.Context, limit int) ([]ports.MissionRecord, error) {
	if r.DB == nil {
		return nil, errors.New("mission repository: DB is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	q := `
	SELECT id, status, input_json, result_json, created_at
	FROM missions
	ORDER BY created_at DESC, id DESC
	LIMIT $1;
	`

	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list missions: query missions table: %w", err)
	}
	defer rows.Close()

	missions := make([]ports.MissionRecord, 0, limit)
	for rows.Next() {
		var rec ports.MissionRecord
		var result sql.Null[[]byte]
		if err := rows.Scan(&rec.ID, &rec.Status, &rec.InputJSON, &result, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("list missions: scan row: %w", err)
		}
		if result.Valid {
			rec.ResultJSON = result.V
		}
		missions = append(missions, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list missions: row iteration: %w", err)
	}

	return missions, nil
}

// Get a mission by id; nil when not found.
func (r *PostgresMissionRepository) GetMission(ctx context.Context, id int64) (*ports.MissionRecord, error) {
	if r.DB == nil {
		return nil, errors.New("mission repository: DB is nil")
	}

	q := `
	SELECT id, status, input_json, result_json, created_at
	FROM missions
	WHERE id = $1;
	`

	var rec ports.MissionRecord
	var result sql.Null[[]byte]
	err := r.DB.QueryRowContext(ctx, q, id).Scan(&rec.ID, &rec.Status, &rec.InputJSON, &result, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get mission %d: %w", id, err)
	}
	if result.Valid {
		rec.ResultJSON = result.V
	}
	return &rec, nil
}
