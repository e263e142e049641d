package ports

import (
	"context"
	"time"
)

// Stored mission build. Input and result are opaque JSON documents; the
// repository does not interpret them.
type MissionRecord struct {
	ID         int64
	Status     string
	InputJSON  []byte
	ResultJSON []byte
	CreatedAt  time.Time
}

// Mission build lifecycle states as persisted.
const (
	MissionStatusRunning = "running"
	MissionStatusSuccess = "success"
	MissionStatusFailed  = "failed"
)

// Port: a boundary for persisting mission builds. Persistence is glue around
// the planning core; the core itself never touches it.
type MissionRepository interface {
	// Create a mission in running state and return its id.
	CreateMission(ctx context.Context, input []byte) (int64, error)
	// Store a successful build result.
	MarkMissionSuccess(ctx context.Context, id int64, result []byte) error
	// Store a failed build outcome.
	MarkMissionFailed(ctx context.Context, id int64, buildErr string, logs []string) error
	// List latest missions, newest first.
	ListMissions(ctx context.Context, limit int) ([]MissionRecord, error)
	// Get a mission by id; returns nil when not found.
	GetMission(ctx context.Context, id int64) (*MissionRecord, error)
}
