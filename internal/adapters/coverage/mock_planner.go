package coverage

import (
	"context"
	"fmt"

	"agro-mission-service/internal/ports"
)

// MockPlanner is a deterministic in-memory CoveragePlanner for tests and
// offline runs. It returns its canned result, after mimicking the real
// planner's basic feasibility checks.
type MockPlanner struct {
	Result ports.CoverageResult
	Err    error
	// Calls counts PlanCoverage invocations (cache-behavior assertions).
	Calls int
}

func (m *MockPlanner) PlanCoverage(ctx context.Context, req ports.CoverageRequest) (ports.CoverageResult, error) {
	m.Calls++

	if m.Err != nil {
		return ports.CoverageResult{}, m.Err
	}

	// A zone swallowing every field vertex leaves nothing to cover.
	for i, z := range req.NFZ {
		covered := true
		for _, v := range req.Field {
			if !z.Contains(v) {
				covered = false
				break
			}
		}
		if covered {
			return ports.CoverageResult{}, fmt.Errorf("%w: nfz %d covers the entire field", ports.ErrInfeasible, i)
		}
	}

	return m.Result, nil
}
