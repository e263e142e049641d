package planner

import (
	"context"
	"errors"
	"math"
	"testing"

	"agro-mission-service/internal/adapters/coverage"
	"agro-mission-service/internal/domain"
	"agro-mission-service/internal/ports"
)

// tenSwathResult: 10 parallel 100 m swaths in the projected frame.
func tenSwathResult() ports.CoverageResult {
	swaths := make([]domain.LineString, 0, 10)
	for i := 0; i < 10; i++ {
		x := -90.0 + float64(i)*20
		swaths = append(swaths, domain.LineString{{X: x, Y: -50}, {X: x, Y: 50}})
	}
	return ports.CoverageResult{Swaths: swaths}
}

func buildRequestFixture(capacityL float64) BuildRequest {
	in := validInput()
	profile := testProfile(capacityL)
	return BuildRequest{
		Field:   in.Field,
		Runway:  in.Runway,
		Profile: profile,
	}
}

// Valid field and runway with no NFZ: planning succeeds and capacity 100
// yields a single trip over all swaths.
func TestBuildSingleTripMission(t *testing.T) {
	mock := &coverage.MockPlanner{Result: tenSwathResult()}

	mission, logs, err := Build(context.Background(), buildRequestFixture(100), mock, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mission.Trips) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(mission.Trips))
	}
	trip := mission.Trips[0]
	if trip.StartIdx != 0 || trip.EndIdx != 9 {
		t.Fatalf("trip spans [%d..%d], want [0..9]", trip.StartIdx, trip.EndIdx)
	}
	if math.Abs(trip.MixUsedL-20) > 1e-6 {
		t.Fatalf("mix = %v, want 20", trip.MixUsedL)
	}
	if len(trip.ToField) < 2 || len(trip.BackHome) < 2 {
		t.Fatal("trip transits missing")
	}

	if len(mission.Path.Swaths) != 10 {
		t.Fatalf("mission has %d swaths, want 10", len(mission.Path.Swaths))
	}
	if math.Abs(mission.Metrics.LengthSprayM-1000) > 1e-6 {
		t.Fatalf("spray length = %v, want 1000", mission.Metrics.LengthSprayM)
	}
	if mission.Metrics.TimeTotalMin <= 0 {
		t.Fatalf("time = %v, want > 0", mission.Metrics.TimeTotalMin)
	}

	// Mix mass balance within floating tolerance.
	want := mission.Metrics.SprayedAreaHa * mission.Profile.MixRateLPerHa
	if math.Abs(mission.Metrics.FertL-want)/want > 1e-6 {
		t.Fatalf("fert = %v, want %v", mission.Metrics.FertL, want)
	}

	if len(logs) == 0 || len(mission.Logs) == 0 {
		t.Fatal("expected diagnostic logs")
	}
}

func TestBuildMultiTripPartition(t *testing.T) {
	mock := &coverage.MockPlanner{Result: tenSwathResult()}

	mission, _, err := Build(context.Background(), buildRequestFixture(5), mock, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mission.Trips) != 5 {
		t.Fatalf("expected 5 trips, got %d", len(mission.Trips))
	}
	checkPartition(t, mission.Trips, 10)
	for i, tr := range mission.Trips {
		if tr.MixUsedL > 5+1e-9 {
			t.Errorf("trip %d mix %v exceeds capacity", i, tr.MixUsedL)
		}
		if len(tr.ToField) < 2 || len(tr.BackHome) < 2 {
			t.Errorf("trip %d transits missing", i)
		}
	}
}

// An NFZ swallowing the field makes the planner report infeasibility, which
// surfaces as a coverage-planning failure with no mission.
func TestBuildCoveragePlanningFailure(t *testing.T) {
	mock := &coverage.MockPlanner{Result: tenSwathResult()}

	req := buildRequestFixture(100)
	req.NFZ = []domain.Polygon{{
		{X: 29.990, Y: 49.990},
		{X: 30.010, Y: 49.990},
		{X: 30.010, Y: 50.010},
		{X: 29.990, Y: 50.010},
	}}

	mission, logs, err := Build(context.Background(), req, mock, DefaultOptions())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrCoveragePlanning) {
		t.Fatalf("error = %v, want ErrCoveragePlanning", err)
	}
	if mission != nil {
		t.Fatal("no partial mission should be returned on failure")
	}
	if len(logs) == 0 {
		t.Fatal("expected the log trail up to the failure")
	}
}

func TestBuildCapacityExceeded(t *testing.T) {
	mock := &coverage.MockPlanner{Result: tenSwathResult()}

	// Each swath demands 2 L; a 1 L tank cannot carry any of them.
	mission, _, err := Build(context.Background(), buildRequestFixture(1), mock, DefaultOptions())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("error = %v, want ErrCapacityExceeded", err)
	}
	if mission != nil {
		t.Fatal("no partial mission should be returned on failure")
	}
}

func TestBuildInvalidProfile(t *testing.T) {
	mock := &coverage.MockPlanner{Result: tenSwathResult()}

	req := buildRequestFixture(100)
	req.Profile.SprayWidthM = 0

	_, _, err := Build(context.Background(), req, mock, DefaultOptions())
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
	if mock.Calls != 0 {
		t.Fatal("planner must not be called for invalid input")
	}
}

// An empty coverage path is valid: zero trips, zero metrics.
func TestBuildEmptyCoverage(t *testing.T) {
	mock := &coverage.MockPlanner{}

	mission, _, err := Build(context.Background(), buildRequestFixture(100), mock, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mission.Trips) != 0 {
		t.Fatalf("expected 0 trips, got %d", len(mission.Trips))
	}
	if mission.Metrics.LengthTotalM != 0 || mission.Metrics.FertL != 0 {
		t.Fatalf("expected zero metrics, got %+v", mission.Metrics)
	}
	if mission.Metrics.FieldAreaHa <= 0 {
		t.Fatal("field area should still be reported")
	}
}

func TestFailureStatus(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{invalidf("x"), "invalid_input"},
		{planningf("x"), "coverage_planning_failure"},
		{capacityf("x"), "capacity_exceeded"},
		{unreachablef("x"), "transit_unreachable"},
		{errors.New("boom"), "internal_error"},
	}
	for _, tc := range cases {
		if got := FailureStatus(tc.err); got != tc.want {
			t.Errorf("FailureStatus(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
