package coverage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"agro-mission-service/internal/domain"
	"agro-mission-service/internal/ports"
)

func testCoverageRequest() ports.CoverageRequest {
	return ports.CoverageRequest{
		Field: domain.Polygon{
			{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 200, Y: 100}, {X: 0, Y: 100},
		},
		SprayWidthM:    20,
		TurnRadiusM:    40,
		HeadlandFactor: 3,
		RouteOrder:     domain.RouteOrderSnake,
		Objective:      domain.ObjectiveNSwath,
	}
}

// memCache is a map-backed Cache for exercising the cache-aside path.
type memCache struct {
	entries map[string]ports.CoverageResult
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]ports.CoverageResult)}
}

func (m *memCache) Get(ctx context.Context, key string) (ports.CoverageResult, bool, error) {
	res, ok := m.entries[key]
	return res, ok, nil
}

func (m *memCache) Put(ctx context.Context, key string, res ports.CoverageResult) error {
	m.entries[key] = res
	return nil
}

func TestHTTPPlannerDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/coverage" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body coverageRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.SprayWidthM != 20 || body.RouteOrder != "snake" {
			t.Errorf("request body mistranslated: %+v", body)
		}
		json.NewEncoder(w).Encode(coverageResponseBody{
			Swaths: [][][]float64{
				{{10, 0}, {10, 100}},
				{{30, 100}, {30, 0}},
			},
			CoverPath: [][]float64{{10, 0}, {10, 100}, {30, 100}, {30, 0}},
		})
	}))
	defer srv.Close()

	p, err := NewHTTPPlanner(srv.URL, "", nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}

	res, err := p.PlanCoverage(context.Background(), testCoverageRequest())
	if err != nil {
		t.Fatalf("plan coverage: %v", err)
	}
	if len(res.Swaths) != 2 {
		t.Fatalf("got %d swaths, want 2", len(res.Swaths))
	}
	if res.Swaths[0][0] != (domain.Point{X: 10, Y: 0}) {
		t.Fatalf("swath start = %v", res.Swaths[0][0])
	}
	if len(res.CoverPath) != 4 {
		t.Fatalf("cover path has %d points, want 4", len(res.CoverPath))
	}
}

func TestHTTPPlannerInfeasibleStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"field narrower than spray width"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	p, err := NewHTTPPlanner(srv.URL, "", nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}

	_, err = p.PlanCoverage(context.Background(), testCoverageRequest())
	if !errors.Is(err, ports.ErrInfeasible) {
		t.Fatalf("error = %v, want ErrInfeasible", err)
	}
}

func TestHTTPPlannerInfeasibleBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(coverageResponseBody{Error: "no room for headland"})
	}))
	defer srv.Close()

	p, err := NewHTTPPlanner(srv.URL, "", nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}

	_, err = p.PlanCoverage(context.Background(), testCoverageRequest())
	if !errors.Is(err, ports.ErrInfeasible) {
		t.Fatalf("error = %v, want ErrInfeasible", err)
	}
}

func TestHTTPPlannerCacheHitSkipsServer(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		json.NewEncoder(w).Encode(coverageResponseBody{
			Swaths: [][][]float64{{{10, 0}, {10, 100}}},
		})
	}))
	defer srv.Close()

	p, err := NewHTTPPlanner(srv.URL, "", newMemCache())
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}

	req := testCoverageRequest()
	if _, err := p.PlanCoverage(context.Background(), req); err != nil {
		t.Fatalf("first call: %v", err)
	}
	res, err := p.PlanCoverage(context.Background(), req)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if hits != 1 {
		t.Fatalf("server hit %d times, want 1", hits)
	}
	if len(res.Swaths) != 1 {
		t.Fatalf("cached result mangled: %+v", res)
	}
}

func TestHTTPPlannerRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(coverageResponseBody{
			Swaths: [][][]float64{{{10, 0}, {10, 100}}},
		})
	}))
	defer srv.Close()

	p, err := NewHTTPPlanner(srv.URL, "", nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}

	res, err := p.PlanCoverage(context.Background(), testCoverageRequest())
	if err != nil {
		t.Fatalf("plan coverage: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("server saw %d attempts, want 3", attempts)
	}
	if len(res.Swaths) != 1 {
		t.Fatalf("got %d swaths, want 1", len(res.Swaths))
	}
}
