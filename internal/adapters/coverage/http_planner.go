package coverage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"agro-mission-service/internal/domain"
	"agro-mission-service/internal/platform/obs"
	"agro-mission-service/internal/ports"
)

// Cache is the cache-aside contract used by the HTTP planner. A miss is
// (zero, false, nil); cache errors never fail the planning call.
type Cache interface {
	Get(ctx context.Context, key string) (ports.CoverageResult, bool, error)
	Put(ctx context.Context, key string, res ports.CoverageResult) error
}

// HTTPPlanner implements CoveragePlanner against an external
// coverage-planning service (a Fields2Cover-style engine behind HTTP).
//
// It coordinates request translation, persistent response caching, and
// external calls with retry/backoff. Safe for concurrent use.
type HTTPPlanner struct {
	session *http.Client
	baseURL string
	apiKey  string
	cache   Cache
}

func NewHTTPPlanner(baseURL, apiKey string, cache Cache) (*HTTPPlanner, error) {
	if baseURL == "" {
		return nil, errors.New("coverage planner base URL is empty")
	}
	return &HTTPPlanner{
		session: &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		cache:   cache,
	}, nil
}

type coverageRequestBody struct {
	Field                  [][]float64   `json:"field"`
	NFZ                    [][][]float64 `json:"nfz"`
	SprayWidthM            float64       `json:"spray_width_m"`
	TurnRadiusM            float64       `json:"turn_radius_m"`
	HeadlandFactor         float64       `json:"headland_factor"`
	RouteOrder             string        `json:"route_order"`
	Objective              string        `json:"objective"`
	UseContinuousCurvature bool          `json:"use_cc"`
}

type coverageResponseBody struct {
	Swaths    [][][]float64 `json:"swaths"`
	CoverPath [][]float64   `json:"cover_path"`
	Error     string        `json:"error"`
}

// PlanCoverage requests an ordered swath sequence for the field.
// Infeasible inputs surface as ports.ErrInfeasible.
func (p *HTTPPlanner) PlanCoverage(ctx context.Context, req ports.CoverageRequest) (_ ports.CoverageResult, err error) {
	defer obs.Time(ctx, "coverage.PlanCoverage")(&err)

	body := encodeRequest(req)
	key := fingerprint(body)

	if p.cache != nil {
		cached, ok, cerr := p.cache.Get(ctx, key)
		if cerr != nil {
			log.Printf("coverage cache read failed: %v", cerr)
		} else if ok {
			return cached, nil
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return ports.CoverageResult{}, fmt.Errorf("plan coverage: encode request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, http.MethodPost, p.baseURL+"/coverage", bytes.NewReader(payload))
	})
	if err != nil {
		var he *httpStatusError
		if errors.As(err, &he) && (he.Code == http.StatusUnprocessableEntity || he.Code == http.StatusBadRequest) {
			return ports.CoverageResult{}, fmt.Errorf("%w: %s", ports.ErrInfeasible, he.Body)
		}
		return ports.CoverageResult{}, fmt.Errorf("plan coverage: execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded coverageResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.CoverageResult{}, fmt.Errorf("plan coverage: decode response: %w", err)
	}
	if decoded.Error != "" {
		return ports.CoverageResult{}, fmt.Errorf("%w: %s", ports.ErrInfeasible, decoded.Error)
	}

	result, err := decodeResult(decoded)
	if err != nil {
		return ports.CoverageResult{}, fmt.Errorf("plan coverage: %w", err)
	}

	if p.cache != nil {
		if cerr := p.cache.Put(ctx, key, result); cerr != nil {
			log.Printf("coverage cache write failed: %v", cerr)
		}
	}

	return result, nil
}

func encodeRequest(req ports.CoverageRequest) coverageRequestBody {
	nfz := make([][][]float64, 0, len(req.NFZ))
	for _, z := range req.NFZ {
		nfz = append(nfz, encodeRing(z))
	}
	return coverageRequestBody{
		Field:                  encodeRing(req.Field),
		NFZ:                    nfz,
		SprayWidthM:            req.SprayWidthM,
		TurnRadiusM:            req.TurnRadiusM,
		HeadlandFactor:         req.HeadlandFactor,
		RouteOrder:             req.RouteOrder.String(),
		Objective:              req.Objective.String(),
		UseContinuousCurvature: req.UseContinuousCurvature,
	}
}

func encodeRing(pts []domain.Point) [][]float64 {
	out := make([][]float64, 0, len(pts))
	for _, p := range pts {
		out = append(out, p.CoordsToList())
	}
	return out
}

func decodeResult(body coverageResponseBody) (ports.CoverageResult, error) {
	swaths := make([]domain.LineString, 0, len(body.Swaths))
	for i, raw := range body.Swaths {
		line, err := decodeLine(raw)
		if err != nil {
			return ports.CoverageResult{}, fmt.Errorf("swath %d: %w", i, err)
		}
		swaths = append(swaths, line)
	}

	var cover domain.LineString
	if len(body.CoverPath) > 0 {
		var err error
		cover, err = decodeLine(body.CoverPath)
		if err != nil {
			return ports.CoverageResult{}, fmt.Errorf("cover_path: %w", err)
		}
	}
	return ports.CoverageResult{Swaths: swaths, CoverPath: cover}, nil
}

func decodeLine(raw [][]float64) (domain.LineString, error) {
	line := make(domain.LineString, 0, len(raw))
	for _, pair := range raw {
		if len(pair) < 2 {
			return nil, fmt.Errorf("coordinate pair has %d values", len(pair))
		}
		line = append(line, domain.Point{X: pair[0], Y: pair[1]})
	}
	return line, nil
}

// fingerprint keys cache entries on the exact planner input.
func fingerprint(body coverageRequestBody) string {
	raw, _ := json.Marshal(body)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
