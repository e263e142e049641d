package planner

import (
	"context"
	"errors"

	"agro-mission-service/internal/domain"
	"agro-mission-service/internal/ports"
)

// One mission-build request: raw WGS84 geometry plus the aircraft profile.
type BuildRequest struct {
	Field   domain.Polygon
	Runway  domain.LineString
	NFZ     []domain.Polygon
	Profile domain.AircraftProfile
}

// Build assembles a complete mission in one pass:
// validate/project geometry, request coverage from the external planner,
// segment swaths into capacity-bounded trips, route runway transits, and
// aggregate metrics.
//
// The build is atomic: on any failure no partial Mission is returned, only
// the taxonomy error and the diagnostic log accumulated up to that point.
// Build is deterministic given its inputs and shares no state across calls;
// the only blocking point is the planner call, bounded by ctx.
func Build(ctx context.Context, req BuildRequest, coverage ports.CoveragePlanner, opts Options) (*domain.Mission, []string, error) {
	log := &BuildLog{}

	if err := req.Profile.Validate(); err != nil {
		return nil, log.Lines(), invalidf("%v", err)
	}

	ws, err := Preprocess(FieldInput{Field: req.Field, Runway: req.Runway, NFZ: req.NFZ}, log)
	if err != nil {
		return nil, log.Lines(), err
	}

	path, err := requestCoverage(ctx, ws, req.Profile, coverage, log)
	if err != nil {
		return nil, log.Lines(), err
	}

	trips, err := SegmentTrips(path, req.Profile, log)
	if err != nil {
		return nil, log.Lines(), err
	}

	if err := RouteTransits(ws, path, trips, opts.NFZSafetyBufferM, log); err != nil {
		return nil, log.Lines(), err
	}

	metrics := Aggregate(ws, path, trips, req.Profile, opts, log)

	mission := assemble(ws, req, path, trips, metrics, log)
	return mission, mission.Logs, nil
}

// requestCoverage translates the aircraft parameters into the external
// planner's contract and surfaces planner failures verbatim as a
// coverage-planning failure. No geometric computation happens here.
func requestCoverage(ctx context.Context, ws *Workspace, profile domain.AircraftProfile, coverage ports.CoveragePlanner, log *BuildLog) (domain.CoveragePath, error) {
	log.Appendf("coverage request: width=%.1fm rmin=%.1fm headland=%.1fw order=%s objective=%s cc=%t",
		profile.SprayWidthM, profile.TurnRadiusM, profile.HeadlandFactor,
		profile.RouteOrder, profile.Objective, profile.UseContinuousCurvature)

	result, err := coverage.PlanCoverage(ctx, ports.CoverageRequest{
		Field:                  ws.Field,
		NFZ:                    ws.NFZ,
		SprayWidthM:            profile.SprayWidthM,
		TurnRadiusM:            profile.TurnRadiusM,
		HeadlandFactor:         profile.HeadlandFactor,
		RouteOrder:             profile.RouteOrder,
		Objective:              profile.Objective,
		UseContinuousCurvature: profile.UseContinuousCurvature,
	})
	if err != nil {
		log.Appendf("coverage planner failed: %v", err)
		return domain.CoveragePath{}, planningf("%v", err)
	}

	swaths := make([]domain.Swath, 0, len(result.Swaths))
	for i, line := range result.Swaths {
		if len(line) < 2 {
			return domain.CoveragePath{}, planningf("planner returned degenerate swath %d", i)
		}
		swaths = append(swaths, domain.Swath{Index: i, Line: line, LengthM: line.Length()})
	}
	log.Appendf("coverage received: %d swaths", len(swaths))

	return domain.CoveragePath{Swaths: swaths, CoverPath: result.CoverPath}, nil
}

// assemble converts everything back to WGS84 and produces the final record.
func assemble(ws *Workspace, req BuildRequest, path domain.CoveragePath, trips []domain.Trip, metrics domain.Metrics, log *BuildLog) *domain.Mission {
	proj := ws.Projection

	outSwaths := make([]domain.Swath, len(path.Swaths))
	for i, s := range path.Swaths {
		outSwaths[i] = domain.Swath{Index: s.Index, Line: proj.LineToWGS(s.Line), LengthM: s.LengthM}
	}
	outTrips := make([]domain.Trip, len(trips))
	for i, t := range trips {
		outTrips[i] = t
		outTrips[i].ToField = proj.LineToWGS(t.ToField)
		outTrips[i].BackHome = proj.LineToWGS(t.BackHome)
	}
	var coverPath domain.LineString
	if len(path.CoverPath) > 0 {
		coverPath = proj.LineToWGS(path.CoverPath)
	}

	log.Appendf("mission assembled: %d trips", len(outTrips))

	return &domain.Mission{
		Field:   req.Field,
		Runway:  req.Runway,
		NFZ:     req.NFZ,
		Profile: req.Profile,
		Path:    domain.CoveragePath{Swaths: outSwaths, CoverPath: coverPath},
		Trips:   outTrips,
		Metrics: metrics,
		Logs:    log.Lines(),
	}
}

// FailureStatus maps a build error to an HTTP-ish classification string for
// persistence and reporting.
func FailureStatus(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrCoveragePlanning):
		return "coverage_planning_failure"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrTransitUnreachable):
		return "transit_unreachable"
	default:
		return "internal_error"
	}
}
