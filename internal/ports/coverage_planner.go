package ports

import (
	"context"
	"errors"

	"agro-mission-service/internal/domain"
)

// Returned by a CoveragePlanner when the inputs admit no coverage path
// (e.g. NFZ consumes the entire field, or spray width exceeds field extent).
var ErrInfeasible = errors.New("coverage planner: infeasible input")

// Parameters for one coverage-planning call. All geometry is in the
// projected meter frame.
type CoverageRequest struct {
	Field domain.Polygon
	NFZ   []domain.Polygon

	SprayWidthM    float64
	TurnRadiusM    float64
	HeadlandFactor float64

	RouteOrder             domain.RouteOrder
	Objective              domain.Objective
	UseContinuousCurvature bool
}

// Ordered swath line geometries returned by the planner, in meters.
// CoverPath is optional: planners that emit a joined working path include it,
// others leave it empty.
type CoverageResult struct {
	Swaths    []domain.LineString
	CoverPath domain.LineString
}

// Port: boundary to the external coverage-path planner. The core assumes
// nothing about the planner's internal algorithm beyond this contract.
type CoveragePlanner interface {
	// Compute an ordered swath sequence for the field, or fail with
	// ErrInfeasible when no coverage exists.
	PlanCoverage(ctx context.Context, req CoverageRequest) (CoverageResult, error)
}
