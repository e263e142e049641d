package domain

import (
	"errors"
	"fmt"
)

// RouteOrder selects the swath ordering strategy requested from the external
// coverage planner.
type RouteOrder int

const (
	RouteOrderSnake RouteOrder = iota
	RouteOrderBoustro
	RouteOrderSpiral
	RouteOrderStraightLoops
)

var routeOrderNames = map[RouteOrder]string{
	RouteOrderSnake:         "snake",
	RouteOrderBoustro:       "boustro",
	RouteOrderSpiral:        "spiral",
	RouteOrderStraightLoops: "straight_loops",
}

func (r RouteOrder) String() string {
	if s, ok := routeOrderNames[r]; ok {
		return s
	}
	return fmt.Sprintf("route_order(%d)", int(r))
}

func ParseRouteOrder(s string) (RouteOrder, error) {
	for r, name := range routeOrderNames {
		if s == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown route_order %q", s)
}

// Objective selects the optimization target requested from the external
// coverage planner.
type Objective int

const (
	ObjectiveNSwath Objective = iota
	ObjectiveSwathLength
	ObjectiveFieldCoverage
	ObjectiveOverlap
)

var objectiveNames = map[Objective]string{
	ObjectiveNSwath:        "n_swath",
	ObjectiveSwathLength:   "swath_length",
	ObjectiveFieldCoverage: "field_coverage",
	ObjectiveOverlap:       "overlap",
}

func (o Objective) String() string {
	if s, ok := objectiveNames[o]; ok {
		return s
	}
	return fmt.Sprintf("objective(%d)", int(o))
}

func ParseObjective(s string) (Objective, error) {
	for o, name := range objectiveNames {
		if s == name {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown objective %q", s)
}

// Aircraft operating parameters for one mission build. Immutable once a
// build starts; TotalCapacityL bounds the spray-mix tank only, fuel is
// tracked as a reported metric.
type AircraftProfile struct {
	SprayWidthM    float64
	TurnRadiusM    float64
	TotalCapacityL float64
	FuelReserveL   float64
	MixRateLPerHa  float64
	FuelBurnLPerKm float64
	// Multiplier of SprayWidthM reserved at field edges for turning.
	HeadlandFactor float64

	RouteOrder             RouteOrder
	Objective              Objective
	UseContinuousCurvature bool
}

func (p AircraftProfile) Validate() error {
	if p.SprayWidthM <= 0 {
		return errors.New("aircraft profile: spray_width_m must be > 0")
	}
	if p.TurnRadiusM <= 0 {
		return errors.New("aircraft profile: turn_radius_m must be > 0")
	}
	if p.TotalCapacityL <= 0 {
		return errors.New("aircraft profile: total_capacity_l must be > 0")
	}
	if p.FuelReserveL < 0 {
		return errors.New("aircraft profile: fuel_reserve_l must be >= 0")
	}
	if p.MixRateLPerHa < 0 {
		return errors.New("aircraft profile: mix_rate_l_per_ha must be >= 0")
	}
	if p.FuelBurnLPerKm < 0 {
		return errors.New("aircraft profile: fuel_burn_l_per_km must be >= 0")
	}
	if p.HeadlandFactor < 0 {
		return errors.New("aircraft profile: headland_factor must be >= 0")
	}
	if _, ok := routeOrderNames[p.RouteOrder]; !ok {
		return fmt.Errorf("aircraft profile: invalid route_order %d", int(p.RouteOrder))
	}
	if _, ok := objectiveNames[p.Objective]; !ok {
		return fmt.Errorf("aircraft profile: invalid objective %d", int(p.Objective))
	}
	return nil
}

// MixPerSwathL returns the spray-mix demand in liters for a swath of the
// given length: covered hectares times the application rate.
func (p AircraftProfile) MixPerSwathL(swathLengthM float64) float64 {
	return swathLengthM * p.SprayWidthM / 10_000 * p.MixRateLPerHa
}
