package dto

import "time"

// Coordinate pairs are [lon, lat] in WGS84, matching GeoJSON order.

type AircraftRequest struct {
	SprayWidthM            float64 `json:"spray_width_m"`
	TurnRadiusM            float64 `json:"turn_radius_m"`
	TotalCapacityL         float64 `json:"total_capacity_l"`
	FuelReserveL           float64 `json:"fuel_reserve_l"`
	MixRateLPerHa          float64 `json:"mix_rate_l_per_ha"`
	FuelBurnLPerKm         float64 `json:"fuel_burn_l_per_km"`
	HeadlandFactor         float64 `json:"headland_factor"`
	RouteOrder             string  `json:"route_order"`
	Objective              string  `json:"objective"`
	UseContinuousCurvature bool    `json:"use_cc"`
}

type BuildMissionRequest struct {
	Field            [][]float64     `json:"field"`
	RunwayCenterline [][]float64     `json:"runway_centerline"`
	NFZ              [][][]float64   `json:"nfz"`
	Aircraft         AircraftRequest `json:"aircraft"`
}

type TripResponse struct {
	StartIdx  int         `json:"start_idx"`
	EndIdx    int         `json:"end_idx"`
	ToField   [][]float64 `json:"to_field_geometry"`
	BackHome  [][]float64 `json:"back_home_geometry"`
	FuelUsedL float64     `json:"fuel_used_l"`
	MixUsedL  float64     `json:"mix_used_l"`
	LengthM   float64     `json:"length_m"`
}

type MetricsResponse struct {
	LengthTotalM   float64 `json:"length_total_m"`
	LengthTransitM float64 `json:"length_transit_m"`
	LengthSprayM   float64 `json:"length_spray_m"`
	TimeTotalMin   float64 `json:"time_total_min"`
	TimeTransitMin float64 `json:"time_transit_min"`
	TimeSprayMin   float64 `json:"time_spray_min"`
	FuelL          float64 `json:"fuel_l"`
	FertL          float64 `json:"fert_l"`
	FieldAreaHa    float64 `json:"field_area_ha"`
	SprayedAreaHa  float64 `json:"sprayed_area_ha"`
}

type TripGeoResponse struct {
	ToField  [][]float64 `json:"to_field"`
	BackHome [][]float64 `json:"back_home"`
}

type GeoResponse struct {
	Field            [][]float64       `json:"field"`
	NFZ              [][][]float64     `json:"nfz"`
	RunwayCenterline [][]float64       `json:"runway_centerline"`
	Swaths           [][][]float64     `json:"swaths"`
	Trips            []TripGeoResponse `json:"trips"`
	CoverPath        [][]float64       `json:"cover_path,omitempty"`
}

type MissionResponse struct {
	ID      int64           `json:"id"`
	Status  string          `json:"status"`
	Trips   []TripResponse  `json:"trips"`
	Metrics MetricsResponse `json:"metrics"`
	Geo     GeoResponse     `json:"geo"`
	Logs    []string        `json:"logs"`
}

type MissionSummaryResponse struct {
	ID        int64     `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ListMissionsResponse struct {
	Missions []MissionSummaryResponse `json:"missions"`
}
