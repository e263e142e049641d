package domain

// Represents one pass line of the spray pattern. Produced by the external
// coverage planner; immutable and owned by its CoveragePath. Index is the
// position in the planner's ordering and is never changed by the core.
type Swath struct {
	Index   int
	Line    LineString
	LengthM float64
}

// The full ordered swath sequence covering one field, plus the planner's
// combined cover path (swaths joined by turn geometry) when it supplies one.
type CoveragePath struct {
	Swaths    []Swath
	CoverPath LineString
}

// TotalSwathLengthM sums the working length of all swaths.
func (c CoveragePath) TotalSwathLengthM() float64 {
	total := 0.0
	for _, s := range c.Swaths {
		total += s.LengthM
	}
	return total
}

// A maximal capacity-respecting contiguous run of swaths flown without
// returning to refill. StartIdx/EndIdx index into the CoveragePath and
// satisfy EndIdx >= StartIdx. ToField and BackHome are the runway transit
// geometries attached by the transit router.
type Trip struct {
	StartIdx int
	EndIdx   int
	ToField  LineString
	BackHome LineString

	// Derived once transits are attached.
	LengthM   float64
	FuelUsedL float64
	MixUsedL  float64
}

// TransitLengthM is the non-spraying distance of the trip.
func (t Trip) TransitLengthM() float64 {
	return t.ToField.Length() + t.BackHome.Length()
}

// Mission-wide aggregate metrics. Pure functions of the trip sequence and
// input geometries.
type Metrics struct {
	LengthTotalM   float64
	LengthTransitM float64
	LengthSprayM   float64

	TimeTotalMin   float64
	TimeTransitMin float64
	TimeSprayMin   float64

	FuelL float64
	FertL float64

	FieldAreaHa   float64
	SprayedAreaHa float64
}

// A fully assembled spraying mission. Built fresh per request in one pass;
// never exposed partially. All geometry is WGS84 (lon, lat).
type Mission struct {
	Field  Polygon
	Runway LineString
	NFZ    []Polygon

	Profile AircraftProfile
	Path    CoveragePath
	Trips   []Trip
	Metrics Metrics

	// Ordered diagnostic log of build decisions.
	Logs []string
}
