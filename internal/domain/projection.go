package domain

import "math"

const earthRadiusMeters = 6371000.0

// Projection converts between WGS84 (lon, lat) degrees and a local
// tangent-plane frame in meters anchored at a reference coordinate.
// All planning math runs in the projected frame; results are unprojected
// back to WGS84 for output. Distortion is negligible at field scale.
type Projection struct {
	lon0   float64
	lat0   float64
	cosLat float64
}

// NewProjection anchors a local meter frame at the given WGS84 point.
func NewProjection(anchor Point) Projection {
	return Projection{
		lon0:   anchor.X,
		lat0:   anchor.Y,
		cosLat: math.Cos(anchor.Y * math.Pi / 180),
	}
}

func (pr Projection) ToMeters(p Point) Point {
	return Point{
		X: (p.X - pr.lon0) * math.Pi / 180 * earthRadiusMeters * pr.cosLat,
		Y: (p.Y - pr.lat0) * math.Pi / 180 * earthRadiusMeters,
	}
}

func (pr Projection) ToWGS(p Point) Point {
	return Point{
		X: pr.lon0 + p.X/(earthRadiusMeters*pr.cosLat)*180/math.Pi,
		Y: pr.lat0 + p.Y/earthRadiusMeters*180/math.Pi,
	}
}

func (pr Projection) LineToMeters(l LineString) LineString {
	out := make(LineString, len(l))
	for i, p := range l {
		out[i] = pr.ToMeters(p)
	}
	return out
}

func (pr Projection) LineToWGS(l LineString) LineString {
	out := make(LineString, len(l))
	for i, p := range l {
		out[i] = pr.ToWGS(p)
	}
	return out
}

func (pr Projection) PolygonToMeters(p Polygon) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = pr.ToMeters(v)
	}
	return out
}

func (pr Projection) PolygonToWGS(p Polygon) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = pr.ToWGS(v)
	}
	return out
}
