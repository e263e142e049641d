package planner

import (
	"agro-mission-service/internal/domain"
)

// Raw WGS84 geometry of one mission-build request.
type FieldInput struct {
	Field  domain.Polygon
	Runway domain.LineString
	NFZ    []domain.Polygon
}

// All request geometry normalized to a single local meter frame.
type Workspace struct {
	Projection domain.Projection
	Field      domain.Polygon
	Runway     domain.LineString
	NFZ        []domain.Polygon
}

const minPolygonAreaM2 = 1.0

// Preprocess validates the request geometry and projects it into a shared
// meter frame anchored at the field centroid. Pure: no side effects besides
// the log trail.
func Preprocess(in FieldInput, log *BuildLog) (*Workspace, error) {
	if len(in.Field) < 3 {
		return nil, invalidf("field polygon needs at least 3 vertices, got %d", len(in.Field))
	}
	if len(in.Runway) < 2 {
		return nil, invalidf("runway centerline needs at least 2 points, got %d", len(in.Runway))
	}

	proj := domain.NewProjection(in.Field.Centroid())
	fieldM := proj.PolygonToMeters(in.Field)
	runwayM := proj.LineToMeters(in.Runway)

	if fieldM.Area() < minPolygonAreaM2 {
		return nil, invalidf("field polygon area is degenerate (%.3f m2)", fieldM.Area())
	}
	if fieldM.SelfIntersects() {
		return nil, invalidf("field polygon is self-intersecting")
	}
	if runwayM.Length() <= 0 {
		return nil, invalidf("runway centerline has zero length")
	}

	nfzM := make([]domain.Polygon, 0, len(in.NFZ))
	for i, z := range in.NFZ {
		if len(z) < 3 {
			return nil, invalidf("nfz[%d] needs at least 3 vertices, got %d", i, len(z))
		}
		zm := proj.PolygonToMeters(z)
		if zm.Area() < minPolygonAreaM2 {
			return nil, invalidf("nfz[%d] area is degenerate (%.3f m2)", i, zm.Area())
		}
		if zm.SelfIntersects() {
			return nil, invalidf("nfz[%d] is self-intersecting", i)
		}
		nfzM = append(nfzM, zm)
	}

	log.Appendf("geometry validated: field=%.2fha runway=%.0fm nfz=%d",
		fieldM.Area()/10_000, runwayM.Length(), len(nfzM))

	return &Workspace{
		Projection: proj,
		Field:      fieldM,
		Runway:     runwayM,
		NFZ:        nfzM,
	}, nil
}
