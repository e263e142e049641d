package planner

import (
	"sort"

	"agro-mission-service/internal/domain"
)

// RouteTransits attaches runway transit geometry to every trip: to_field
// from the nearest runway point to the trip's first swath start, back_home
// from the trip's last swath end to the nearest runway point.
//
// The default path is the straight segment. When it passes closer to a
// no-fly zone than safetyBufferM, a detour through one or two vertices of
// the offending polygon is attempted; if no candidate clears every zone the
// trip is unreachable.
func RouteTransits(ws *Workspace, path domain.CoveragePath, trips []domain.Trip, safetyBufferM float64, log *BuildLog) error {
	for ti := range trips {
		first := path.Swaths[trips[ti].StartIdx].Line
		last := path.Swaths[trips[ti].EndIdx].Line

		toField, err := transitPath(ws.Runway.NearestPoint(first.Start()), first.Start(), ws.NFZ, safetyBufferM)
		if err != nil {
			log.Appendf("trip %d: no to_field path to swath %d", ti, trips[ti].StartIdx)
			return err
		}
		backHome, err := transitPath(last.End(), ws.Runway.NearestPoint(last.End()), ws.NFZ, safetyBufferM)
		if err != nil {
			log.Appendf("trip %d: no back_home path from swath %d", ti, trips[ti].EndIdx)
			return err
		}

		trips[ti].ToField = toField
		trips[ti].BackHome = backHome
		log.Appendf("trip %d transits routed: to_field=%.0fm back_home=%.0fm",
			ti, toField.Length(), backHome.Length())
	}
	return nil
}

// transitPath returns the straight segment from start to goal, or a vertex
// detour around the first NFZ the straight segment violates.
func transitPath(start, goal domain.Point, nfz []domain.Polygon, safetyBufferM float64) (domain.LineString, error) {
	direct := domain.LineString{start, goal}
	offender := firstViolated(direct, nfz, safetyBufferM)
	if offender == nil {
		return direct, nil
	}

	if cand := vertexDetour(start, goal, *offender, nfz, safetyBufferM); cand != nil {
		return cand, nil
	}
	return nil, unreachablef("no path from (%.0f, %.0f) to (%.0f, %.0f) clears the no-fly zones",
		start.X, start.Y, goal.X, goal.Y)
}

// firstViolated returns the first polygon the polyline passes within
// safetyBufferM of, or nil.
func firstViolated(line domain.LineString, nfz []domain.Polygon, safetyBufferM float64) *domain.Polygon {
	for i := range nfz {
		for s := 1; s < len(line); s++ {
			if nfz[i].SegmentDistance(line[s-1], line[s]) < safetyBufferM {
				return &nfz[i]
			}
		}
	}
	return nil
}

// vertexDetour tries polylines through one, then two, of the offender's
// vertices closest to the straight segment, pushed outward from the polygon
// centroid by the safety buffer. The shortest candidate clearing every zone
// wins; nil when none does.
func vertexDetour(start, goal domain.Point, offender domain.Polygon, nfz []domain.Polygon, safetyBufferM float64) domain.LineString {
	verts := detourVertices(start, goal, offender, safetyBufferM)

	var candidates []domain.LineString
	for _, v := range verts {
		cand := domain.LineString{start, v, goal}
		if firstViolated(cand, nfz, safetyBufferM) == nil {
			candidates = append(candidates, cand)
		}
	}
	if len(candidates) == 0 && len(verts) >= 2 {
		v1, v2 := verts[0], verts[1]
		for _, pair := range [][2]domain.Point{{v1, v2}, {v2, v1}} {
			cand := domain.LineString{start, pair[0], pair[1], goal}
			if firstViolated(cand, nfz, safetyBufferM) == nil {
				candidates = append(candidates, cand)
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Length() < best.Length() {
			best = c
		}
	}
	return best
}

// detourVertices returns the offender's vertices ordered by distance to the
// straight segment, each offset outward so the detour keeps the buffer.
func detourVertices(start, goal domain.Point, offender domain.Polygon, safetyBufferM float64) []domain.Point {
	centroid := offender.Centroid()
	seg := domain.LineString{start, goal}

	type scored struct {
		pt   domain.Point
		dist float64
	}
	out := make([]scored, 0, len(offender))
	for _, v := range offender {
		pushed := pushOutward(v, centroid, safetyBufferM*2)
		out = append(out, scored{pt: pushed, dist: seg.NearestPoint(v).DistanceTo(v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].dist < out[j].dist })

	verts := make([]domain.Point, len(out))
	for i, s := range out {
		verts[i] = s.pt
	}
	return verts
}

func pushOutward(v, centroid domain.Point, dist float64) domain.Point {
	d := centroid.DistanceTo(v)
	if d == 0 {
		return v
	}
	scale := (d + dist) / d
	return domain.Point{
		X: centroid.X + (v.X-centroid.X)*scale,
		Y: centroid.Y + (v.Y-centroid.Y)*scale,
	}
}
