package domain

import "math"

// Immutable planar coordinate pair. Depending on context this is either a
// WGS84 (lon, lat) pair or a projected (x, y) position in meters; geometries
// are projected once during preprocessing and stay in meters afterwards.
type Point struct {
	X float64
	Y float64
}

// Return the point as [x, y] for external API compatibility.
func (p Point) CoordsToList() []float64 { return []float64{p.X, p.Y} }

func (p Point) DistanceTo(other Point) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// Ordered open polyline.
type LineString []Point

// Total polyline length in the units of its coordinates.
func (l LineString) Length() float64 {
	total := 0.0
	for i := 1; i < len(l); i++ {
		total += l[i-1].DistanceTo(l[i])
	}
	return total
}

func (l LineString) Start() Point { return l[0] }
func (l LineString) End() Point   { return l[len(l)-1] }

// NearestPoint returns the closest point on the polyline to pt.
func (l LineString) NearestPoint(pt Point) Point {
	best := l[0]
	bestDist := pt.DistanceTo(best)
	for i := 1; i < len(l); i++ {
		cand := closestPointOnSegment(l[i-1], l[i], pt)
		if d := pt.DistanceTo(cand); d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}

// Closed ring of vertices (last edge connects the final vertex back to the
// first; the closing vertex is not repeated).
type Polygon []Point

// Signed shoelace area; positive for counter-clockwise rings.
func (p Polygon) signedArea() float64 {
	sum := 0.0
	n := len(p)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return sum / 2
}

// Area returns the absolute ring area in squared coordinate units.
func (p Polygon) Area() float64 { return math.Abs(p.signedArea()) }

// Centroid of the ring vertices.
func (p Polygon) Centroid() Point {
	var cx, cy float64
	for _, v := range p {
		cx += v.X
		cy += v.Y
	}
	n := float64(len(p))
	return Point{X: cx / n, Y: cy / n}
}

// Contains reports whether pt lies strictly inside the ring (ray casting).
func (p Polygon) Contains(pt Point) bool {
	inside := false
	n := len(p)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p[i], p[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) &&
			pt.X < (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// SelfIntersects reports whether any two non-adjacent edges of the ring cross.
func (p Polygon) SelfIntersects() bool {
	n := len(p)
	for i := 0; i < n; i++ {
		a1, a2 := p[i], p[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// Skip edges sharing a vertex with edge i.
			if j == i || (j+1)%n == i || j == (i+1)%n {
				continue
			}
			b1, b2 := p[j], p[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

// SegmentDistance returns the minimum distance between segment a-b and the
// polygon. A segment crossing or entering the ring has distance zero.
func (p Polygon) SegmentDistance(a, b Point) float64 {
	if p.Contains(a) || p.Contains(b) {
		return 0
	}
	n := len(p)
	min := math.Inf(1)
	for i := 0; i < n; i++ {
		e1, e2 := p[i], p[(i+1)%n]
		if segmentsIntersect(a, b, e1, e2) {
			return 0
		}
		if d := segmentSegmentDistance(a, b, e1, e2); d < min {
			min = d
		}
	}
	return min
}

func direction(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func onSegment(a, b, c Point) bool {
	return math.Min(a.X, b.X) <= c.X && c.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= c.Y && c.Y <= math.Max(a.Y, b.Y)
}

// segmentsIntersect reports whether segments p1-p2 and p3-p4 intersect,
// including collinear overlap and shared endpoints.
func segmentsIntersect(p1, p2, p3, p4 Point) bool {
	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}
	return false
}

func closestPointOnSegment(a, b, pt Point) Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a
	}
	t := ((pt.X-a.X)*dx + (pt.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return Point{X: a.X + t*dx, Y: a.Y + t*dy}
}

func segmentSegmentDistance(a1, a2, b1, b2 Point) float64 {
	if segmentsIntersect(a1, a2, b1, b2) {
		return 0
	}
	d := a1.DistanceTo(closestPointOnSegment(b1, b2, a1))
	if v := a2.DistanceTo(closestPointOnSegment(b1, b2, a2)); v < d {
		d = v
	}
	if v := b1.DistanceTo(closestPointOnSegment(a1, a2, b1)); v < d {
		d = v
	}
	if v := b2.DistanceTo(closestPointOnSegment(a1, a2, b2)); v < d {
		d = v
	}
	return d
}
