package flowcanvas

import "math"

// Default hit tolerances in canvas pixels.
const (
	defaultPortTolerance   = 10.0
	defaultHandleTolerance = 8.0
)

// PortHit is the result of a port search.
type PortHit struct {
	Node   PortedNode
	PortID string
	Dist   float64
}

// EndpointHit is an edge endpoint under the pointer.
type EndpointHit struct {
	Edge     Edge
	Endpoint Endpoint
	Dist     float64
}

// WaypointHit is an orthogonal edge waypoint under the pointer.
type WaypointHit struct {
	Edge  OrthogonalEdge
	Index int
	Dist  float64
}

// ControlHit is a bezier control handle under the pointer.
type ControlHit struct {
	Edge  BezierEdge
	Index int
	Dist  float64
}

// SegmentHit is the nearest orthogonal edge segment to the pointer.
type SegmentHit struct {
	Edge    OrthogonalEdge
	Segment SegmentInfo
	Dist    float64
}

// FindNearestPort returns the closest connectable port within tol of p. The
// exclude node, if non-nil, is skipped. Ties go to the first port found in
// iteration order.
func FindNearestPort(nodes []Node, p Point, tol float64, exclude Node) (PortHit, bool) {
	best := PortHit{Dist: math.Inf(1)}
	found := false
	for _, n := range nodes {
		if n == nil || (exclude != nil && n.ID() == exclude.ID()) {
			continue
		}
		pn, ok := n.(PortedNode)
		if !ok {
			continue
		}
		for _, port := range pn.Ports() {
			if port.Disabled {
				continue
			}
			pos, ok := pn.PortPosition(port.ID)
			if !ok {
				continue
			}
			d := p.Dist(pos)
			if d <= tol && d < best.Dist {
				best = PortHit{Node: pn, PortID: port.ID, Dist: d}
				found = true
			}
		}
	}
	return best, found
}

// HitEndpoint returns the edge endpoint nearest to p within tol. Edges with
// fewer than two path points have no endpoints.
func HitEndpoint(edges []Edge, p Point, tol float64) (EndpointHit, bool) {
	best := EndpointHit{Dist: math.Inf(1)}
	found := false
	for _, e := range edges {
		if e == nil {
			continue
		}
		pts := e.PathPoints()
		if len(pts) < 2 {
			continue
		}
		if d := p.Dist(pts[0]); d <= tol && d < best.Dist {
			best = EndpointHit{Edge: e, Endpoint: EndpointSource, Dist: d}
			found = true
		}
		if d := p.Dist(pts[len(pts)-1]); d <= tol && d < best.Dist {
			best = EndpointHit{Edge: e, Endpoint: EndpointTarget, Dist: d}
			found = true
		}
	}
	return best, found
}

// HitWaypoint returns the orthogonal-edge waypoint nearest to p within tol.
func HitWaypoint(edges []Edge, p Point, tol float64) (WaypointHit, bool) {
	best := WaypointHit{Dist: math.Inf(1)}
	found := false
	for _, e := range edges {
		oe, ok := asOrthogonal(e)
		if !ok {
			continue
		}
		idx := oe.HitTestWaypoint(p, tol)
		if idx < 0 {
			continue
		}
		d := tol
		if wps := oe.Waypoints(); idx < len(wps) {
			d = p.Dist(wps[idx])
		}
		if d < best.Dist {
			best = WaypointHit{Edge: oe, Index: idx, Dist: d}
			found = true
		}
	}
	return best, found
}

// HitControlPoint returns the bezier control handle nearest to p within tol.
func HitControlPoint(edges []Edge, p Point, tol float64) (ControlHit, bool) {
	best := ControlHit{Dist: math.Inf(1)}
	found := false
	for _, e := range edges {
		be, ok := asBezier(e)
		if !ok {
			continue
		}
		idx := be.HitTestControlPoint(p, tol)
		if idx < 0 || idx > 1 {
			continue
		}
		d := p.Dist(be.EffectiveControlPoints()[idx])
		if d < best.Dist {
			best = ControlHit{Edge: be, Index: idx, Dist: d}
			found = true
		}
	}
	return best, found
}

// HitSegment returns the orthogonal-edge segment nearest to p within tol.
func HitSegment(edges []Edge, p Point, tol float64) (SegmentHit, bool) {
	best := SegmentHit{Dist: math.Inf(1)}
	found := false
	for _, e := range edges {
		oe, ok := asOrthogonal(e)
		if !ok {
			continue
		}
		info, ok := oe.ClosestSegment(p, tol)
		if !ok {
			continue
		}
		d := p.Dist(info.Nearest)
		if d < best.Dist {
			best = SegmentHit{Edge: oe, Segment: info, Dist: d}
			found = true
		}
	}
	return best, found
}

// asOrthogonal matches an edge on its kind. An edge that reports
// EdgeOrthogonal without implementing OrthogonalEdge is treated as
// malformed and never hit.
func asOrthogonal(e Edge) (OrthogonalEdge, bool) {
	if e == nil || e.Kind() != EdgeOrthogonal {
		return nil, false
	}
	oe, ok := e.(OrthogonalEdge)
	return oe, ok
}

func asBezier(e Edge) (BezierEdge, bool) {
	if e == nil || e.Kind() != EdgeBezier {
		return nil, false
	}
	be, ok := e.(BezierEdge)
	return be, ok
}

// NearestOnSegment returns the point on segment ab closest to p.
func NearestOnSegment(p, a, b Point) Point {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return a
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / l2
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Scale(t))
}

// ClosestPolylineSegment finds the segment of path nearest to p within tol.
// Segment i joins path[i] and path[i+1], so for a path made of source,
// waypoints and target, Index is where a new waypoint is inserted. Edge
// implementations can use it for ClosestSegment.
func ClosestPolylineSegment(path []Point, p Point, tol float64) (SegmentInfo, bool) {
	best := math.Inf(1)
	var info SegmentInfo
	for i := 0; i+1 < len(path); i++ {
		q := NearestOnSegment(p, path[i], path[i+1])
		if d := p.Dist(q); d <= tol && d < best {
			best = d
			info = SegmentInfo{Index: i, Nearest: q}
		}
	}
	return info, !math.IsInf(best, 1)
}
