package flowcanvas

import "math"

// Defaults used when a node reports a zero size.
const (
	defaultNodeWidth  = 100.0
	defaultNodeHeight = 60.0

	defaultSnapSize      = 10.0
	defaultSnapTolerance = 8.0
)

// SnapOptions configures grid snapping for node, waypoint and control-point
// drags.
type SnapOptions struct {
	Enabled bool
	// Size is the grid pitch in world units. Values <= 0 are ignored by
	// SetSnapOptions.
	Size float64
}

// SnapResult is the outcome of Snap.
type SnapResult struct {
	Position Point
	Guides   Guides
}

// SnapToGrid rounds p to the nearest multiple of grid on each axis. A grid
// <= 0 returns p unchanged.
func SnapToGrid(p Point, grid float64) Point {
	if grid <= 0 {
		return p
	}
	return Point{
		X: math.Round(p.X/grid) * grid,
		Y: math.Round(p.Y/grid) * grid,
	}
}

// alignCandidate is the best alignment found so far on one axis.
type alignCandidate struct {
	target float64
	adjust float64
	ok     bool
}

// consider offers the three dragged lines against three reference lines.
// Only strictly smaller deltas replace the current best, so ties keep the
// first node encountered.
func (c *alignCandidate) consider(dragged, refs [3]float64, tol float64) {
	for _, dv := range dragged {
		for _, rv := range refs {
			delta := rv - dv
			if math.Abs(delta) > tol {
				continue
			}
			if !c.ok || math.Abs(delta) < math.Abs(c.adjust) {
				*c = alignCandidate{target: rv, adjust: delta, ok: true}
			}
		}
	}
}

// Snap places a dragged box whose desired top-left is desired. Grid snapping
// is applied first when grid > 0, then each axis independently aligns one of
// its left/center/right (top/center/bottom) lines with the closest matching
// line of any rect in others, if within tol. Matched reference coordinates
// are returned as guides.
func Snap(desired Point, size Size, others []Rect, grid, tol float64) SnapResult {
	size = sizeOrDefault(size)
	pos := SnapToGrid(desired, grid)

	dx := [3]float64{pos.X, pos.X + size.Width/2, pos.X + size.Width}
	dy := [3]float64{pos.Y, pos.Y + size.Height/2, pos.Y + size.Height}

	var bestV, bestH alignCandidate
	for _, r := range others {
		bestV.consider(dx, [3]float64{r.X, r.X + r.Width/2, r.X + r.Width}, tol)
		bestH.consider(dy, [3]float64{r.Y, r.Y + r.Height/2, r.Y + r.Height}, tol)
	}

	res := SnapResult{Position: pos}
	if bestV.ok {
		res.Position.X += bestV.adjust
		res.Guides.Vertical = []float64{bestV.target}
	}
	if bestH.ok {
		res.Position.Y += bestH.adjust
		res.Guides.Horizontal = []float64{bestH.target}
	}
	return res
}

// nodeRect returns a node's bounds, applying the default size when the node
// reports none.
func nodeRect(n Node) Rect {
	pos := n.Position()
	s := sizeOrDefault(n.Size())
	return Rect{X: pos.X, Y: pos.Y, Width: s.Width, Height: s.Height}
}

func sizeOrDefault(s Size) Size {
	if s.Width <= 0 {
		s.Width = defaultNodeWidth
	}
	if s.Height <= 0 {
		s.Height = defaultNodeHeight
	}
	return s
}

// axisLock keeps only the larger component of the movement from start to p,
// constraining the move to horizontal or vertical.
func axisLock(p, start Point) Point {
	if math.Abs(p.X-start.X) > math.Abs(p.Y-start.Y) {
		p.Y = start.Y
	} else {
		p.X = start.X
	}
	return p
}
