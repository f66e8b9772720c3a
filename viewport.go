package flowcanvas

import "math"

// Default zoom limits and wheel factors.
const (
	DefaultMinScale = 0.1
	DefaultMaxScale = 10.0

	wheelZoomIn  = 1.1
	wheelZoomOut = 0.9
)

// Viewport maps between canvas space and world space:
//
//	world  = canvas/Scale - Offset
//	canvas = (world + Offset) * Scale
//
// Offset is in world units. Scale must be > 0.
type Viewport struct {
	Scale  float64
	Offset Point
}

// DefaultViewport returns an identity viewport.
func DefaultViewport() Viewport {
	return Viewport{Scale: 1}
}

// CanvasToWorld converts a canvas-space point to world space.
func CanvasToWorld(p Point, v Viewport) Point {
	return Point{p.X/v.Scale - v.Offset.X, p.Y/v.Scale - v.Offset.Y}
}

// WorldToCanvas converts a world-space point to canvas space. It is the exact
// inverse of CanvasToWorld.
func WorldToCanvas(p Point, v Viewport) Point {
	return Point{(p.X + v.Offset.X) * v.Scale, (p.Y + v.Offset.Y) * v.Scale}
}

// CanvasToWorld converts a canvas-space point through this viewport.
func (v Viewport) CanvasToWorld(p Point) Point { return CanvasToWorld(p, v) }

// WorldToCanvas converts a world-space point through this viewport.
func (v Viewport) WorldToCanvas(p Point) Point { return WorldToCanvas(p, v) }

// PanFrom sets the offset so that content follows a canvas-space drag of
// delta that began at startOffset. Dividing by Scale keeps the pan 1:1 on
// screen at any zoom.
func (v *Viewport) PanFrom(startOffset, delta Point) {
	v.Offset = Point{
		X: startOffset.X + delta.X/v.Scale,
		Y: startOffset.Y + delta.Y/v.Scale,
	}
}

// ZoomAt changes the scale to newScale clamped to [minScale, maxScale] while
// keeping the world point under the canvas-space anchor fixed. It returns the
// applied scale.
func (v *Viewport) ZoomAt(anchor Point, newScale, minScale, maxScale float64) float64 {
	newScale = clampScale(newScale, minScale, maxScale)
	world := CanvasToWorld(anchor, *v)
	v.Scale = newScale
	v.Offset = Point{
		X: anchor.X/newScale - world.X,
		Y: anchor.Y/newScale - world.Y,
	}
	return newScale
}

// VisibleBounds returns the world-space rectangle shown on a canvas of the
// given size.
func (v Viewport) VisibleBounds(canvas Size) Rect {
	tl := CanvasToWorld(Point{}, v)
	return Rect{X: tl.X, Y: tl.Y, Width: canvas.Width / v.Scale, Height: canvas.Height / v.Scale}
}

// centeredOn returns the offset that puts world point p at the middle of a
// canvas of the given size at the given scale.
func centeredOn(p Point, canvas Size, scale float64) Point {
	return Point{
		X: canvas.Width/(2*scale) - p.X,
		Y: canvas.Height/(2*scale) - p.Y,
	}
}

// fitScale returns the scale that fits bounds inside canvas with padding
// pixels on every side, clamped to [minScale, maxScale]. Degenerate bounds
// report ok=false.
func fitScale(bounds Rect, canvas Size, padding, minScale, maxScale float64) (float64, bool) {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return 0, false
	}
	sx := (canvas.Width - padding*2) / bounds.Width
	sy := (canvas.Height - padding*2) / bounds.Height
	s := math.Min(sx, sy)
	if s <= 0 {
		return 0, false
	}
	return clampScale(s, minScale, maxScale), true
}

func clampScale(s, minScale, maxScale float64) float64 {
	return math.Max(minScale, math.Min(maxScale, s))
}

// CanvasMapper normalises a device/screen position into canvas space, for
// example by subtracting the canvas element's bounding-box origin.
type CanvasMapper func(screenX, screenY float64) Point

// OffsetMapper returns a CanvasMapper for a canvas whose top-left corner sits
// at (originX, originY) in screen space.
func OffsetMapper(originX, originY float64) CanvasMapper {
	return func(sx, sy float64) Point {
		return Point{sx - originX, sy - originY}
	}
}
