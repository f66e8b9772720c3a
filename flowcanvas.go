package flowcanvas

import "math"

// Point is a 2D coordinate. Whether it lives in canvas (device pixel) space or
// world (diagram) space is decided by context; convert between them with
// [CanvasToWorld] and [WorldToCanvas].
type Point struct {
	X, Y float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p multiplied by s on both axes.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Size is a width/height pair in world units.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// Mode is the dispatcher's interaction mode. Exactly one is active.
type Mode uint8

const (
	ModeSelect  Mode = iota // select, move and edit edges (default)
	ModeDrag                // raw canvas events only; external tools drive the gesture
	ModePan                 // primary button pans the viewport
	ModeConnect             // press on a port to draw a new connection
	ModeDraw                // raw canvas events only; external drawing tools
)

var modeNames = [...]string{"select", "drag", "pan", "connect", "draw"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// Gesture identifies which interaction, if any, is in flight.
type Gesture uint8

const (
	GestureNone Gesture = iota
	GestureNodeDrag
	GesturePan
	GestureConnect
	GestureReconnect
	GestureWaypointDrag
	GestureControlDrag
	GestureSelectionBox
)

var gestureNames = [...]string{"none", "node-drag", "pan", "connect", "reconnect", "waypoint-drag", "control-drag", "selection-box"}

func (g Gesture) String() string {
	if int(g) < len(gestureNames) {
		return gestureNames[g]
	}
	return "unknown"
}

// EdgeKind distinguishes edge variants that expose different editing handles.
type EdgeKind uint8

const (
	EdgeOther      EdgeKind = iota // no editable handles besides endpoints
	EdgeOrthogonal                 // polyline with user-editable waypoints
	EdgeBezier                     // cubic curve with two control points
)

// Endpoint names one end of an edge.
type Endpoint uint8

const (
	EndpointSource Endpoint = iota // first path point
	EndpointTarget                 // last path point
)

func (e Endpoint) String() string {
	if e == EndpointTarget {
		return "target"
	}
	return "source"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Has reports whether all bits of m2 are set in m.
func (m KeyModifiers) Has(m2 KeyModifiers) bool { return m&m2 == m2 }

// additive reports whether a selection gesture should extend the selection.
func (m KeyModifiers) additive() bool { return m&(ModCtrl|ModShift) != 0 }

// Key names a keyboard key. Printable keys use their lower-case character.
type Key string

const (
	KeyA         Key = "a"
	KeyDelete    Key = "Delete"
	KeyEscape    Key = "Escape"
	KeyBackspace Key = "Backspace"
	KeyEnter     Key = "Enter"
	KeyTab       Key = "Tab"
	KeySpace     Key = " "
	KeyShift     Key = "Shift"
	KeyControl   Key = "Control"
	KeyAlt       Key = "Alt"
	KeyMeta      Key = "Meta"
)
