package flowcanvas

import (
	"math"
	"time"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func approxPoint(a, b Point) bool {
	return approxEqual(a.X, b.X, 1e-6) && approxEqual(a.Y, b.Y, 1e-6)
}

// --- Fake diagram model ---

type fakeNode struct {
	id    string
	pos   Point
	size  Size
	ports map[string]Point // relative to pos
	order []string
	off   map[string]bool

	starts   []Point
	drags    []Point
	ends     []Point
	canceled int
}

func newFakeNode(id string, x, y, w, h float64) *fakeNode {
	return &fakeNode{id: id, pos: Point{x, y}, size: Size{w, h}}
}

func (n *fakeNode) withPort(id string, dx, dy float64) *fakeNode {
	if n.ports == nil {
		n.ports = make(map[string]Point)
	}
	n.ports[id] = Point{dx, dy}
	n.order = append(n.order, id)
	return n
}

func (n *fakeNode) ID() string      { return n.id }
func (n *fakeNode) Position() Point { return n.pos }
func (n *fakeNode) Size() Size      { return n.size }

func (n *fakeNode) Ports() []Port {
	ps := make([]Port, len(n.order))
	for i, id := range n.order {
		ps[i] = Port{ID: id, Disabled: n.off[id]}
	}
	return ps
}

func (n *fakeNode) PortPosition(id string) (Point, bool) {
	rel, ok := n.ports[id]
	if !ok {
		return Point{}, false
	}
	return n.pos.Add(rel), true
}

func (n *fakeNode) StartDrag(p Point) { n.starts = append(n.starts, p) }
func (n *fakeNode) Drag(p Point)      { n.drags = append(n.drags, p) }
func (n *fakeNode) EndDrag(p Point)   { n.ends = append(n.ends, p) }

func (n *fakeNode) lastDrag() (Point, bool) {
	if len(n.drags) == 0 {
		return Point{}, false
	}
	return n.drags[len(n.drags)-1], true
}

// cancelNode is a fakeNode that can roll back a drag.
type cancelNode struct{ *fakeNode }

func (n cancelNode) CancelDrag() { n.canceled++ }

// plainNode has no ports and cannot be dragged.
type plainNode struct {
	id  string
	pos Point
}

func (n plainNode) ID() string      { return n.id }
func (n plainNode) Position() Point { return n.pos }
func (n plainNode) Size() Size      { return Size{} }

type fakeEdge struct {
	id        string
	kind      EdgeKind
	path      []Point // endpoints and, for orthogonal edges, waypoints
	waypoints []Point
	controls  [2]Point
}

// newOrthoEdge builds an orthogonal edge whose path is src, waypoints, dst.
func newOrthoEdge(id string, src, dst Point, wps ...Point) *fakeEdge {
	path := append(append([]Point{src}, wps...), dst)
	return &fakeEdge{id: id, kind: EdgeOrthogonal, path: path, waypoints: wps}
}

func newBezierEdge(id string, src, dst, c0, c1 Point) *fakeEdge {
	return &fakeEdge{id: id, kind: EdgeBezier, path: []Point{src, dst}, controls: [2]Point{c0, c1}}
}

func (e *fakeEdge) ID() string                       { return e.id }
func (e *fakeEdge) Kind() EdgeKind                   { return e.kind }
func (e *fakeEdge) PathPoints() []Point              { return e.path }
func (e *fakeEdge) Waypoints() []Point               { return e.waypoints }
func (e *fakeEdge) EffectiveControlPoints() [2]Point { return e.controls }

func (e *fakeEdge) HitTestWaypoint(p Point, tol float64) int {
	for i, w := range e.waypoints {
		if p.Dist(w) <= tol {
			return i
		}
	}
	return -1
}

func (e *fakeEdge) ClosestSegment(p Point, tol float64) (SegmentInfo, bool) {
	return ClosestPolylineSegment(e.path, p, tol)
}

func (e *fakeEdge) HitTestControlPoint(p Point, tol float64) int {
	for i, c := range e.controls {
		if p.Dist(c) <= tol {
			return i
		}
	}
	return -1
}

// fakeSelection is an in-memory Selection that records calls.
type fakeSelection struct {
	nodes []Node
	edges []Edge

	selected  []Item
	boxActive bool
	boxPoints []Point
	boxEnded  []bool // additive flag per EndSelectionBox
	selectAll int
	cleared   int
	canceled  int
	hits      []Point // SelectAtPoint calls
}

func (s *fakeSelection) SelectAtPoint(p Point, additive bool) Item {
	s.hits = append(s.hits, p)
	for i := len(s.nodes) - 1; i >= 0; i-- {
		r := nodeRect(s.nodes[i])
		if r.Contains(p.X, p.Y) {
			if !additive {
				s.selected = nil
			}
			s.selected = append(s.selected, s.nodes[i])
			return s.nodes[i]
		}
	}
	if !additive {
		s.selected = nil
	}
	return nil
}

func (s *fakeSelection) SelectAll() {
	s.selectAll++
	s.selected = s.selected[:0]
	for _, n := range s.nodes {
		s.selected = append(s.selected, n)
	}
	for _, e := range s.edges {
		s.selected = append(s.selected, e)
	}
}

func (s *fakeSelection) ClearSelection()         { s.cleared++; s.selected = nil }
func (s *fakeSelection) SelectedItems() []Item   { return s.selected }
func (s *fakeSelection) SelectableNodes() []Node { return s.nodes }
func (s *fakeSelection) SelectableEdges() []Edge { return s.edges }

func (s *fakeSelection) StartSelectionBox(p Point) {
	s.boxActive = true
	s.boxPoints = []Point{p}
}

func (s *fakeSelection) UpdateSelectionBox(p Point) { s.boxPoints = append(s.boxPoints, p) }

func (s *fakeSelection) EndSelectionBox(additive bool) {
	s.boxActive = false
	s.boxEnded = append(s.boxEnded, additive)
}

func (s *fakeSelection) CancelSelectionBox() {
	if s.boxActive {
		s.canceled++
	}
	s.boxActive = false
}

func (s *fakeSelection) SelectionBoxActive() bool { return s.boxActive }

// --- Clock and recorder ---

type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type recorder struct {
	events []Event
}

func (r *recorder) record(ev Event) { r.events = append(r.events, ev) }

func (r *recorder) types() []EventType {
	ts := make([]EventType, len(r.events))
	for i, ev := range r.events {
		ts[i] = ev.Type
	}
	return ts
}

func (r *recorder) ofType(t EventType) []Event {
	var out []Event
	for _, ev := range r.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func (r *recorder) last(t EventType) (Event, bool) {
	evs := r.ofType(t)
	if len(evs) == 0 {
		return Event{}, false
	}
	return evs[len(evs)-1], true
}

func (r *recorder) reset() { r.events = nil }

// newTestDispatcher returns a dispatcher with rate limiting disabled, a
// fake clock and a recorder on every event.
func newTestDispatcher(sel Selection) (*Dispatcher, *recorder, *fakeClock) {
	clk := newFakeClock()
	opts := DefaultOptions()
	opts.MoveThrottle = 0
	opts.WheelDebounce = 0
	opts.Clock = clk.now
	d := NewDispatcher(sel, &opts)
	rec := &recorder{}
	d.OnAny(rec.record)
	return d, rec, clk
}

func down(x, y float64, mods ...KeyModifiers) PointerEvent {
	return PointerEvent{Kind: PointerDown, X: x, Y: y, Button: MouseButtonLeft, Modifiers: combine(mods)}
}

func move(x, y float64, mods ...KeyModifiers) PointerEvent {
	return PointerEvent{Kind: PointerMove, X: x, Y: y, Button: MouseButtonLeft, Modifiers: combine(mods)}
}

func up(x, y float64, mods ...KeyModifiers) PointerEvent {
	return PointerEvent{Kind: PointerUp, X: x, Y: y, Button: MouseButtonLeft, Modifiers: combine(mods)}
}

func combine(mods []KeyModifiers) KeyModifiers {
	var m KeyModifiers
	for _, x := range mods {
		m |= x
	}
	return m
}
