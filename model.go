package flowcanvas

// Item is anything the selection collaborator can return from a hit test.
type Item interface {
	ID() string
}

// Node is a diagram node as seen by the interaction core. Position is the
// top-left corner in world units.
type Node interface {
	Item
	Position() Point
	Size() Size
}

// Port is a named anchor on a node. Disabled ports are skipped by
// connection hit testing.
type Port struct {
	ID       string
	Disabled bool
}

// PortedNode is a Node that exposes connectable ports.
type PortedNode interface {
	Node
	Ports() []Port
	// PortPosition resolves a port to world coordinates. ok is false when
	// the port cannot currently be placed.
	PortPosition(portID string) (pos Point, ok bool)
}

// Draggable is a Node that can be moved by a node drag. The dispatcher never
// writes node geometry itself; it only forwards the offset-corrected cursor
// point to Drag.
type Draggable interface {
	Node
	StartDrag(p Point)
	Drag(p Point)
	EndDrag(p Point)
}

// DragCanceler is implemented by Draggables that can roll back an unfinished
// drag. When a drag is cancelled and the node does not implement it, EndDrag
// is called with the last forwarded point instead.
type DragCanceler interface {
	CancelDrag()
}

// Edge is a rendered connection. PathPoints returns the rendered polyline;
// the first and last points are the endpoints.
type Edge interface {
	Item
	Kind() EdgeKind
	PathPoints() []Point
}

// SegmentInfo describes the closest segment of an orthogonal edge to a point.
type SegmentInfo struct {
	// Index is the segment index used for waypoint insertion.
	Index int
	// Nearest is the closest point on the segment.
	Nearest Point
}

// OrthogonalEdge is an EdgeOrthogonal edge with editable waypoints.
type OrthogonalEdge interface {
	Edge
	Waypoints() []Point
	// HitTestWaypoint returns the index of the waypoint within tol of p, or -1.
	HitTestWaypoint(p Point, tol float64) int
	// ClosestSegment returns the nearest segment within tol of p.
	ClosestSegment(p Point, tol float64) (SegmentInfo, bool)
}

// BezierEdge is an EdgeBezier edge with two draggable control points.
type BezierEdge interface {
	Edge
	// HitTestControlPoint returns 0 or 1 for the control point within tol
	// of p, or -1.
	HitTestControlPoint(p Point, tol float64) int
	// EffectiveControlPoints returns the control points currently in use,
	// custom overrides included.
	EffectiveControlPoints() [2]Point
}

// Selection is the external selection collaborator. It owns the selection
// set and the rubber-band selection box.
type Selection interface {
	SelectAtPoint(p Point, additive bool) Item
	SelectAll()
	ClearSelection()
	SelectedItems() []Item
	SelectableNodes() []Node
	SelectableEdges() []Edge

	StartSelectionBox(p Point)
	UpdateSelectionBox(p Point)
	EndSelectionBox(additive bool)
	CancelSelectionBox()
	SelectionBoxActive() bool
}

// emptySelection stands in for a nil Selection: nothing is selectable and the
// selection box never opens.
type emptySelection struct{}

func (emptySelection) SelectAtPoint(Point, bool) Item { return nil }
func (emptySelection) SelectAll()                     {}
func (emptySelection) ClearSelection()                {}
func (emptySelection) SelectedItems() []Item          { return nil }
func (emptySelection) SelectableNodes() []Node        { return nil }
func (emptySelection) SelectableEdges() []Edge        { return nil }
func (emptySelection) StartSelectionBox(Point)        {}
func (emptySelection) UpdateSelectionBox(Point)       {}
func (emptySelection) EndSelectionBox(bool)           {}
func (emptySelection) CancelSelectionBox()            {}
func (emptySelection) SelectionBoxActive() bool       { return false }
