package flowcanvas

import "slices"

// --- Gesture records ---

type dragState struct {
	active  bool
	start   Point
	current Point
	offset  Point // grab point minus node top-left
	item    Draggable
}

type panState struct {
	active      bool
	start       Point // canvas space
	startOffset Point
}

type waypointDragState struct {
	active  bool
	edge    OrthogonalEdge
	index   int
	start   Point
	current Point
}

type controlDragState struct {
	active  bool
	edge    BezierEdge
	index   int // 0: first control point, 1: second
	start   Point
	current Point
}

type endpointDragState struct {
	active   bool
	edge     Edge
	endpoint Endpoint
	start    Point
	current  Point
}

type connectDragState struct {
	active  bool
	source  PortedNode
	port    string
	current Point
}

// Cancel abandons the gesture in flight, if any, and cancels the selection
// box. Listeners receive the matching cancel event so previews can be
// cleared. Calling it while idle only cancels the selection box.
func (d *Dispatcher) Cancel() {
	drag, conn, ep, wp, cp := d.drag, d.connect, d.endpoint, d.waypoint, d.control

	d.drag = dragState{}
	d.pan = panState{}
	d.connect = connectDragState{}
	d.endpoint = endpointDragState{}
	d.waypoint = waypointDragState{}
	d.control = controlDragState{}
	d.sel.CancelSelectionBox()

	switch {
	case drag.active:
		if dc, ok := drag.item.(DragCanceler); ok {
			dc.CancelDrag()
		} else {
			drag.item.EndDrag(drag.current)
		}
		d.emit(Event{Type: EventGuidesChange})
		d.debugf("node drag cancelled")
	case conn.active:
		d.emit(Event{Type: EventConnectCancel, SourceID: conn.source.ID(), SourcePort: conn.port})
		d.debugf("connect cancelled")
	case ep.active:
		d.emit(Event{Type: EventReconnectCancel, EdgeID: ep.edge.ID(), Endpoint: ep.endpoint})
		d.debugf("reconnect cancelled")
	case wp.active:
		d.emit(Event{Type: EventWaypointDragCancel, EdgeID: wp.edge.ID(), Index: wp.index})
		d.debugf("waypoint drag cancelled")
	case cp.active:
		d.emit(Event{Type: EventControlDragCancel, EdgeID: cp.edge.ID(), Index: cp.index})
		d.debugf("control drag cancelled")
	}
}

// --- Select mode resolution ---

// selectModeDown resolves a primary press in ModeSelect. The first matching
// target wins: Alt waypoint remove/insert, endpoint reconnect, bezier control
// drag, waypoint drag, then node drag or selection box.
func (d *Dispatcher) selectModeDown(world Point, mods KeyModifiers) {
	edges := d.sel.SelectableEdges()
	tol := d.worldTol(d.opts.HandleTolerance)

	if mods.Has(ModAlt) {
		if d.tryRemoveWaypoint(edges, world, tol) {
			return
		}
		if d.tryInsertWaypoint(edges, world, tol) {
			return
		}
	}
	if d.tryStartEndpointReconnect(edges, world, tol) {
		return
	}
	if d.tryStartControlDrag(edges, world, tol) {
		return
	}
	if d.tryStartWaypointDrag(edges, world, tol) {
		return
	}

	item := d.sel.SelectAtPoint(world, mods.additive())
	if item == nil {
		d.sel.StartSelectionBox(world)
		d.debugf("selection box at %v", world)
		return
	}
	if dr, ok := item.(Draggable); ok {
		d.startDrag(world, dr)
	}
}

func (d *Dispatcher) tryRemoveWaypoint(edges []Edge, p Point, tol float64) bool {
	hit, ok := HitWaypoint(edges, p, tol)
	if !ok {
		return false
	}
	d.emit(Event{Type: EventWaypointRemove, EdgeID: hit.Edge.ID(), Index: hit.Index})
	return true
}

func (d *Dispatcher) tryInsertWaypoint(edges []Edge, p Point, tol float64) bool {
	hit, ok := HitSegment(edges, p, tol)
	if !ok {
		return false
	}
	d.emit(Event{
		Type:   EventWaypointInsert,
		EdgeID: hit.Edge.ID(),
		Index:  hit.Segment.Index,
		Point:  hit.Segment.Nearest,
	})
	return true
}

func (d *Dispatcher) tryResetBezierControl(edges []Edge, p Point, tol float64) bool {
	hit, ok := HitControlPoint(edges, p, tol)
	if !ok {
		return false
	}
	d.emit(Event{Type: EventControlClear, EdgeID: hit.Edge.ID(), Index: hit.Index})
	return true
}

// --- Node drag ---

func (d *Dispatcher) startDrag(p Point, item Draggable) {
	d.drag = dragState{
		active:  true,
		start:   p,
		current: p,
		item:    item,
		offset:  p.Sub(item.Position()),
	}
	item.StartDrag(p)
	d.debugf("node drag %s", item.ID())
}

// updateDrag snaps the node's desired top-left and forwards the equivalent
// cursor point to the node.
func (d *Dispatcher) updateDrag(p Point) {
	d.drag.current = p
	item := d.drag.item
	desired := p.Sub(d.drag.offset)

	nodes := d.sel.SelectableNodes()
	others := make([]Rect, 0, len(nodes))
	for _, n := range nodes {
		if n == nil || n.ID() == item.ID() {
			continue
		}
		others = append(others, nodeRect(n))
	}
	res := Snap(desired, item.Size(), others, d.gridSize(), d.worldTol(d.opts.SnapTolerance))

	item.Drag(res.Position.Add(d.drag.offset))
	d.emit(Event{Type: EventGuidesChange, Guides: res.Guides})
}

func (d *Dispatcher) endDrag(p Point) {
	item := d.drag.item
	d.drag = dragState{}
	item.EndDrag(p)
	d.emit(Event{Type: EventGuidesChange})
}

// --- Pan ---

func (d *Dispatcher) startPan(canvas Point) {
	d.stopAnimation()
	d.pan = panState{active: true, start: canvas, startOffset: d.vp.Offset}
	d.debugf("pan")
}

func (d *Dispatcher) updatePan(canvas Point) {
	delta := canvas.Sub(d.pan.start)
	d.vp.PanFrom(d.pan.startOffset, delta)
	d.emit(Event{Type: EventCanvasPan, Offset: d.vp.Offset, Delta: delta})
}

// --- Connect ---

func (d *Dispatcher) connectModeDown(p Point) {
	hit, ok := FindNearestPort(d.sel.SelectableNodes(), p, d.worldTol(d.opts.PortTolerance), nil)
	if !ok {
		return
	}
	d.connect = connectDragState{active: true, source: hit.Node, port: hit.PortID, current: p}
	d.emit(Event{Type: EventConnectStart, SourceID: hit.Node.ID(), SourcePort: hit.PortID, Point: p})
	d.debugf("connect from %s:%s", hit.Node.ID(), hit.PortID)
}

func (d *Dispatcher) connectTarget(p Point) (PortHit, bool) {
	return FindNearestPort(d.sel.SelectableNodes(), p, d.worldTol(d.opts.PortTolerance), d.connect.source)
}

func (d *Dispatcher) updateConnect(p Point) {
	d.connect.current = p
	ev := Event{
		Type:       EventConnectPreview,
		SourceID:   d.connect.source.ID(),
		SourcePort: d.connect.port,
		Point:      p,
	}
	if t, ok := d.connectTarget(p); ok {
		ev.TargetID, ev.TargetPort, ev.HasTarget = t.Node.ID(), t.PortID, true
	}
	d.emit(ev)
}

func (d *Dispatcher) endConnect(p Point) {
	t, ok := d.connectTarget(p)
	c := d.connect
	d.connect = connectDragState{}
	if !ok {
		d.emit(Event{Type: EventConnectCancel, SourceID: c.source.ID(), SourcePort: c.port, Point: p})
		return
	}
	d.emit(Event{
		Type:       EventConnectEnd,
		SourceID:   c.source.ID(),
		SourcePort: c.port,
		TargetID:   t.Node.ID(),
		TargetPort: t.PortID,
		HasTarget:  true,
		Point:      p,
	})
}

// --- Endpoint reconnect ---

func (d *Dispatcher) tryStartEndpointReconnect(edges []Edge, p Point, tol float64) bool {
	hit, ok := HitEndpoint(edges, p, tol)
	if !ok {
		return false
	}
	d.endpoint = endpointDragState{active: true, edge: hit.Edge, endpoint: hit.Endpoint, start: p, current: p}
	d.emit(Event{Type: EventReconnectStart, EdgeID: hit.Edge.ID(), Endpoint: hit.Endpoint, Point: p})
	d.debugf("reconnect %s %s", hit.Edge.ID(), hit.Endpoint)
	return true
}

// fixedEndpoint returns the end of the edge that is not being dragged, or
// fallback when the path is malformed.
func (d *Dispatcher) fixedEndpoint(fallback Point) Point {
	pts := d.endpoint.edge.PathPoints()
	if len(pts) < 2 {
		return fallback
	}
	if d.endpoint.endpoint == EndpointSource {
		return pts[len(pts)-1]
	}
	return pts[0]
}

func (d *Dispatcher) reconnectTarget(p Point) (PortHit, bool) {
	return FindNearestPort(d.sel.SelectableNodes(), p, d.worldTol(d.opts.PortTolerance), nil)
}

func (d *Dispatcher) updateReconnect(p Point) {
	d.endpoint.current = p
	ev := Event{
		Type:     EventReconnectPreview,
		EdgeID:   d.endpoint.edge.ID(),
		Endpoint: d.endpoint.endpoint,
		Point:    p,
		Fixed:    d.fixedEndpoint(p),
	}
	if t, ok := d.reconnectTarget(p); ok {
		ev.TargetID, ev.TargetPort, ev.HasTarget = t.Node.ID(), t.PortID, true
	}
	d.emit(ev)
}

func (d *Dispatcher) endReconnect(p Point) {
	t, ok := d.reconnectTarget(p)
	e := d.endpoint
	d.endpoint = endpointDragState{}
	if !ok {
		d.emit(Event{Type: EventReconnectCancel, EdgeID: e.edge.ID(), Endpoint: e.endpoint, Point: p})
		return
	}
	d.emit(Event{
		Type:       EventReconnectEnd,
		EdgeID:     e.edge.ID(),
		Endpoint:   e.endpoint,
		TargetID:   t.Node.ID(),
		TargetPort: t.PortID,
		HasTarget:  true,
		Point:      p,
	})
}

// --- Waypoint and control-point drags ---

// constrainHandle applies grid snapping, then the Shift axis lock relative
// to the gesture's start point.
func (d *Dispatcher) constrainHandle(p, start Point, mods KeyModifiers) Point {
	p = SnapToGrid(p, d.gridSize())
	if mods.Has(ModShift) {
		p = axisLock(p, start)
	}
	return p
}

func (d *Dispatcher) tryStartWaypointDrag(edges []Edge, p Point, tol float64) bool {
	hit, ok := HitWaypoint(edges, p, tol)
	if !ok {
		return false
	}
	cur := p
	if wps := hit.Edge.Waypoints(); hit.Index < len(wps) {
		cur = wps[hit.Index]
	}
	d.waypoint = waypointDragState{active: true, edge: hit.Edge, index: hit.Index, start: p, current: cur}
	d.debugf("waypoint drag %s[%d]", hit.Edge.ID(), hit.Index)
	return true
}

// waypointsWith returns a copy of the edge's waypoints with the dragged one
// replaced by p.
func (d *Dispatcher) waypointsWith(p Point) []Point {
	wps := slices.Clone(d.waypoint.edge.Waypoints())
	if d.waypoint.index < len(wps) {
		wps[d.waypoint.index] = p
	}
	return wps
}

func (d *Dispatcher) updateWaypointDrag(p Point, mods KeyModifiers) {
	p = d.constrainHandle(p, d.waypoint.start, mods)
	d.waypoint.current = p
	d.emit(Event{
		Type:      EventWaypointDrag,
		EdgeID:    d.waypoint.edge.ID(),
		Index:     d.waypoint.index,
		Point:     p,
		Waypoints: d.waypointsWith(p),
	})
}

func (d *Dispatcher) endWaypointDrag() {
	w := d.waypoint
	wps := d.waypointsWith(w.current)
	d.waypoint = waypointDragState{}
	d.emit(Event{
		Type:      EventWaypointDragEnd,
		EdgeID:    w.edge.ID(),
		Index:     w.index,
		Start:     w.start,
		End:       w.current,
		Point:     w.current,
		Waypoints: wps,
	})
}

func (d *Dispatcher) tryStartControlDrag(edges []Edge, p Point, tol float64) bool {
	hit, ok := HitControlPoint(edges, p, tol)
	if !ok {
		return false
	}
	cur := hit.Edge.EffectiveControlPoints()[hit.Index]
	d.control = controlDragState{active: true, edge: hit.Edge, index: hit.Index, start: p, current: cur}
	d.debugf("control drag %s[%d]", hit.Edge.ID(), hit.Index)
	return true
}

func (d *Dispatcher) controlPointsWith(p Point) []Point {
	cps := d.control.edge.EffectiveControlPoints()
	out := []Point{cps[0], cps[1]}
	out[d.control.index] = p
	return out
}

func (d *Dispatcher) updateControlDrag(p Point, mods KeyModifiers) {
	p = d.constrainHandle(p, d.control.start, mods)
	d.control.current = p
	d.emit(Event{
		Type:          EventControlDrag,
		EdgeID:        d.control.edge.ID(),
		Index:         d.control.index,
		Point:         p,
		ControlPoints: d.controlPointsWith(p),
	})
}

func (d *Dispatcher) endControlDrag() {
	c := d.control
	cps := d.controlPointsWith(c.current)
	d.control = controlDragState{}
	d.emit(Event{
		Type:          EventControlDragEnd,
		EdgeID:        c.edge.ID(),
		Index:         c.index,
		Start:         c.start,
		End:           c.current,
		Point:         c.current,
		ControlPoints: cps,
	})
}
