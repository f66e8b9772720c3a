package flowcanvas

import "strings"

// HandlePointer feeds a normalised pointer event to the dispatcher. Moves
// are throttled; a pending move is delivered before any press or release so
// the state machine sees events in order.
func (d *Dispatcher) HandlePointer(ev PointerEvent) {
	if d.destroyed {
		return
	}
	if ev.Kind == PointerMove {
		if v, ok := d.moveLimit.Offer(ev, d.now()); ok {
			d.deliverPointer(v)
		}
		return
	}
	if pending, ok := d.moveLimit.Drain(); ok {
		d.deliverPointer(pending)
	}
	d.deliverPointer(ev)
}

func (d *Dispatcher) pointerEvent(t EventType, ev PointerEvent) (Event, Point) {
	canvas := Point{X: ev.X, Y: ev.Y}
	world := d.toWorld(canvas)
	return Event{
		Type:        t,
		Point:       world,
		CanvasPoint: canvas,
		Button:      ev.Button,
		Modifiers:   ev.Modifiers,
		Original:    ev.Original,
	}, world
}

func (d *Dispatcher) pointerDown(ev PointerEvent) {
	d.focused = true

	// A gesture still running here lost its release (for example outside
	// the window); drop it before starting another.
	if d.activeCount() > 0 {
		d.debugf("stale gesture %s cancelled", d.Gesture())
		d.Cancel()
	}

	e, world := d.pointerEvent(EventCanvasMouseDown, ev)
	d.emit(e)
	if d.destroyed || ev.Button == MouseButtonRight {
		d.ptr = pointerState{}
		return
	}

	canvas := e.CanvasPoint
	d.ptr = pointerState{down: true, button: ev.Button, start: canvas}

	if ev.Button == MouseButtonMiddle {
		d.startPan(canvas)
		return
	}
	switch d.mode {
	case ModeSelect:
		d.selectModeDown(world, ev.Modifiers)
	case ModePan:
		d.startPan(canvas)
	case ModeConnect:
		d.connectModeDown(world)
	}
}

func (d *Dispatcher) pointerMove(ev PointerEvent) {
	e, world := d.pointerEvent(EventCanvasMouseMove, ev)
	d.emit(e)
	if d.destroyed || !d.ptr.down {
		return
	}
	canvas := e.CanvasPoint
	if canvas.Dist(d.ptr.start) > d.opts.DragDeadZone {
		d.ptr.moved = true
	}

	switch {
	case d.connect.active:
		d.updateConnect(world)
	case d.endpoint.active:
		d.updateReconnect(world)
	case d.control.active:
		d.updateControlDrag(world, ev.Modifiers)
	case d.waypoint.active:
		d.updateWaypointDrag(world, ev.Modifiers)
	case d.drag.active:
		d.updateDrag(world)
	case d.pan.active:
		d.updatePan(canvas)
	case d.sel.SelectionBoxActive():
		d.sel.UpdateSelectionBox(world)
	}
}

func (d *Dispatcher) pointerUp(ev PointerEvent) {
	e, world := d.pointerEvent(EventCanvasMouseUp, ev)
	d.emit(e)
	if d.destroyed {
		return
	}
	ptr := d.ptr
	d.ptr = pointerState{}

	switch {
	case d.connect.active:
		d.endConnect(world)
	case d.endpoint.active:
		d.endReconnect(world)
	case d.control.active:
		d.endControlDrag()
	case d.waypoint.active:
		d.endWaypointDrag()
	case d.drag.active:
		d.endDrag(world)
	case d.pan.active:
		d.pan = panState{}
	case d.sel.SelectionBoxActive():
		d.sel.EndSelectionBox(ev.Modifiers.additive())
	}

	if ptr.down && ptr.button == MouseButtonLeft && !ptr.moved &&
		e.CanvasPoint.Dist(ptr.start) <= d.opts.DragDeadZone {
		d.click(e)
	}
}

// click emits canvas-click and, when it follows another click inside the
// double-click window, canvas-double-click. A double-click resets the
// sequence so a third click starts over.
func (d *Dispatcher) click(up Event) {
	d.emit(Event{Type: EventCanvasClick, Point: up.Point, CanvasPoint: up.CanvasPoint,
		Modifiers: up.Modifiers, Original: up.Original})

	now := d.now()
	if d.clicked && now.Sub(d.lastClick) < d.opts.DoubleClickWindow {
		d.clicked = false
		d.doubleClick(up)
		return
	}
	d.clicked = true
	d.lastClick = now
}

// doubleClick inserts a waypoint on the nearest orthogonal segment, or else
// clears a bezier control override under the pointer.
func (d *Dispatcher) doubleClick(up Event) {
	d.emit(Event{Type: EventCanvasDoubleClick, Point: up.Point, CanvasPoint: up.CanvasPoint,
		Modifiers: up.Modifiers, Original: up.Original})
	if d.destroyed || d.mode != ModeSelect {
		return
	}
	edges := d.sel.SelectableEdges()
	tol := d.worldTol(d.opts.HandleTolerance)
	if d.tryInsertWaypoint(edges, up.Point, tol) {
		return
	}
	d.tryResetBezierControl(edges, up.Point, tol)
}

// HandleWheel feeds a wheel event to the dispatcher. Events are debounced;
// the last one of a burst zooms by one step around its position.
func (d *Dispatcher) HandleWheel(ev WheelEvent) {
	if d.destroyed || ev.DeltaY == 0 {
		return
	}
	if v, ok := d.wheelLimit.Offer(ev, d.now()); ok {
		d.applyWheel(v)
	}
}

func (d *Dispatcher) applyWheel(ev WheelEvent) {
	d.stopAnimation()
	canvas := Point{X: ev.X, Y: ev.Y}
	world := d.toWorld(canvas)

	factor := wheelZoomIn
	if ev.DeltaY > 0 {
		factor = wheelZoomOut
	}
	scale := d.vp.ZoomAt(canvas, d.vp.Scale*factor, d.opts.MinScale, d.opts.MaxScale)
	d.emit(Event{
		Type:        EventCanvasZoom,
		Scale:       scale,
		Point:       world,
		CanvasPoint: canvas,
		Offset:      d.vp.Offset,
		Modifiers:   ev.Modifiers,
		Original:    ev.Original,
	})
}

// HandleContextMenu reports a context-menu request at a canvas position.
func (d *Dispatcher) HandleContextMenu(x, y float64, original any) {
	if d.destroyed {
		return
	}
	canvas := Point{X: x, Y: y}
	d.emit(Event{
		Type:        EventContextMenu,
		Point:       d.toWorld(canvas),
		CanvasPoint: canvas,
		Button:      MouseButtonRight,
		Original:    original,
	})
}

// HandleKey feeds a keyboard event to the dispatcher. Keys are ignored while
// the canvas is unfocused.
func (d *Dispatcher) HandleKey(ev KeyEvent) {
	if d.destroyed || d.opts.DisableKeyboard || !d.focused {
		return
	}
	if ev.Kind == KeyUp {
		d.emit(Event{Type: EventKeyUp, Key: ev.Key, Modifiers: ev.Modifiers, Original: ev.Original})
		return
	}

	switch {
	case strings.EqualFold(string(ev.Key), string(KeyA)) &&
		(ev.Modifiers.Has(ModCtrl) || ev.Modifiers.Has(ModMeta)):
		d.sel.SelectAll()
	case ev.Key == KeyDelete:
		d.emit(Event{Type: EventDelete, SelectedItems: d.sel.SelectedItems(), Key: ev.Key, Original: ev.Original})
	case ev.Key == KeyEscape:
		d.sel.ClearSelection()
		d.Cancel()
	default:
		d.emit(Event{Type: EventKeyDown, Key: ev.Key, Modifiers: ev.Modifiers, Original: ev.Original})
	}
}

// HandleTouch maps single-finger touch onto the pointer state machine.
// Multi-touch is ignored; a cancelled touch cancels the gesture.
func (d *Dispatcher) HandleTouch(ev TouchEvent) {
	if d.destroyed || d.opts.DisableTouch {
		return
	}
	pe := PointerEvent{Button: MouseButtonLeft, Modifiers: ev.Modifiers, Original: ev.Original}
	switch ev.Kind {
	case TouchStart:
		if len(ev.Touches) != 1 {
			return
		}
		pe.Kind, pe.X, pe.Y = PointerDown, ev.Touches[0].X, ev.Touches[0].Y
	case TouchMove:
		if len(ev.Touches) != 1 {
			return
		}
		pe.Kind, pe.X, pe.Y = PointerMove, ev.Touches[0].X, ev.Touches[0].Y
	case TouchEnd:
		if len(ev.Changed) != 1 || len(ev.Touches) != 0 {
			return
		}
		pe.Kind, pe.X, pe.Y = PointerUp, ev.Changed[0].X, ev.Changed[0].Y
	case TouchCancel:
		d.moveLimit.Reset()
		d.ptr = pointerState{}
		d.Cancel()
		return
	default:
		return
	}
	d.HandlePointer(pe)
}
