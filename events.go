package flowcanvas

import (
	"log"
	"slices"
)

// EventType identifies an event produced by the dispatcher.
type EventType uint8

const (
	EventCanvasMouseDown    EventType = iota // raw pointer press, any mode
	EventCanvasMouseMove                     // raw pointer move, any mode
	EventCanvasMouseUp                       // raw pointer release, any mode
	EventCanvasClick                         // press and release within the drag dead zone
	EventCanvasDoubleClick                   // two clicks inside the double-click window
	EventCanvasZoom                          // viewport scale changed
	EventCanvasPan                           // viewport offset changed
	EventContextMenu                         // context-menu request at a point
	EventKeyDown                             // key pressed (shortcuts excluded)
	EventKeyUp                               // key released
	EventDelete                              // Delete pressed with the current selection
	EventConnectStart                        // connection drag started from a port
	EventConnectPreview                      // connection drag moved
	EventConnectEnd                          // connection dropped on a port
	EventConnectCancel                       // connection dropped elsewhere or cancelled
	EventReconnectStart                      // edge endpoint grabbed
	EventReconnectPreview                    // edge endpoint moved
	EventReconnectEnd                        // edge endpoint dropped on a port
	EventReconnectCancel                     // edge endpoint dropped elsewhere or cancelled
	EventWaypointInsert                      // waypoint inserted on a segment
	EventWaypointRemove                      // waypoint removed
	EventWaypointDrag                        // waypoint moved
	EventWaypointDragEnd                     // waypoint released
	EventWaypointDragCancel                  // waypoint drag cancelled
	EventControlDrag                         // bezier control point moved
	EventControlDragEnd                      // bezier control point released
	EventControlDragCancel                   // bezier control drag cancelled
	EventControlClear                        // custom bezier control points cleared
	EventGuidesChange                        // alignment guides recomputed
	eventTypeCount
)

var eventNames = [eventTypeCount]string{
	"canvas-mouse-down", "canvas-mouse-move", "canvas-mouse-up",
	"canvas-click", "canvas-double-click", "canvas-zoom", "canvas-pan",
	"contextmenu", "keydown", "keyup", "delete",
	"connect-start", "connect-preview", "connect-end", "connect-cancel",
	"reconnect-start", "reconnect-preview", "reconnect-end", "reconnect-cancel",
	"edge-waypoint-insert", "edge-waypoint-remove",
	"edge-waypoint-drag", "edge-waypoint-drag-end", "edge-waypoint-drag-cancel",
	"edge-control-drag", "edge-control-drag-end", "edge-control-drag-cancel", "edge-control-clear",
	"guides-change",
}

// String returns the event's wire name, e.g. "connect-preview".
func (t EventType) String() string {
	if t < eventTypeCount {
		return eventNames[t]
	}
	return "unknown"
}

// Guides holds alignment guide coordinates for the renderer. Vertical guides
// are x positions, horizontal guides are y positions, both in world units.
type Guides struct {
	Vertical   []float64
	Horizontal []float64
}

// Event is the payload of every produced event. Only the fields relevant to
// Type are set.
type Event struct {
	Type EventType

	// Pointer fields.
	Point       Point // world space
	CanvasPoint Point // canvas space
	Button      MouseButton
	Modifiers   KeyModifiers
	Key         Key
	Original    any // source event, if the input source supplied one

	// Viewport fields (EventCanvasZoom, EventCanvasPan).
	Scale  float64
	Offset Point
	Delta  Point

	// EventDelete.
	SelectedItems []Item

	// Connection fields. HasTarget is false when no port is under the pointer.
	SourceID   string
	SourcePort string
	TargetID   string
	TargetPort string
	HasTarget  bool

	// Edge editing fields.
	EdgeID        string
	Endpoint      Endpoint
	Fixed         Point // the endpoint that stays put during a reconnect preview
	Index         int
	Start         Point
	End           Point
	Waypoints     []Point
	ControlPoints []Point

	// EventGuidesChange.
	Guides Guides
}

// EventSink receives every event after the registered listeners. Use it to
// bridge events into another system such as an ECS world.
type EventSink interface {
	EmitEvent(event Event)
}

// --- Handler registry ---

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	byType [eventTypeCount][]eventHandler
	any    []eventHandler
	nextID uint32
}

// CallbackHandle allows removing a registered listener.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
	all   bool
}

// Remove unregisters this listener so it no longer fires. Removing twice is
// a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	if h.all {
		h.reg.any = removeHandler(h.reg.any, h.id)
		return
	}
	if h.event < eventTypeCount {
		h.reg.byType[h.event] = removeHandler(h.reg.byType[h.event], h.id)
	}
}

func removeHandler(s []eventHandler, id uint32) []eventHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) add(t EventType, fn func(Event)) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.byType[t] = append(r.byType[t], eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, event: t}
}

func (r *handlerRegistry) addAny(fn func(Event)) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.any = append(r.any, eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, all: true}
}

func (r *handlerRegistry) clear() {
	for i := range r.byType {
		r.byType[i] = nil
	}
	r.any = nil
}

// On registers a listener for one event type.
func (d *Dispatcher) On(t EventType, fn func(Event)) CallbackHandle {
	if t >= eventTypeCount || fn == nil {
		return CallbackHandle{}
	}
	return d.handlers.add(t, fn)
}

// OnAny registers a listener that receives every event.
func (d *Dispatcher) OnAny(fn func(Event)) CallbackHandle {
	if fn == nil {
		return CallbackHandle{}
	}
	return d.handlers.addAny(fn)
}

// SetEventSink attaches an EventSink. Pass nil to detach.
func (d *Dispatcher) SetEventSink(sink EventSink) {
	d.sink = sink
}

// emit delivers ev to type listeners, then catch-all listeners, then the sink.
// The listener slices are cloned first so a listener may add or remove
// listeners, or emit, without disturbing the current delivery.
func (d *Dispatcher) emit(ev Event) {
	if d.destroyed {
		return
	}
	for _, h := range slices.Clone(d.handlers.byType[ev.Type]) {
		callListener(h.fn, ev)
	}
	for _, h := range slices.Clone(d.handlers.any) {
		callListener(h.fn, ev)
	}
	if d.sink != nil {
		callListener(d.sink.EmitEvent, ev)
	}
}

// callListener runs fn and logs, rather than propagates, a panic.
func callListener(fn func(Event), ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("flowcanvas: %s listener panicked: %v", ev.Type, r)
		}
	}()
	fn(ev)
}
