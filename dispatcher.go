package flowcanvas

import "time"

// Default timing constants.
const (
	defaultDoubleClickWindow = 300 * time.Millisecond
	defaultMoveThrottle      = 16 * time.Millisecond
	defaultWheelDebounce     = 10 * time.Millisecond
	defaultDragDeadZone      = 4.0 // pixels
)

// Options configures a Dispatcher. Tolerances are in canvas pixels and are
// converted to world units through the current scale.
type Options struct {
	PortTolerance   float64 // connect and reconnect port search radius
	HandleTolerance float64 // endpoints, waypoints, control points, segments
	SnapTolerance   float64 // alignment-guide magnet distance
	Snap            SnapOptions

	MinScale float64
	MaxScale float64

	// DoubleClickWindow is the longest gap between two clicks that still
	// counts as a double-click.
	DoubleClickWindow time.Duration
	// DragDeadZone is how far, in canvas pixels, a press may travel and
	// still count as a click.
	DragDeadZone float64

	// MoveThrottle and WheelDebounce rate-limit input before it reaches the
	// state machine. Zero disables the limiter.
	MoveThrottle  time.Duration
	WheelDebounce time.Duration

	DisableKeyboard bool
	DisableTouch    bool

	// Debug traces gesture transitions to stderr.
	Debug bool

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options {
	return Options{
		PortTolerance:     defaultPortTolerance,
		HandleTolerance:   defaultHandleTolerance,
		SnapTolerance:     defaultSnapTolerance,
		Snap:              SnapOptions{Size: defaultSnapSize},
		MinScale:          DefaultMinScale,
		MaxScale:          DefaultMaxScale,
		DoubleClickWindow: defaultDoubleClickWindow,
		DragDeadZone:      defaultDragDeadZone,
		MoveThrottle:      defaultMoveThrottle,
		WheelDebounce:     defaultWheelDebounce,
	}
}

// pointerState tracks the primary pointer between press and release.
type pointerState struct {
	down   bool
	button MouseButton
	start  Point // canvas space
	moved  bool
}

// Dispatcher turns normalised input into editing intents. It is a passive,
// single-threaded reactor: the host calls the Handle* methods from its event
// loop and Update once per frame. At most one gesture is active at a time.
type Dispatcher struct {
	sel  Selection
	opts Options
	now  func() time.Time

	mode    Mode
	vp      Viewport
	focused bool

	ptr       pointerState
	lastClick time.Time
	clicked   bool

	drag     dragState
	pan      panState
	waypoint waypointDragState
	control  controlDragState
	endpoint endpointDragState
	connect  connectDragState

	moveLimit  Throttle[PointerEvent]
	wheelLimit Debounce[WheelEvent]

	anim *viewportAnim

	handlers handlerRegistry
	sink     EventSink
	sources  []Source

	injectQueue []PointerEvent
	script      *ScriptRunner

	destroyed bool
}

// NewDispatcher creates a dispatcher in ModeSelect with an identity viewport.
// A nil opts uses DefaultOptions. A nil sel is replaced by an empty selection
// with nothing selectable, so only panning and zooming do anything.
func NewDispatcher(sel Selection, opts *Options) *Dispatcher {
	if sel == nil {
		sel = emptySelection{}
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.MinScale <= 0 {
		o.MinScale = DefaultMinScale
	}
	if o.MaxScale < o.MinScale {
		o.MaxScale = DefaultMaxScale
	}
	if o.Snap.Size <= 0 {
		o.Snap.Size = defaultSnapSize
	}
	now := o.Clock
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{
		sel:        sel,
		opts:       o,
		now:        now,
		mode:       ModeSelect,
		vp:         DefaultViewport(),
		focused:    true,
		moveLimit:  Throttle[PointerEvent]{Interval: o.MoveThrottle},
		wheelLimit: Debounce[WheelEvent]{Delay: o.WheelDebounce},
	}
}

// SetMode switches the interaction mode, cancelling any gesture in flight.
func (d *Dispatcher) SetMode(m Mode) {
	d.mode = m
	d.Cancel()
	d.debugf("mode -> %s", m)
}

// Mode returns the current interaction mode.
func (d *Dispatcher) Mode() Mode {
	return d.mode
}

// Viewport returns a copy of the current viewport.
func (d *Dispatcher) Viewport() Viewport {
	return d.vp
}

// UpdateViewport replaces the viewport. Viewports with a non-positive scale
// are ignored.
func (d *Dispatcher) UpdateViewport(v Viewport) {
	if v.Scale <= 0 {
		return
	}
	d.stopAnimation()
	d.vp = v
}

// SetSnapOptions updates grid snapping. Enabled is always applied; Size only
// when it is positive.
func (d *Dispatcher) SetSnapOptions(o SnapOptions) {
	d.opts.Snap.Enabled = o.Enabled
	if o.Size > 0 {
		d.opts.Snap.Size = o.Size
	}
}

// SnapOptions returns the current grid snapping settings.
func (d *Dispatcher) SnapOptions() SnapOptions {
	return d.opts.Snap
}

// SetFocus tells the dispatcher whether the canvas has keyboard focus.
// Keyboard shortcuts only fire while focused. A pointer press focuses.
func (d *Dispatcher) SetFocus(focused bool) {
	d.focused = focused
}

// Focused reports whether the canvas has keyboard focus.
func (d *Dispatcher) Focused() bool {
	return d.focused
}

// Attach hands ownership of an input subscription to the dispatcher. It is
// detached by Destroy. Attaching to a destroyed dispatcher detaches at once.
func (d *Dispatcher) Attach(src Source) {
	if src == nil {
		return
	}
	if d.destroyed {
		src.Detach()
		return
	}
	d.sources = append(d.sources, src)
}

// Destroy detaches every input source, removes every listener and cancels
// any gesture. Further input is ignored. Safe to call more than once.
func (d *Dispatcher) Destroy() {
	if d.destroyed {
		return
	}
	for _, src := range d.sources {
		src.Detach()
	}
	d.sources = nil
	d.handlers.clear()
	d.sink = nil
	d.Cancel()
	d.moveLimit.Reset()
	d.wheelLimit.Reset()
	d.injectQueue = nil
	d.script = nil
	d.anim = nil
	d.ptr = pointerState{}
	d.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (d *Dispatcher) Destroyed() bool {
	return d.destroyed
}

// Update advances time-driven work: scripted and injected input, pending
// rate-limited input and viewport animations. Call it once per frame with
// the frame time in seconds.
func (d *Dispatcher) Update(dt float32) {
	if d.destroyed {
		return
	}
	if d.script != nil {
		d.script.step(d)
	}
	d.processInjectedInput()

	now := d.now()
	if ev, ok := d.moveLimit.Due(now); ok {
		d.deliverPointer(ev)
	}
	if ev, ok := d.wheelLimit.Due(now); ok {
		d.applyWheel(ev)
	}
	d.stepAnimation(dt)
}

// Gesture reports the gesture currently in flight.
func (d *Dispatcher) Gesture() Gesture {
	switch {
	case d.drag.active:
		return GestureNodeDrag
	case d.pan.active:
		return GesturePan
	case d.connect.active:
		return GestureConnect
	case d.endpoint.active:
		return GestureReconnect
	case d.waypoint.active:
		return GestureWaypointDrag
	case d.control.active:
		return GestureControlDrag
	case d.sel.SelectionBoxActive():
		return GestureSelectionBox
	}
	return GestureNone
}

// activeCount counts active gesture records, the selection box included.
func (d *Dispatcher) activeCount() int {
	n := 0
	for _, a := range []bool{d.drag.active, d.pan.active, d.connect.active,
		d.endpoint.active, d.waypoint.active, d.control.active} {
		if a {
			n++
		}
	}
	if d.sel.SelectionBoxActive() {
		n++
	}
	return n
}

// toWorld converts a canvas point through the current viewport.
func (d *Dispatcher) toWorld(p Point) Point {
	return CanvasToWorld(p, d.vp)
}

// worldTol converts a canvas-pixel tolerance to world units.
func (d *Dispatcher) worldTol(px float64) float64 {
	return px / d.vp.Scale
}

// gridSize returns the active grid pitch, or 0 when snapping is off.
func (d *Dispatcher) gridSize() float64 {
	if d.opts.Snap.Enabled && d.opts.Snap.Size > 0 {
		return d.opts.Snap.Size
	}
	return 0
}
