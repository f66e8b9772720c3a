package flowcanvas

// InjectPress queues a left-button press at the given canvas coordinates.
// The event is consumed by the next Update call.
func (d *Dispatcher) InjectPress(x, y float64) {
	d.inject(PointerEvent{Kind: PointerDown, X: x, Y: y, Button: MouseButtonLeft})
}

// InjectMove queues a pointer move at the given canvas coordinates. Use it
// between InjectPress and InjectRelease to simulate a drag.
func (d *Dispatcher) InjectMove(x, y float64) {
	d.inject(PointerEvent{Kind: PointerMove, X: x, Y: y, Button: MouseButtonLeft})
}

// InjectRelease queues a left-button release at the given canvas coordinates.
func (d *Dispatcher) InjectRelease(x, y float64) {
	d.inject(PointerEvent{Kind: PointerUp, X: x, Y: y, Button: MouseButtonLeft})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (d *Dispatcher) InjectClick(x, y float64) {
	d.InjectPress(x, y)
	d.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves, and a release at (toX, toY). The sequence consumes
// frames frames; the minimum is 2.
func (d *Dispatcher) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	d.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		d.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	d.InjectRelease(toX, toY)
}

// InjectPointer queues an arbitrary pointer event, for example with
// modifiers or a different button.
func (d *Dispatcher) InjectPointer(ev PointerEvent) {
	d.inject(ev)
}

func (d *Dispatcher) inject(ev PointerEvent) {
	if d.destroyed {
		return
	}
	d.injectQueue = append(d.injectQueue, ev)
}

// processInjectedInput pops one queued event and feeds it to the state
// machine. Injected moves are already paced one per frame, so they skip the
// move throttle. Returns true if an event was consumed.
func (d *Dispatcher) processInjectedInput() bool {
	if len(d.injectQueue) == 0 {
		return false
	}
	ev := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]

	if pending, ok := d.moveLimit.Drain(); ok {
		d.deliverPointer(pending)
	}
	d.deliverPointer(ev)
	return true
}

// deliverPointer routes an event straight to the state machine.
func (d *Dispatcher) deliverPointer(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown:
		d.pointerDown(ev)
	case PointerMove:
		d.pointerMove(ev)
	case PointerUp:
		d.pointerUp(ev)
	}
	d.debugCheckExclusive("pointer event")
}
