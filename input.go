package flowcanvas

// PointerKind is the phase of a normalised pointer event.
type PointerKind uint8

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

// PointerEvent is a mouse or single-touch event in canvas space. Every input
// source maps into this one type.
type PointerEvent struct {
	Kind      PointerKind
	X, Y      float64 // canvas space
	Button    MouseButton
	Modifiers KeyModifiers
	Original  any
}

// WheelEvent is a scroll-wheel event in canvas space. Positive DeltaY scrolls
// down (zoom out).
type WheelEvent struct {
	X, Y      float64
	DeltaY    float64
	Modifiers KeyModifiers
	Original  any
}

// KeyKind is the phase of a keyboard event.
type KeyKind uint8

const (
	KeyDown KeyKind = iota
	KeyUp
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Kind      KeyKind
	Key       Key
	Modifiers KeyModifiers
	Original  any
}

// TouchKind is the phase of a touch event.
type TouchKind uint8

const (
	TouchStart TouchKind = iota
	TouchMove
	TouchEnd
	TouchCancel
)

// TouchEvent reports the touch points after the change (Touches) and the
// points that changed (Changed), all in canvas space.
type TouchEvent struct {
	Kind      TouchKind
	Touches   []Point
	Changed   []Point
	Modifiers KeyModifiers
	Original  any
}

// Source is an input subscription owned by a Dispatcher. Detach releases
// every listener the source installed; it is called once, from Destroy.
type Source interface {
	Detach()
}
