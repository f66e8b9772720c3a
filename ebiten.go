package flowcanvas

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenInput polls Ebitengine input once per frame and feeds it to a
// Dispatcher. Create it with NewEbitenInput and call Poll at the start of
// the game's Update, before Dispatcher.Update.
type EbitenInput struct {
	d *Dispatcher

	// Bounds is the canvas rectangle in screen pixels. Presses, wheel and
	// hover outside it are ignored; moves and releases are still forwarded
	// while a button is held so drags can leave the canvas. A zero Bounds
	// covers the whole screen.
	Bounds Rect
	// Mapper converts screen positions to canvas space. Defaults to
	// subtracting the Bounds origin.
	Mapper CanvasMapper

	down        bool
	button      MouseButton
	last        Point
	windowFocus bool
	focusPrimed bool
	touchPos    map[ebiten.TouchID]Point
	touchIDs    []ebiten.TouchID
	keys        []ebiten.Key
	detached    bool
}

// NewEbitenInput creates an input source for the canvas at bounds and
// attaches it to d, which detaches it on Destroy.
func NewEbitenInput(d *Dispatcher, bounds Rect) *EbitenInput {
	in := &EbitenInput{
		d:        d,
		Bounds:   bounds,
		Mapper:   OffsetMapper(bounds.X, bounds.Y),
		touchPos: make(map[ebiten.TouchID]Point),
	}
	d.Attach(in)
	return in
}

// Detach stops polling. Further Poll calls do nothing.
func (in *EbitenInput) Detach() {
	in.detached = true
	in.down = false
	clear(in.touchPos)
}

// Poll reads this frame's input and forwards it.
func (in *EbitenInput) Poll() {
	if in.detached || in.d.Destroyed() {
		return
	}
	if f := ebiten.IsFocused(); !in.focusPrimed || f != in.windowFocus {
		in.focusPrimed = true
		in.windowFocus = f
		in.d.SetFocus(f)
	}
	mods := readModifiers()
	in.pollMouse(mods)
	in.pollWheel(mods)
	in.pollKeys(mods)
	in.pollTouches(mods)
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

func (in *EbitenInput) inside(sx, sy float64) bool {
	if in.Bounds.Width <= 0 || in.Bounds.Height <= 0 {
		return true
	}
	return in.Bounds.Contains(sx, sy)
}

func (in *EbitenInput) toCanvas(sx, sy float64) Point {
	if in.Mapper == nil {
		return Point{X: sx, Y: sy}
	}
	return in.Mapper(sx, sy)
}

var ebitenButtons = [...]struct {
	eb ebiten.MouseButton
	b  MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
	{ebiten.MouseButtonRight, MouseButtonRight},
}

func toEbitenButton(b MouseButton) ebiten.MouseButton {
	for _, m := range ebitenButtons {
		if m.b == b {
			return m.eb
		}
	}
	return ebiten.MouseButtonLeft
}

func (in *EbitenInput) pollMouse(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)
	p := in.toCanvas(sx, sy)
	inside := in.inside(sx, sy)

	if p != in.last && (inside || in.down) {
		in.d.HandlePointer(PointerEvent{Kind: PointerMove, X: p.X, Y: p.Y, Button: in.button, Modifiers: mods})
	}
	in.last = p

	if in.down && inpututil.IsMouseButtonJustReleased(toEbitenButton(in.button)) {
		in.down = false
		in.d.HandlePointer(PointerEvent{Kind: PointerUp, X: p.X, Y: p.Y, Button: in.button, Modifiers: mods})
	}
	if in.down || !inside {
		return
	}
	for _, m := range ebitenButtons {
		if !inpututil.IsMouseButtonJustPressed(m.eb) {
			continue
		}
		in.d.HandlePointer(PointerEvent{Kind: PointerDown, X: p.X, Y: p.Y, Button: m.b, Modifiers: mods})
		if m.b == MouseButtonRight {
			in.d.HandleContextMenu(p.X, p.Y, nil)
			continue
		}
		in.down = true
		in.button = m.b
		return
	}
}

func (in *EbitenInput) pollWheel(mods KeyModifiers) {
	_, wy := ebiten.Wheel()
	if wy == 0 {
		return
	}
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)
	if !in.inside(sx, sy) {
		return
	}
	p := in.toCanvas(sx, sy)
	// Ebitengine reports scrolling up as positive; DeltaY is positive down.
	in.d.HandleWheel(WheelEvent{X: p.X, Y: p.Y, DeltaY: -wy, Modifiers: mods})
}

func (in *EbitenInput) pollKeys(mods KeyModifiers) {
	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		in.d.HandleKey(KeyEvent{Kind: KeyDown, Key: keyName(k), Modifiers: mods})
	}
	in.keys = inpututil.AppendJustReleasedKeys(in.keys[:0])
	for _, k := range in.keys {
		in.d.HandleKey(KeyEvent{Kind: KeyUp, Key: keyName(k), Modifiers: mods})
	}
}

// pollTouches reports touch changes as TouchEvents. The dispatcher ignores
// them unless exactly one finger is involved.
func (in *EbitenInput) pollTouches(mods KeyModifiers) {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	touches := make([]Point, 0, len(in.touchIDs))
	moved := false
	for _, id := range in.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		p := in.toCanvas(float64(tx), float64(ty))
		if prev, ok := in.touchPos[id]; ok && prev != p {
			moved = true
		}
		in.touchPos[id] = p
		touches = append(touches, p)
	}

	var changed []Point
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		if p, ok := in.touchPos[id]; ok {
			changed = append(changed, p)
			delete(in.touchPos, id)
		}
	}
	if len(changed) > 0 {
		in.d.HandleTouch(TouchEvent{Kind: TouchEnd, Touches: touches, Changed: changed, Modifiers: mods})
	}

	var started []Point
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		if !in.inside(float64(tx), float64(ty)) {
			continue
		}
		started = append(started, in.touchPos[id])
	}
	switch {
	case len(started) > 0:
		in.d.HandleTouch(TouchEvent{Kind: TouchStart, Touches: touches, Changed: started, Modifiers: mods})
	case moved:
		in.d.HandleTouch(TouchEvent{Kind: TouchMove, Touches: touches, Changed: touches, Modifiers: mods})
	}
}

// keyName maps an Ebitengine key to the Key naming used by KeyEvent:
// lower-case characters for letters and digits, the W3C key names for
// everything else, sides folded for modifiers.
func keyName(k ebiten.Key) Key {
	switch k {
	case ebiten.KeySpace:
		return KeySpace
	case ebiten.KeyShiftLeft, ebiten.KeyShiftRight, ebiten.KeyShift:
		return KeyShift
	case ebiten.KeyControlLeft, ebiten.KeyControlRight, ebiten.KeyControl:
		return KeyControl
	case ebiten.KeyAltLeft, ebiten.KeyAltRight, ebiten.KeyAlt:
		return KeyAlt
	case ebiten.KeyMetaLeft, ebiten.KeyMetaRight, ebiten.KeyMeta:
		return KeyMeta
	}
	s := k.String()
	if len(s) == 1 {
		return Key(strings.ToLower(s))
	}
	if d, ok := strings.CutPrefix(s, "Digit"); ok && len(d) == 1 {
		return Key(d)
	}
	return Key(s)
}
