package flowcanvas

import (
	"encoding/json"
	"fmt"
	"strings"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string   `json:"action"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	FromX  float64  `json:"fromX,omitempty"`
	FromY  float64  `json:"fromY,omitempty"`
	ToX    float64  `json:"toX,omitempty"`
	ToY    float64  `json:"toY,omitempty"`
	Frames int      `json:"frames,omitempty"`
	DeltaY float64  `json:"deltaY,omitempty"`
	Key    string   `json:"key,omitempty"`
	Up     bool     `json:"up,omitempty"`
	Mods   []string `json:"mods,omitempty"`
	Mode   string   `json:"mode,omitempty"`
	Button string   `json:"button,omitempty"`
}

// script is the top-level JSON structure of an input script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a recorded sequence of input across frames. Attach
// it with SetScriptRunner; Update advances it once per frame.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script, for example:
//
//	{"steps": [
//	  {"action": "press", "x": 10, "y": 10, "mods": ["alt"]},
//	  {"action": "drag", "fromX": 0, "fromY": 0, "toX": 50, "toY": 0, "frames": 5},
//	  {"action": "key", "key": "Escape"},
//	  {"action": "wait", "frames": 2}
//	]}
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		if err := validateStep(st); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

func validateStep(st scriptStep) error {
	switch st.Action {
	case "press", "move", "release", "click", "drag", "wheel", "wait":
	case "key":
		if st.Key == "" {
			return fmt.Errorf("key action without key")
		}
	case "mode":
		if _, ok := parseMode(st.Mode); !ok {
			return fmt.Errorf("unknown mode %q", st.Mode)
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	if _, ok := parseMods(st.Mods); !ok {
		return fmt.Errorf("unknown modifier in %v", st.Mods)
	}
	if _, ok := parseButton(st.Button); !ok {
		return fmt.Errorf("unknown button %q", st.Button)
	}
	return nil
}

func parseMode(name string) (Mode, bool) {
	for i, n := range modeNames {
		if strings.EqualFold(n, name) {
			return Mode(i), true
		}
	}
	return ModeSelect, false
}

func parseMods(names []string) (KeyModifiers, bool) {
	var m KeyModifiers
	for _, n := range names {
		switch strings.ToLower(n) {
		case "shift":
			m |= ModShift
		case "ctrl", "control":
			m |= ModCtrl
		case "alt", "option":
			m |= ModAlt
		case "meta", "cmd", "command":
			m |= ModMeta
		default:
			return 0, false
		}
	}
	return m, true
}

func parseButton(name string) (MouseButton, bool) {
	switch strings.ToLower(name) {
	case "", "left":
		return MouseButtonLeft, true
	case "right":
		return MouseButtonRight, true
	case "middle":
		return MouseButtonMiddle, true
	}
	return MouseButtonLeft, false
}

// SetScriptRunner attaches a runner. It is stepped from Update before
// injected input is processed. Pass nil to detach.
func (d *Dispatcher) SetScriptRunner(r *ScriptRunner) {
	if d.destroyed {
		return
	}
	d.script = r
}

// Done reports whether every step has been executed and its input consumed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(d *Dispatcher) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(d.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	mods, _ := parseMods(st.Mods)
	button, _ := parseButton(st.Button)
	pointer := func(kind PointerKind, x, y float64) {
		d.InjectPointer(PointerEvent{Kind: kind, X: x, Y: y, Button: button, Modifiers: mods})
	}

	switch st.Action {
	case "press":
		pointer(PointerDown, st.X, st.Y)
	case "move":
		pointer(PointerMove, st.X, st.Y)
	case "release":
		pointer(PointerUp, st.X, st.Y)
	case "click":
		pointer(PointerDown, st.X, st.Y)
		pointer(PointerUp, st.X, st.Y)
	case "drag":
		frames := max(st.Frames, 2)
		pointer(PointerDown, st.FromX, st.FromY)
		steps := frames - 2
		for i := 1; i <= steps; i++ {
			t := float64(i) / float64(steps+1)
			pointer(PointerMove, st.FromX+(st.ToX-st.FromX)*t, st.FromY+(st.ToY-st.FromY)*t)
		}
		pointer(PointerUp, st.ToX, st.ToY)
	case "wheel":
		if st.DeltaY == 0 {
			break
		}
		d.applyWheel(WheelEvent{X: st.X, Y: st.Y, DeltaY: st.DeltaY, Modifiers: mods})
	case "key":
		kind := KeyDown
		if st.Up {
			kind = KeyUp
		}
		d.HandleKey(KeyEvent{Kind: kind, Key: Key(st.Key), Modifiers: mods})
	case "mode":
		m, _ := parseMode(st.Mode)
		d.SetMode(m)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(d.injectQueue) == 0 {
		r.done = true
	}
}
