package flowcanvas

import (
	"fmt"
	"os"
)

// debugf prints a gesture trace line to stderr. Only active when
// Options.Debug is set.
func (d *Dispatcher) debugf(format string, args ...any) {
	if !d.opts.Debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[flowcanvas] "+format+"\n", args...)
}

// SetDebugMode enables or disables gesture tracing and the internal
// consistency checks.
func (d *Dispatcher) SetDebugMode(enabled bool) {
	d.opts.Debug = enabled
}

// debugCheckExclusive panics when more than one gesture record is active.
// Handlers call it on exit in debug mode; release builds skip it.
func (d *Dispatcher) debugCheckExclusive(op string) {
	if !d.opts.Debug {
		return
	}
	if n := d.activeCount(); n > 1 {
		panic(fmt.Sprintf("flowcanvas debug: %d gestures active after %s", n, op))
	}
}
