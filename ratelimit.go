package flowcanvas

import "time"

// Throttle passes at most one value per Interval. A value offered too soon is
// held as pending (latest wins) and released by Due once the interval has
// elapsed. It holds no timers; callers supply the clock.
type Throttle[T any] struct {
	Interval time.Duration

	last       time.Time
	primed     bool
	pending    T
	hasPending bool
}

// Offer returns v with ok=true when it may be delivered now. Otherwise v
// replaces any pending value and ok is false.
func (t *Throttle[T]) Offer(v T, now time.Time) (T, bool) {
	if t.Interval <= 0 || !t.primed || now.Sub(t.last) >= t.Interval {
		t.last = now
		t.primed = true
		t.clearPending()
		return v, true
	}
	t.pending = v
	t.hasPending = true
	var zero T
	return zero, false
}

// Due releases the pending value once the interval since the last delivery
// has elapsed.
func (t *Throttle[T]) Due(now time.Time) (T, bool) {
	if !t.hasPending || now.Sub(t.last) < t.Interval {
		var zero T
		return zero, false
	}
	v := t.pending
	t.last = now
	t.clearPending()
	return v, true
}

// Drain releases the pending value immediately, regardless of the interval.
func (t *Throttle[T]) Drain() (T, bool) {
	if !t.hasPending {
		var zero T
		return zero, false
	}
	v := t.pending
	t.clearPending()
	return v, true
}

// Reset drops any pending value and forgets the last delivery time.
func (t *Throttle[T]) Reset() {
	t.primed = false
	t.clearPending()
}

func (t *Throttle[T]) clearPending() {
	var zero T
	t.pending = zero
	t.hasPending = false
}

// Debounce delivers only the last value of a burst, once Delay has passed
// without a new value. A Delay <= 0 delivers every value immediately.
type Debounce[T any] struct {
	Delay time.Duration

	deadline   time.Time
	pending    T
	hasPending bool
}

// Offer records v as the latest value of the burst. With a positive Delay it
// is never delivered directly; ok is true only when Delay <= 0.
func (d *Debounce[T]) Offer(v T, now time.Time) (T, bool) {
	if d.Delay <= 0 {
		return v, true
	}
	d.pending = v
	d.hasPending = true
	d.deadline = now.Add(d.Delay)
	var zero T
	return zero, false
}

// Due releases the pending value once the quiet period has elapsed.
func (d *Debounce[T]) Due(now time.Time) (T, bool) {
	if !d.hasPending || now.Before(d.deadline) {
		var zero T
		return zero, false
	}
	v := d.pending
	d.Reset()
	return v, true
}

// Reset drops any pending value.
func (d *Debounce[T]) Reset() {
	var zero T
	d.pending = zero
	d.hasPending = false
}
