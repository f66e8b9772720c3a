package flowcanvas

import (
	"testing"
	"time"
)

func TestThrottleLeadingAndTrailing(t *testing.T) {
	clk := newFakeClock()
	th := Throttle[int]{Interval: 16 * time.Millisecond}

	if v, ok := th.Offer(1, clk.now()); !ok || v != 1 {
		t.Fatalf("first Offer = %d,%v, want 1,true", v, ok)
	}
	clk.advance(5 * time.Millisecond)
	if _, ok := th.Offer(2, clk.now()); ok {
		t.Error("second Offer inside interval should be held")
	}
	clk.advance(5 * time.Millisecond)
	if _, ok := th.Offer(3, clk.now()); ok {
		t.Error("third Offer inside interval should be held")
	}
	if _, ok := th.Due(clk.now()); ok {
		t.Error("Due before interval elapsed")
	}

	clk.advance(6 * time.Millisecond)
	v, ok := th.Due(clk.now())
	if !ok || v != 3 {
		t.Fatalf("Due = %d,%v, want latest value 3,true", v, ok)
	}
	if _, ok := th.Due(clk.now()); ok {
		t.Error("Due delivered the same value twice")
	}
}

func TestThrottleAfterQuietPeriod(t *testing.T) {
	clk := newFakeClock()
	th := Throttle[int]{Interval: 16 * time.Millisecond}
	th.Offer(1, clk.now())
	clk.advance(40 * time.Millisecond)
	if v, ok := th.Offer(2, clk.now()); !ok || v != 2 {
		t.Errorf("Offer after quiet period = %d,%v, want 2,true", v, ok)
	}
}

func TestThrottleDrain(t *testing.T) {
	clk := newFakeClock()
	th := Throttle[string]{Interval: time.Second}
	th.Offer("a", clk.now())
	th.Offer("b", clk.now())

	v, ok := th.Drain()
	if !ok || v != "b" {
		t.Fatalf("Drain = %q,%v, want b,true", v, ok)
	}
	if _, ok := th.Drain(); ok {
		t.Error("second Drain should be empty")
	}
}

func TestThrottleDisabled(t *testing.T) {
	clk := newFakeClock()
	th := Throttle[int]{}
	for i := range 5 {
		if v, ok := th.Offer(i, clk.now()); !ok || v != i {
			t.Errorf("Offer(%d) = %d,%v, want pass-through", i, v, ok)
		}
	}
}

func TestThrottleReset(t *testing.T) {
	clk := newFakeClock()
	th := Throttle[int]{Interval: time.Second}
	th.Offer(1, clk.now())
	th.Offer(2, clk.now())
	th.Reset()
	if _, ok := th.Drain(); ok {
		t.Error("Reset should drop the pending value")
	}
	if _, ok := th.Offer(3, clk.now()); !ok {
		t.Error("Offer after Reset should pass immediately")
	}
}

func TestDebounce(t *testing.T) {
	clk := newFakeClock()
	db := Debounce[int]{Delay: 10 * time.Millisecond}

	for i := 1; i <= 3; i++ {
		if _, ok := db.Offer(i, clk.now()); ok {
			t.Fatalf("Offer(%d) delivered immediately", i)
		}
		clk.advance(4 * time.Millisecond)
	}
	// 4ms since the last value.
	if _, ok := db.Due(clk.now()); ok {
		t.Error("Due before the quiet period elapsed")
	}
	clk.advance(6 * time.Millisecond)
	v, ok := db.Due(clk.now())
	if !ok || v != 3 {
		t.Fatalf("Due = %d,%v, want 3,true", v, ok)
	}
	if _, ok := db.Due(clk.now()); ok {
		t.Error("Due delivered twice")
	}
}

func TestDebounceDisabled(t *testing.T) {
	db := Debounce[int]{}
	if v, ok := db.Offer(7, time.Time{}); !ok || v != 7 {
		t.Errorf("Offer = %d,%v, want 7,true", v, ok)
	}
}
