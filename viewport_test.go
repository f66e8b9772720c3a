package flowcanvas

import (
	"fmt"
	"testing"
)

func TestViewportDefaults(t *testing.T) {
	v := DefaultViewport()
	if v.Scale != 1 {
		t.Errorf("Scale = %f, want 1", v.Scale)
	}
	if v.Offset != (Point{}) {
		t.Errorf("Offset = %v, want origin", v.Offset)
	}
}

func TestCanvasToWorldIdentity(t *testing.T) {
	// Scale 1 and no offset: a click at (100,50) is world (100,50).
	got := CanvasToWorld(Point{100, 50}, DefaultViewport())
	if !approxPoint(got, Point{100, 50}) {
		t.Errorf("CanvasToWorld = %v, want (100,50)", got)
	}
}

func TestCanvasToWorldScaled(t *testing.T) {
	v := Viewport{Scale: 2, Offset: Point{10, -5}}
	got := v.CanvasToWorld(Point{40, 20})
	want := Point{40/2 - 10, 20/2 + 5}
	if !approxPoint(got, want) {
		t.Errorf("CanvasToWorld = %v, want %v", got, want)
	}
	back := v.WorldToCanvas(got)
	if !approxPoint(back, Point{40, 20}) {
		t.Errorf("WorldToCanvas(CanvasToWorld(p)) = %v, want (40,20)", back)
	}
}

func TestTransformInverse(t *testing.T) {
	viewports := []Viewport{
		{Scale: 1},
		{Scale: 0.1, Offset: Point{-300, 420}},
		{Scale: 10, Offset: Point{12.5, -7.25}},
		{Scale: 2.2, Offset: Point{7.7272, 7.7272}},
		{Scale: 0.333, Offset: Point{1e4, -1e4}},
	}
	points := []Point{{0, 0}, {100, 50}, {-250.5, 33.3}, {1920, 1080}, {0.001, -0.001}}
	for _, v := range viewports {
		for _, p := range points {
			t.Run(fmt.Sprintf("s%.3f/%v", v.Scale, p), func(t *testing.T) {
				got := WorldToCanvas(CanvasToWorld(p, v), v)
				if !approxPoint(got, p) {
					t.Errorf("round trip = %v, want %v", got, p)
				}
			})
		}
	}
}

func TestPanFrom(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		delta Point
		want  Point
	}{
		{"unit scale", 1, Point{30, -20}, Point{40, -10}},
		{"zoomed in", 2, Point{30, -20}, Point{25, 0}},
		{"zoomed out", 0.5, Point{30, -20}, Point{70, -30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Viewport{Scale: tt.scale}
			v.PanFrom(Point{10, 10}, tt.delta)
			if !approxPoint(v.Offset, tt.want) {
				t.Errorf("Offset = %v, want %v", v.Offset, tt.want)
			}
		})
	}
}

func TestPanFollowsPointer(t *testing.T) {
	// The world point under the pointer at the start of a pan stays under
	// the pointer for the whole drag.
	v := Viewport{Scale: 1.7, Offset: Point{-40, 12}}
	start := Point{200, 150}
	anchor := v.CanvasToWorld(start)
	startOffset := v.Offset

	cur := Point{260, 95}
	v.PanFrom(startOffset, cur.Sub(start))
	if got := v.WorldToCanvas(anchor); !approxPoint(got, cur) {
		t.Errorf("anchor maps to %v, want %v", got, cur)
	}
}

func TestZoomAtScenario(t *testing.T) {
	v := Viewport{Scale: 2, Offset: Point{10, 10}}
	anchor := Point{50, 50}
	before := v.CanvasToWorld(anchor)

	got := v.ZoomAt(anchor, v.Scale*wheelZoomIn, DefaultMinScale, DefaultMaxScale)
	if !approxEqual(got, 2.2, epsilon) || !approxEqual(v.Scale, 2.2, epsilon) {
		t.Fatalf("scale = %f, want 2.2", v.Scale)
	}
	if back := v.WorldToCanvas(before); !approxPoint(back, anchor) {
		t.Errorf("world point %v maps to %v after zoom, want %v", before, back, anchor)
	}
}

func TestZoomAnchoring(t *testing.T) {
	scales := []float64{0.1, 0.15, 0.5, 1, 3.3, 9.5, 10}
	anchors := []Point{{0, 0}, {50, 50}, {799, 1}, {-20, 400}}
	for _, s := range scales {
		for _, a := range anchors {
			for _, factor := range []float64{wheelZoomIn, wheelZoomOut} {
				t.Run(fmt.Sprintf("s%.2f/%v/x%.1f", s, a, factor), func(t *testing.T) {
					v := Viewport{Scale: s, Offset: Point{13, -8}}
					before := v.CanvasToWorld(a)
					v.ZoomAt(a, s*factor, DefaultMinScale, DefaultMaxScale)
					after := v.CanvasToWorld(a)
					if !approxPoint(before, after) {
						t.Errorf("world under anchor moved: %v -> %v", before, after)
					}
				})
			}
		}
	}
}

func TestZoomAtClamps(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		req   float64
		want  float64
	}{
		{"above max", 9.5, 9.5 * wheelZoomIn, DefaultMaxScale},
		{"below min", 0.105, 0.105 * wheelZoomOut, DefaultMinScale},
		{"at max stays", DefaultMaxScale, DefaultMaxScale * wheelZoomIn, DefaultMaxScale},
		{"inside range", 1, 1.1, 1.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Viewport{Scale: tt.start}
			got := v.ZoomAt(Point{100, 100}, tt.req, DefaultMinScale, DefaultMaxScale)
			if !approxEqual(got, tt.want, epsilon) {
				t.Errorf("ZoomAt = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestVisibleBounds(t *testing.T) {
	v := Viewport{Scale: 2, Offset: Point{-100, -50}}
	r := v.VisibleBounds(Size{800, 600})
	if !approxEqual(r.X, 100, epsilon) || !approxEqual(r.Y, 50, epsilon) {
		t.Errorf("origin = (%f,%f), want (100,50)", r.X, r.Y)
	}
	if !approxEqual(r.Width, 400, epsilon) || !approxEqual(r.Height, 300, epsilon) {
		t.Errorf("size = %fx%f, want 400x300", r.Width, r.Height)
	}
}

func TestCenteredOn(t *testing.T) {
	canvas := Size{800, 600}
	for _, s := range []float64{0.5, 1, 2.5} {
		off := centeredOn(Point{250, -40}, canvas, s)
		v := Viewport{Scale: s, Offset: off}
		if got := v.WorldToCanvas(Point{250, -40}); !approxPoint(got, Point{400, 300}) {
			t.Errorf("scale %f: centre maps to %v, want (400,300)", s, got)
		}
	}
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		name   string
		bounds Rect
		want   float64
		ok     bool
	}{
		{"wide content", Rect{0, 0, 1400, 100}, 0.5, true},
		{"tall content", Rect{0, 0, 100, 250}, 2, true},
		{"tiny content clamps", Rect{0, 0, 1, 1}, DefaultMaxScale, true},
		{"empty", Rect{0, 0, 0, 100}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fitScale(tt.bounds, Size{800, 600}, 50, DefaultMinScale, DefaultMaxScale)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && !approxEqual(got, tt.want, epsilon) {
				t.Errorf("scale = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestOffsetMapper(t *testing.T) {
	m := OffsetMapper(20, 30)
	if got := m(120, 80); got != (Point{100, 50}) {
		t.Errorf("mapper = %v, want (100,50)", got)
	}
}
