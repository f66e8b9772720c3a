package flowcanvas

import "testing"

func TestSnapToGrid(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		grid float64
		want Point
	}{
		{"round up", Point{15, 15}, 10, Point{20, 20}},
		{"round down", Point{14.9, 4}, 10, Point{10, 0}},
		{"negative", Point{-14, -16}, 10, Point{-10, -20}},
		{"disabled", Point{13.3, 7.7}, 0, Point{13.3, 7.7}},
		{"odd pitch", Point{37, 8}, 25, Point{25, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SnapToGrid(tt.p, tt.grid); !approxPoint(got, tt.want) {
				t.Errorf("SnapToGrid(%v, %v) = %v, want %v", tt.p, tt.grid, got, tt.want)
			}
		})
	}
}

func TestSnapToGridIdempotent(t *testing.T) {
	points := []Point{{15, 15}, {-3.7, 99.2}, {1234.5, -0.5}, {0, 0}}
	for _, g := range []float64{1, 7, 10, 32.5} {
		for _, p := range points {
			once := SnapToGrid(p, g)
			twice := SnapToGrid(once, g)
			if !approxPoint(once, twice) {
				t.Errorf("grid %v: snap(snap(%v)) = %v, want %v", g, p, twice, once)
			}
			res := Snap(once, Size{100, 60}, nil, g, 8)
			if !approxPoint(res.Position, once) {
				t.Errorf("grid %v: Snap of snapped %v moved to %v", g, once, res.Position)
			}
		}
	}
}

func TestSnapGridOnly(t *testing.T) {
	res := Snap(Point{15, 15}, Size{100, 60}, nil, 10, 8)
	if !approxPoint(res.Position, Point{20, 20}) {
		t.Errorf("Position = %v, want (20,20)", res.Position)
	}
	if len(res.Guides.Vertical) != 0 || len(res.Guides.Horizontal) != 0 {
		t.Errorf("Guides = %+v, want none", res.Guides)
	}
}

func TestSnapAlignment(t *testing.T) {
	other := Rect{X: 200, Y: 100, Width: 100, Height: 60}

	tests := []struct {
		name    string
		desired Point
		wantPos Point
		wantV   []float64
		wantH   []float64
	}{
		{
			name:    "left edges align",
			desired: Point{205, 400},
			wantPos: Point{200, 400},
			wantV:   []float64{200},
		},
		{
			name:    "equal deltas keep first line",
			desired: Point{197, 400},
			wantPos: Point{200, 400},
			wantV:   []float64{200},
		},
		{
			name:    "right edge to left edge",
			desired: Point{104, 400},
			wantPos: Point{100, 400},
			wantV:   []float64{200},
		},
		{
			name:    "top and bottom",
			desired: Point{600, 164},
			wantPos: Point{600, 160},
			wantH:   []float64{160},
		},
		{
			name:    "both axes",
			desired: Point{203, 97},
			wantPos: Point{200, 100},
			wantV:   []float64{200},
			wantH:   []float64{100},
		},
		{
			name:    "out of tolerance",
			desired: Point{500, 500},
			wantPos: Point{500, 500},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Snap(tt.desired, Size{100, 60}, []Rect{other}, 0, 8)
			if !approxPoint(res.Position, tt.wantPos) {
				t.Errorf("Position = %v, want %v", res.Position, tt.wantPos)
			}
			if !floatsEqual(res.Guides.Vertical, tt.wantV) {
				t.Errorf("Vertical = %v, want %v", res.Guides.Vertical, tt.wantV)
			}
			if !floatsEqual(res.Guides.Horizontal, tt.wantH) {
				t.Errorf("Horizontal = %v, want %v", res.Guides.Horizontal, tt.wantH)
			}
		})
	}
}

func TestSnapTieKeepsFirstNode(t *testing.T) {
	// Dragged left edge at 100; one node's left edge is 4 to the left, the
	// other's is 4 to the right.
	first := Rect{X: 96, Y: 1000, Width: 100, Height: 60}
	second := Rect{X: 104, Y: 2000, Width: 100, Height: 60}
	res := Snap(Point{100, 0}, Size{100, 60}, []Rect{first, second}, 0, 8)
	if !approxEqual(res.Position.X, 96, epsilon) {
		t.Errorf("X = %f, want 96 (first node)", res.Position.X)
	}

	res = Snap(Point{100, 0}, Size{100, 60}, []Rect{second, first}, 0, 8)
	if !approxEqual(res.Position.X, 104, epsilon) {
		t.Errorf("X = %f, want 104 (first node)", res.Position.X)
	}
}

func TestSnapGridThenAlignment(t *testing.T) {
	// Grid moves 23 -> 20, then alignment pulls the left edge to 22.
	other := Rect{X: 22, Y: 500, Width: 40, Height: 40}
	res := Snap(Point{23, 0}, Size{100, 60}, []Rect{other}, 10, 8)
	if !approxEqual(res.Position.X, 22, epsilon) {
		t.Errorf("X = %f, want 22", res.Position.X)
	}
}

func TestSnapZeroSizeDefaults(t *testing.T) {
	// A zero-size node is treated as 100x60: its right edge at 100+desired.
	other := Rect{X: 305, Y: 900, Width: 10, Height: 10}
	res := Snap(Point{203, 0}, Size{}, []Rect{other}, 0, 8)
	if !approxEqual(res.Position.X, 205, epsilon) {
		t.Errorf("X = %f, want 205", res.Position.X)
	}
}

func TestAxisLock(t *testing.T) {
	start := Point{100, 100}
	tests := []struct {
		name string
		p    Point
		want Point
	}{
		{"mostly horizontal", Point{150, 110}, Point{150, 100}},
		{"mostly vertical", Point{95, 40}, Point{100, 40}},
		{"diagonal keeps vertical", Point{120, 120}, Point{100, 120}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := axisLock(tt.p, start); got != tt.want {
				t.Errorf("axisLock(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !approxEqual(a[i], b[i], 1e-6) {
			return false
		}
	}
	return true
}
