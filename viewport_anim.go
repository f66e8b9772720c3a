package flowcanvas

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Viewport command defaults.
const (
	zoomStep            = 0.1
	defaultFitPadding   = 50.0
	defaultAnimDuration = 0.3 // seconds
)

// Animation describes how a viewport command is eased over time. A nil
// *Animation applies the command at once.
type Animation struct {
	Duration float32 // seconds; <= 0 uses 0.3
	Ease     ease.TweenFunc
}

// DefaultAnimation eases out over 0.3 seconds.
func DefaultAnimation() *Animation {
	return &Animation{Duration: defaultAnimDuration, Ease: ease.OutCubic}
}

// viewportAnim tweens a progress value from 0 to 1 and interpolates between
// two viewports. With an anchor the interpolated scale is applied through
// ZoomAt so the anchor stays put for the whole animation.
type viewportAnim struct {
	progress  *gween.Tween
	from, to  Viewport
	anchor    Point
	hasAnchor bool
}

func (d *Dispatcher) stopAnimation() {
	d.anim = nil
}

// Animating reports whether a viewport animation is running.
func (d *Dispatcher) Animating() bool {
	return d.anim != nil
}

func (d *Dispatcher) stepAnimation(dt float32) {
	a := d.anim
	if a == nil {
		return
	}
	t, done := a.progress.Update(dt)
	if done {
		d.anim = nil
		d.applyViewport(a.to, a.anchor)
		return
	}
	p := float64(t)
	scale := a.from.Scale + (a.to.Scale-a.from.Scale)*p
	if a.hasAnchor {
		d.vp.ZoomAt(a.anchor, scale, d.opts.MinScale, d.opts.MaxScale)
		return
	}
	d.vp = Viewport{
		Scale: scale,
		Offset: Point{
			X: a.from.Offset.X + (a.to.Offset.X-a.from.Offset.X)*p,
			Y: a.from.Offset.Y + (a.to.Offset.Y-a.from.Offset.Y)*p,
		},
	}
}

// animateTo moves the viewport to target, at once or eased by anim.
func (d *Dispatcher) animateTo(target Viewport, anchor Point, hasAnchor bool, anim *Animation) {
	if d.destroyed {
		return
	}
	d.stopAnimation()
	if anim == nil {
		d.applyViewport(target, anchor)
		return
	}
	dur := anim.Duration
	if dur <= 0 {
		dur = defaultAnimDuration
	}
	fn := anim.Ease
	if fn == nil {
		fn = ease.Linear
	}
	d.anim = &viewportAnim{
		progress:  gween.New(0, 1, dur, fn),
		from:      d.vp,
		to:        target,
		anchor:    anchor,
		hasAnchor: hasAnchor,
	}
	d.debugf("animating viewport to %.3f %v", target.Scale, target.Offset)
}

// applyViewport sets the viewport and reports what changed.
func (d *Dispatcher) applyViewport(v Viewport, anchor Point) {
	prev := d.vp
	d.vp = v
	if v.Scale != prev.Scale {
		d.emit(Event{
			Type:        EventCanvasZoom,
			Scale:       v.Scale,
			Offset:      v.Offset,
			CanvasPoint: anchor,
			Point:       d.toWorld(anchor),
		})
	}
	if v.Offset != prev.Offset {
		d.emit(Event{Type: EventCanvasPan, Offset: v.Offset, Delta: v.Offset.Sub(prev.Offset)})
	}
}

// ZoomTo sets the scale, clamped to the configured range, keeping the world
// point under the canvas-space anchor fixed.
func (d *Dispatcher) ZoomTo(scale float64, anchor Point, anim *Animation) {
	if scale <= 0 {
		return
	}
	target := d.vp
	target.ZoomAt(anchor, scale, d.opts.MinScale, d.opts.MaxScale)
	d.animateTo(target, anchor, true, anim)
}

// ZoomIn raises the scale by one step of 0.1.
func (d *Dispatcher) ZoomIn(anchor Point, anim *Animation) {
	d.ZoomTo(d.vp.Scale+zoomStep, anchor, anim)
}

// ZoomOut lowers the scale by one step of 0.1.
func (d *Dispatcher) ZoomOut(anchor Point, anim *Animation) {
	d.ZoomTo(d.vp.Scale-zoomStep, anchor, anim)
}

// ResetZoom returns to scale 1.
func (d *Dispatcher) ResetZoom(anchor Point, anim *Animation) {
	d.ZoomTo(1, anchor, anim)
}

// PanBy scrolls the view by a canvas-space delta.
func (d *Dispatcher) PanBy(delta Point, anim *Animation) {
	target := d.vp
	target.PanFrom(d.vp.Offset, delta)
	d.animateTo(target, Point{}, false, anim)
}

// CenterOn scrolls so world point p sits in the middle of a canvas of the
// given size, keeping the current scale.
func (d *Dispatcher) CenterOn(p Point, canvas Size, anim *Animation) {
	target := Viewport{Scale: d.vp.Scale, Offset: centeredOn(p, canvas, d.vp.Scale)}
	d.animateTo(target, Point{}, false, anim)
}

// FitBounds zooms and scrolls so the world rectangle fills a canvas of the
// given size, leaving padding canvas pixels on every side. A padding <= 0
// uses 50. Empty bounds are ignored.
func (d *Dispatcher) FitBounds(bounds Rect, canvas Size, padding float64, anim *Animation) {
	if padding <= 0 {
		padding = defaultFitPadding
	}
	scale, ok := fitScale(bounds, canvas, padding, d.opts.MinScale, d.opts.MaxScale)
	if !ok {
		return
	}
	target := Viewport{Scale: scale, Offset: centeredOn(bounds.Center(), canvas, scale)}
	d.animateTo(target, Point{}, false, anim)
}
