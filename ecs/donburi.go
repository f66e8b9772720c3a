package ecs

import (
	"github.com/phanxgames/flowcanvas"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for dispatcher events.
// Subscribe to it in your ECS systems to receive editing intents.
var InteractionEventType = events.NewEventType[flowcanvas.Event]()

// Viewport is the component holding the dispatcher's last reported viewport.
var Viewport = donburi.NewComponentType[flowcanvas.Viewport]()

// DonburiSink is an EventSink backed by a Donburi world.
type DonburiSink struct {
	world    donburi.World
	viewport donburi.Entity
}

// NewDonburiSink creates a sink that publishes events to
// InteractionEventType, to be consumed with events.Subscribe and
// ProcessEvents. It also creates an entity carrying the Viewport component,
// kept current from zoom and pan events.
func NewDonburiSink(world donburi.World) *DonburiSink {
	e := world.Create(Viewport)
	Viewport.SetValue(world.Entry(e), flowcanvas.DefaultViewport())
	return &DonburiSink{world: world, viewport: e}
}

// ViewportEntity returns the entity mirroring the viewport.
func (s *DonburiSink) ViewportEntity() donburi.Entity {
	return s.viewport
}

// EmitEvent implements flowcanvas.EventSink.
func (s *DonburiSink) EmitEvent(event flowcanvas.Event) {
	switch event.Type {
	case flowcanvas.EventCanvasZoom:
		s.updateViewport(func(v *flowcanvas.Viewport) {
			v.Scale = event.Scale
			v.Offset = event.Offset
		})
	case flowcanvas.EventCanvasPan:
		s.updateViewport(func(v *flowcanvas.Viewport) {
			v.Offset = event.Offset
		})
	}
	InteractionEventType.Publish(s.world, event)
}

func (s *DonburiSink) updateViewport(fn func(v *flowcanvas.Viewport)) {
	if !s.world.Valid(s.viewport) {
		return
	}
	fn(Viewport.Get(s.world.Entry(s.viewport)))
}
