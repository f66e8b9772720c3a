// Package ecs provides ECS adapters for flowcanvas's dispatcher events.
//
// The primary adapter is [NewDonburiSink], which publishes every dispatcher
// event (pointer, zoom, connect, waypoint edits, guides) into a [Donburi]
// world as a typed event and mirrors the viewport onto an entity. Subscribe
// to [InteractionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	dispatcher.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
