// Package flowcanvas is the interaction core of a node-and-edge diagram
// canvas for [Ebitengine] and other Go hosts.
//
// It turns raw pointer, wheel, keyboard and touch input into editing intents:
// node drags with grid snapping and alignment guides, connection drags
// between ports, edge endpoint reconnection, waypoint and bezier control
// point editing, rubber-band selection, pan and zoom. It does not own the
// diagram or draw anything. The host supplies its model through a few small
// interfaces and listens for events.
//
// # Quick start
//
// Implement [Selection] over your diagram, create a [Dispatcher] and feed it
// input. With Ebitengine, [EbitenInput] polls the input for you:
//
//	d := flowcanvas.NewDispatcher(diagram, nil)
//	in := flowcanvas.NewEbitenInput(d, flowcanvas.Rect{Width: 960, Height: 640})
//
//	d.On(flowcanvas.EventConnectEnd, func(ev flowcanvas.Event) {
//		diagram.Connect(ev.SourceID, ev.SourcePort, ev.TargetID, ev.TargetPort)
//	})
//
//	func (g *Game) Update() error {
//		g.in.Poll()
//		g.d.Update(1.0 / float32(ebiten.TPS()))
//		return nil
//	}
//
// Other hosts call [Dispatcher.HandlePointer], [Dispatcher.HandleWheel],
// [Dispatcher.HandleKey] and [Dispatcher.HandleTouch] with events already
// mapped into canvas space, then [Dispatcher.Update] once per frame.
//
// # Coordinates
//
// Canvas space is pixels relative to the canvas's top-left corner. World
// space is the diagram's own coordinate system. A [Viewport] maps between
// them:
//
//	world  = canvas/Scale - Offset
//	canvas = (world + Offset) * Scale
//
// Every Event carries the world point and the canvas point it came from.
// Hit-test tolerances are given in canvas pixels and shrink in world units as
// the view zooms in, so handles stay the same size on screen.
//
// # The model
//
// Diagram elements are described by interfaces. An [Item] has an ID. A
// [Node] adds position and size, a [PortedNode] exposes connection ports and
// a [Draggable] receives move callbacks during a node drag. Edges report
// their path; [OrthogonalEdge] adds waypoints and [BezierEdge] adds control
// points. The [Selection] owns selection state and the rubber-band box.
//
// The dispatcher never mutates the model except through Draggable. Waypoint,
// control point and connection gestures are reported as events carrying the
// proposed values, and the host decides whether to apply them.
//
// # Gestures
//
// At most one gesture runs at a time. In [ModeSelect] a primary press
// resolves, in order: Alt-click waypoint removal or insertion, endpoint
// reconnection, bezier control drag, waypoint drag, then node drag or
// rubber-band selection. [ModePan] pans, [ModeConnect] starts connections
// from ports. The middle button pans in any mode. Escape, [Dispatcher.SetMode]
// and [Dispatcher.Cancel] abandon the gesture in flight and emit its cancel
// event.
//
// # Viewport commands
//
// [Dispatcher.ZoomTo], [Dispatcher.ZoomIn], [Dispatcher.ZoomOut],
// [Dispatcher.ResetZoom], [Dispatcher.PanBy], [Dispatcher.CenterOn] and
// [Dispatcher.FitBounds] change the view, at once or eased over time with an
// [Animation] (tweened via [gween]). User panning or zooming stops a running
// animation.
//
// # Testing and replay
//
// [Dispatcher.InjectClick], [Dispatcher.InjectDrag] and friends queue
// synthetic input consumed one event per Update. [LoadScript] parses a JSON
// input script that a [ScriptRunner] replays across frames.
//
// # ECS
//
// The flowcanvas/ecs module forwards every event into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package flowcanvas
