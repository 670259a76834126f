package animation

import (
	"github.com/npillmayer/chaikin"
)

// Event is an input event for a controller, produced by a windowing
// collaborator.
type Event interface {
	isEvent()
}

// AddPointEvent adds a control point.
type AddPointEvent struct{ At chaikin.Pair }

// PressEvent is a pointer press: grab a nearby control point or add one.
type PressEvent struct{ At chaikin.Pair }

// DragEvent moves a grabbed control point.
type DragEvent struct{ To chaikin.Pair }

// ReleaseEvent drops a grabbed control point.
type ReleaseEvent struct{}

// StartEvent starts the animation.
type StartEvent struct{}

// ClearEvent resets the controller.
type ClearEvent struct{}

// TickEvent is a frame tick.
type TickEvent struct{}

// ResizeEvent reports a new canvas size.
type ResizeEvent struct{ Width, Height int }

func (AddPointEvent) isEvent() {}
func (PressEvent) isEvent()    {}
func (DragEvent) isEvent()     {}
func (ReleaseEvent) isEvent()  {}
func (StartEvent) isEvent()    {}
func (ClearEvent) isEvent()    {}
func (TickEvent) isEvent()     {}
func (ResizeEvent) isEvent()   {}

// Handle dispatches an event to the corresponding controller operation.
// Unknown events (including nil) are ignored.
func (c *Controller) Handle(ev Event) {
	switch ev := ev.(type) {
	case AddPointEvent:
		c.AddPoint(ev.At)
	case PressEvent:
		c.Press(ev.At)
	case DragEvent:
		c.Drag(ev.To)
	case ReleaseEvent:
		c.Release()
	case StartEvent:
		c.Start()
	case ClearEvent:
		c.Clear()
	case TickEvent:
		c.Tick()
	case ResizeEvent:
		c.Resize(ev.Width, ev.Height)
	default:
		tracer().Errorf("unknown event type %T", ev)
	}
}
