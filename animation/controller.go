package animation

import (
	"fmt"

	"github.com/npillmayer/chaikin"
	"github.com/npillmayer/schuko/tracing"
)

// Defaults for controller options.
const (
	DefaultMaxGenerations = 7
	DefaultPickRadius     = 20.0
	MaxGenerationsLimit   = 10 // point counts double with every generation
)

// NoticeTooFewPoints is shown when a start is attempted without a curve.
const NoticeTooFewPoints = "Please draw at least two control points first"

// Controller owns the control points, the generations computed from them
// and the playback position. It is not safe for concurrent use; the host's
// UI loop is expected to own it.
type Controller struct {
	state      State
	controls   chaikin.Sequence     // captured control points
	gens       []chaikin.Generation // computed on start
	index      int                  // playback index into gens
	maxGens    int                  // number of subdivision passes
	pickRadius float64              // grab distance for dragging
	grabbed    int                  // index of dragged control point, or -1
	notice     string               // message for the user, if any
}

// Option configures a Controller.
type Option func(*Controller)

// WithMaxGenerations sets how many subdivision passes are precomputed on
// start. Values are clamped to [1, MaxGenerationsLimit].
func WithMaxGenerations(n int) Option {
	return func(c *Controller) {
		if n < 1 || n > MaxGenerationsLimit {
			clamped := min(max(n, 1), MaxGenerationsLimit)
			tracer().Infof("max generations %d out of range, using %d", n, clamped)
			n = clamped
		}
		c.maxGens = n
	}
}

// WithPickRadius sets the distance within which a press grabs an existing
// control point instead of adding a new one. A radius ≤ 0 disables dragging.
func WithPickRadius(r float64) Option {
	return func(c *Controller) {
		c.pickRadius = r
	}
}

// New creates a controller in state Idle.
func New(opts ...Option) *Controller {
	c := &Controller{
		state:      Idle,
		controls:   chaikin.Sequence{},
		maxGens:    DefaultMaxGenerations,
		pickRadius: DefaultPickRadius,
		grabbed:    -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// MaxGenerations returns the number of subdivision passes played back.
func (c *Controller) MaxGenerations() int {
	return c.maxGens
}

// ControlPoints returns a copy of the captured control points.
func (c *Controller) ControlPoints() chaikin.Sequence {
	return c.controls.Copy()
}

// Generations returns the number of computed generations (0 unless the
// animation has been started).
func (c *Controller) Generations() int {
	return len(c.gens)
}

// Generation returns the depth of the generation currently played back.
// The second return value is false if no animation is playing.
func (c *Controller) Generation() (int, bool) {
	if !c.state.isPlaying() {
		return 0, false
	}
	return c.gens[c.index].Depth, true
}

// Notice returns a message for the user, or "".
func (c *Controller) Notice() string {
	return c.notice
}

func (c *Controller) String() string {
	return fmt.Sprintf("controller[%s, #controls=%d, gen=%d/%d]", c.state, len(c.controls),
		c.index, len(c.gens))
}

// reject traces an out-of-contract call. The call has no effect.
func (c *Controller) reject(op string) {
	tracer().P("state", c.state).Infof("ignoring %s", op)
}

// --- Capturing -------------------------------------------------------------

// AddPoint appends a control point. It is allowed in states Idle,
// Capturing and Cleared and moves the controller to Capturing. Points with
// NaN or infinite coordinates are ignored.
func (c *Controller) AddPoint(p chaikin.Pair) {
	if !c.state.acceptsPoints() {
		c.reject("add-point")
		return
	}
	if !p.IsValid() {
		tracer().Errorf("ignoring control point: %v", fmt.Errorf("%w: %v", chaikin.ErrInvalidPoint, p))
		return
	}
	c.controls = append(c.controls, p)
	c.state = Capturing
	c.notice = ""
	tracer().Debugf("added control point #%d at %s", len(c.controls), p)
}

// AddXY is a shortcut for AddPoint(chaikin.P(x, y)).
func (c *Controller) AddXY(x, y float64) {
	c.AddPoint(chaikin.P(x, y))
}

// Press is a pointer press at p. Within the pick radius of an existing
// control point, the nearest one is grabbed for dragging. Otherwise p is
// added as a new control point.
func (c *Controller) Press(p chaikin.Pair) {
	if !c.state.acceptsPoints() {
		c.reject("press")
		return
	}
	if i := c.nearest(p); i >= 0 {
		c.grabbed = i
		tracer().Debugf("grabbed control point #%d", i+1)
		return
	}
	c.AddPoint(p)
}

// Drag moves a grabbed control point to p. Without a grabbed point it does
// nothing.
func (c *Controller) Drag(p chaikin.Pair) {
	if c.grabbed < 0 || !c.state.acceptsPoints() {
		return
	}
	if !p.IsValid() {
		return
	}
	c.controls[c.grabbed] = p
}

// Release drops a grabbed control point.
func (c *Controller) Release() {
	c.grabbed = -1
}

// Dragging returns the index of the grabbed control point, if any.
func (c *Controller) Dragging() (int, bool) {
	return c.grabbed, c.grabbed >= 0
}

func (c *Controller) nearest(p chaikin.Pair) int {
	found, best := -1, c.pickRadius
	for i, q := range c.controls {
		if d := p.Distance(q); d < best {
			found, best = i, d
		}
	}
	return found
}

// --- Playback --------------------------------------------------------------

// Start computes all generations of the captured control points and starts
// the playback at generation 0. Start requires at least 2 control points;
// with fewer, it sets NoticeTooFewPoints and is a no-op otherwise. While an
// animation is playing, Start does nothing.
func (c *Controller) Start() {
	if !c.state.acceptsPoints() {
		c.reject("start")
		return
	}
	if c.controls.IsDegenerate() {
		c.notice = NoticeTooFewPoints
		c.reject(fmt.Sprintf("start with %d control point(s)", len(c.controls)))
		return
	}
	c.grabbed = -1
	c.notice = ""
	c.gens = chaikin.GenerateChain(c.controls, c.maxGens)
	c.index = 0
	c.state = Running
	tracer().Infof("starting animation of %d generations for %s", len(c.gens),
		chaikin.AsString(c.controls))
	tracing.With(tracer()).Dump("generations", c.gens)
}

// AdvanceFrame moves the playback to the next generation. When the last
// generation is reached, the controller enters state Finished and stays
// there, frozen on the last generation. Only allowed while Running.
func (c *Controller) AdvanceFrame() {
	if c.state != Running {
		c.reject("advance-frame")
		return
	}
	if c.index < len(c.gens)-1 {
		c.index++
	}
	tracer().Debugf("showing %s", c.gens[c.index])
	if c.index == len(c.gens)-1 {
		c.state = Finished
		tracer().Infof("animation finished at generation %d", c.gens[c.index].Depth)
	}
}

// Tick is called by the host's frame timer. It advances the animation if it
// is running and does nothing otherwise.
func (c *Controller) Tick() {
	if c.state == Running {
		c.AdvanceFrame()
	}
}

// Clear discards control points, generations and the playback position,
// from any state. The controller enters state Cleared, which acts like Idle.
func (c *Controller) Clear() {
	c.controls = chaikin.Sequence{}
	c.gens = nil
	c.index = 0
	c.grabbed = -1
	c.notice = ""
	c.state = Cleared
	tracer().Debugf("cleared")
}

// Resize is a notification about a changed canvas size. Control points are
// kept in canvas coordinates and are neither rescaled nor recomputed.
func (c *Controller) Resize(width, height int) {
	tracer().Debugf("canvas resized to %dx%d, keeping %d control points", width, height,
		len(c.controls))
}

// --- Render data -----------------------------------------------------------

// RenderPoints returns the points to draw for the current frame: the
// control points while capturing, the current generation while playing,
// and nothing in states Idle and Cleared. The result is a copy.
func (c *Controller) RenderPoints() chaikin.Sequence {
	switch c.state {
	case Capturing:
		return c.controls.Copy()
	case Running, Finished:
		return c.gens[c.index].Points.Copy()
	}
	return chaikin.Sequence{}
}

// Segment is a line segment between two consecutive render points. Index
// is the position of the segment within its polyline.
type Segment struct {
	From, To chaikin.Pair
	Index    int
}

// Segments returns the line segments connecting consecutive render points.
func (c *Controller) Segments() []Segment {
	return SegmentsOf(c.RenderPoints())
}

// SegmentsOf returns the line segments of an open polyline.
func SegmentsOf(seq chaikin.Sequence) []Segment {
	if seq.IsDegenerate() {
		return nil
	}
	segs := make([]Segment, len(seq)-1)
	for i := range segs {
		segs[i] = Segment{From: seq[i], To: seq[i+1], Index: i}
	}
	return segs
}
