package render

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/chaikin"
	"github.com/npillmayer/chaikin/animation"
)

// Contour converts a sequence of points to a polyclip contour.
func Contour(seq chaikin.Sequence) polyclip.Contour {
	c := make(polyclip.Contour, len(seq))
	for i, p := range seq {
		c[i] = polyclip.Point{X: p.X(), Y: p.Y()}
	}
	return c
}

// Bounds returns the bounding box of a sequence. The second return value is
// false for an empty sequence.
func Bounds(seq chaikin.Sequence) (polyclip.Rectangle, bool) {
	if len(seq) == 0 {
		return polyclip.Rectangle{}, false
	}
	return Contour(seq).BoundingBox(), true
}

// Viewport is the rectangle of a canvas with the given size, in canvas
// coordinates.
func Viewport(width, height int) polyclip.Rectangle {
	return polyclip.Rectangle{
		Min: polyclip.Point{X: 0, Y: 0},
		Max: polyclip.Point{X: float64(width), Y: float64(height)},
	}
}

func segmentBox(s animation.Segment) polyclip.Rectangle {
	return polyclip.Rectangle{
		Min: polyclip.Point{X: math.Min(s.From.X(), s.To.X()), Y: math.Min(s.From.Y(), s.To.Y())},
		Max: polyclip.Point{X: math.Max(s.From.X(), s.To.X()), Y: math.Max(s.From.Y(), s.To.Y())},
	}
}

// Cull returns the segments whose bounding boxes overlap the viewport.
// Segments keep their index, so colours do not change when neighbours are
// culled.
func Cull(segs []animation.Segment, viewport polyclip.Rectangle) []animation.Segment {
	visible := segs[:0:0]
	for _, s := range segs {
		if segmentBox(s).Overlaps(viewport) {
			visible = append(visible, s)
		}
	}
	if len(visible) < len(segs) {
		tracer().Debugf("culled %d of %d segments", len(segs)-len(visible), len(segs))
	}
	return visible
}

// FitTransform returns a transform which scales and centers the box into a
// canvas of the given size, leaving margin on every side. The aspect ratio
// is preserved. A box without extent is only centered.
func FitTransform(box polyclip.Rectangle, width, height int, margin float64) chaikin.AT {
	bw, bh := box.Max.X-box.Min.X, box.Max.Y-box.Min.Y
	aw, ah := float64(width)-2*margin, float64(height)-2*margin
	scale := 1.0
	switch {
	case chaikin.Is0(bw) && chaikin.Is0(bh):
	case chaikin.Is0(bw):
		scale = ah / bh
	case chaikin.Is0(bh):
		scale = aw / bw
	default:
		scale = math.Min(aw/bw, ah/bh)
	}
	center := chaikin.P((box.Min.X+box.Max.X)/2, (box.Min.Y+box.Max.Y)/2)
	at := chaikin.Translation(chaikin.P(-center.X(), -center.Y())).
		Combine(chaikin.Scaling(scale, scale)).
		Combine(chaikin.Translation(chaikin.P(float64(width)/2, float64(height)/2)))
	tracer().Debugf("fit transform = %s", at)
	return at
}
