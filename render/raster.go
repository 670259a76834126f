package render

import (
	"image"
	"image/draw"
	"math"

	"github.com/npillmayer/chaikin"
	"github.com/npillmayer/chaikin/animation"
	"golang.org/x/image/vector"
)

// Default drawing parameters, in pixels.
const (
	DefaultStrokeWidth = 2.0
	DefaultMarkerSize  = 5.0
)

// Rasterizer draws frames of an animation into RGBA images.
type Rasterizer struct {
	width, height int
	stroke        float64 // line width of segments
	marker        float64 // edge length of point markers, 0 for none
	palette       *Palette
	transform     chaikin.AT // canvas coordinates → pixels
	z             *vector.Rasterizer
}

// NewRasterizer creates a rasterizer for frames of the given size.
func NewRasterizer(width, height int, pal *Palette) *Rasterizer {
	if pal == nil {
		pal = NewPalette(0)
	}
	return &Rasterizer{
		width:     width,
		height:    height,
		stroke:    DefaultStrokeWidth,
		marker:    DefaultMarkerSize,
		palette:   pal,
		transform: chaikin.Identity(),
		z:         vector.NewRasterizer(width, height),
	}
}

// SetTransform sets the transform from canvas coordinates to pixels.
func (r *Rasterizer) SetTransform(at chaikin.AT) {
	r.transform = at
}

// SetMarkerSize sets the size of point markers. Size 0 switches them off.
func (r *Rasterizer) SetMarkerSize(size float64) {
	r.marker = size
}

// Bounds returns the pixel rectangle of frames.
func (r *Rasterizer) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// Frame draws the current render data of a controller into a new image.
func (r *Rasterizer) Frame(c *animation.Controller) *image.RGBA {
	img := image.NewRGBA(r.Bounds())
	r.Draw(img, c.RenderPoints())
	return img
}

// Draw paints a background, the segments of the open polyline seq and a
// marker for each of its points onto dst.
func (r *Rasterizer) Draw(dst draw.Image, seq chaikin.Sequence) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	pts := r.transform.TransformAll(seq)
	segs := Cull(animation.SegmentsOf(pts), Viewport(r.width, r.height))
	for _, s := range segs {
		r.line(dst, s)
	}
	if r.marker > 0 {
		for _, p := range pts {
			r.dot(dst, p)
		}
	}
}

// line fills a quad of stroke width around the segment.
func (r *Rasterizer) line(dst draw.Image, s animation.Segment) {
	if s.From.Equal(s.To) {
		return
	}
	d := s.To.C() - s.From.C()
	l := math.Hypot(real(d), imag(d))
	n := complex(-imag(d)/l, real(d)/l) * complex(r.stroke/2, 0) // normal
	r.z.Reset(r.width, r.height)
	r.moveTo(s.From.C() + n)
	r.lineTo(s.To.C() + n)
	r.lineTo(s.To.C() - n)
	r.lineTo(s.From.C() - n)
	r.z.ClosePath()
	col := image.NewUniform(r.palette.SegmentColor(s.Index))
	r.z.Draw(dst, dst.Bounds(), col, image.Point{})
}

func (r *Rasterizer) dot(dst draw.Image, p chaikin.Pair) {
	h := r.marker / 2
	lo, hi := p.Shifted(chaikin.P(-h, -h)), p.Shifted(chaikin.P(h, h))
	box := image.Rect(int(math.Round(lo.X())), int(math.Round(lo.Y())),
		int(math.Round(hi.X())), int(math.Round(hi.Y())))
	box = box.Intersect(dst.Bounds())
	if box.Empty() {
		return
	}
	draw.Draw(dst, box, image.NewUniform(MarkerColor), image.Point{}, draw.Src)
}

func (r *Rasterizer) moveTo(c complex128) {
	r.z.MoveTo(float32(real(c)), float32(imag(c)))
}

func (r *Rasterizer) lineTo(c complex128) {
	r.z.LineTo(float32(real(c)), float32(imag(c)))
}
