package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"testing"
	"time"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/chaikin"
	"github.com/npillmayer/chaikin/animation"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func lshape() chaikin.Sequence {
	return chaikin.MustParseSequence("10,10 90,10 90,50")
}

func near(c1, c2 color.RGBA) bool {
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	return d(c1.R, c2.R) <= 2 && d(c1.G, c2.G) <= 2 && d(c1.B, c2.B) <= 2
}

func TestPaletteIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p1, p2 := NewPalette(1), NewPalette(1)
	for i := 0; i < 20; i++ {
		assert.Equal(t, p1.SegmentColor(i), p2.SegmentColor(i))
		assert.Equal(t, p1.SegmentColor(i), p1.SegmentColor(i))
		c := p1.SegmentColor(i)
		assert.True(t, c.R >= 80 && c.G >= 80 && c.B >= 80, "colour %v too dark", c)
	}
	assert.NotEqual(t, p1.SegmentColor(0), p1.SegmentColor(1))
}

func TestBounds(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, ok := Bounds(nil)
	assert.False(t, ok)
	box, ok := Bounds(lshape())
	assert.True(t, ok)
	assert.Equal(t, polyclip.Point{X: 10, Y: 10}, box.Min)
	assert.Equal(t, polyclip.Point{X: 90, Y: 50}, box.Max)
}

func TestGenerationsStayInControlBounds(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seed := chaikin.MustParseSequence("0,0 40,90 80,-10 120,60 30,30")
	outer, _ := Bounds(seed)
	for _, g := range chaikin.GenerateChain(seed, 6) {
		box, _ := Bounds(g.Points)
		assert.True(t, box.Min.X >= outer.Min.X && box.Min.Y >= outer.Min.Y, "%s", g)
		assert.True(t, box.Max.X <= outer.Max.X && box.Max.Y <= outer.Max.Y, "%s", g)
	}
}

func TestGenerationsInsideConvexHull(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seed := chaikin.MustParseSequence("0,0 100,0 100,100 0,100")
	// a slightly enlarged hull, points may lie on the control polygon
	hull := Contour(chaikin.MustParseSequence("-1,-1 101,-1 101,101 -1,101"))
	for _, g := range chaikin.GenerateChain(seed, 4) {
		for _, p := range g.Points {
			assert.True(t, hull.Contains(polyclip.Point{X: p.X(), Y: p.Y()}), "%s in %s", p, g)
		}
	}
}

func TestCull(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seq := chaikin.MustParseSequence("10,10 50,10 150,10 200,80 50,50")
	segs := Cull(animation.SegmentsOf(seq), Viewport(100, 100))
	assert.Len(t, segs, 3)
	assert.Equal(t, 0, segs[0].Index)
	assert.Equal(t, 1, segs[1].Index)
	assert.Equal(t, 3, segs[2].Index)
	assert.Empty(t, Cull(nil, Viewport(10, 10)))
}

func TestFitTransform(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	box, _ := Bounds(chaikin.MustParseSequence("0,0 10,5"))
	at := FitTransform(box, 120, 100, 10)
	// 100 pixels available horizontally, so the scale is 10
	assert.True(t, at.Transform(chaikin.P(0, 0)).Equal(chaikin.P(10, 25)))
	assert.True(t, at.Transform(chaikin.P(10, 5)).Equal(chaikin.P(110, 75)))
	point, _ := Bounds(chaikin.Sequence{chaikin.P(3, 4)})
	at = FitTransform(point, 100, 100, 10)
	assert.True(t, at.Transform(chaikin.P(3, 4)).Equal(chaikin.P(50, 50)))
}

func TestRasterizerDrawsSegments(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pal := NewPalette(3)
	r := NewRasterizer(40, 20, pal)
	r.SetMarkerSize(0)
	img := image.NewRGBA(r.Bounds())
	r.Draw(img, chaikin.MustParseSequence("0,10 40,10"))
	assert.Equal(t, Background, img.RGBAAt(20, 2))
	got := img.RGBAAt(20, 10)
	assert.True(t, near(pal.SegmentColor(0), got), "pixel = %v", got)
}

func TestRasterizerMarkers(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := NewRasterizer(20, 20, nil)
	img := image.NewRGBA(r.Bounds())
	r.Draw(img, chaikin.Sequence{chaikin.P(10, 10)})
	assert.Equal(t, MarkerColor, img.RGBAAt(10, 10))
	assert.Equal(t, MarkerColor, img.RGBAAt(8, 8))
	assert.Equal(t, MarkerColor, img.RGBAAt(12, 12))
	assert.Equal(t, Background, img.RGBAAt(7, 10))
	assert.Equal(t, Background, img.RGBAAt(13, 10))
	assert.Equal(t, Background, img.RGBAAt(2, 2))
}

func TestRasterizerSkipsEmptySegments(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := NewRasterizer(20, 20, nil)
	r.SetMarkerSize(0)
	img := image.NewRGBA(r.Bounds())
	r.Draw(img, chaikin.Sequence{chaikin.P(5, 5), chaikin.P(5, 5+1e-9)})
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			assert.Equal(t, Background, img.RGBAAt(x, y))
		}
	}
}

func TestFrameOfIdleController(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := NewRasterizer(8, 8, nil)
	img := r.Frame(animation.New())
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, Background, img.RGBAAt(x, y))
		}
	}
}

func TestRecordFrameCount(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	frames, err := Record(lshape(), ExportOptions{Width: 100, Height: 60, MaxGenerations: 4})
	assert.NoError(t, err)
	assert.Len(t, frames, 5)
}

func TestRecordErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := Record(chaikin.Sequence{chaikin.P(1, 1)}, ExportOptions{Width: 10, Height: 10, MaxGenerations: 2})
	assert.True(t, errors.Is(err, ErrExport))
	_, err = Record(lshape(), ExportOptions{Width: 0, Height: 10, MaxGenerations: 2})
	assert.True(t, errors.Is(err, ErrExport))
}

func TestExportGIF(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	var buf bytes.Buffer
	opts := ExportOptions{
		Width:          64,
		Height:         48,
		Delay:          300 * time.Millisecond,
		MaxGenerations: 3,
		Fit:            true,
	}
	assert.NoError(t, ExportGIF(&buf, lshape(), opts))
	anim, err := gif.DecodeAll(&buf)
	assert.NoError(t, err)
	assert.Len(t, anim.Image, 4)
	assert.Equal(t, []int{30, 30, 30, 30}, anim.Delay)
	assert.Equal(t, 64, anim.Config.Width)
	assert.Equal(t, 48, anim.Config.Height)
}
