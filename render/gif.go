package render

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/npillmayer/chaikin"
	"github.com/npillmayer/chaikin/animation"
)

// ErrExport is returned if an animation cannot be exported.
var ErrExport = errors.New("cannot export animation")

// ExportOptions control the export of an animation.
type ExportOptions struct {
	Width, Height  int           // frame size in pixels
	Delay          time.Duration // display time of each frame
	MaxGenerations int           // subdivision passes
	Fit            bool          // scale control points to the frame
	Palette        *Palette      // segment colours, may be nil
}

// Record plays an animation of the control points seq from start to finish
// and returns one frame per generation. Frames are rendered by driving an
// animation controller the same way an interactive host does.
func Record(seq chaikin.Sequence, opts ExportOptions) ([]*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: frame size %dx%d", ErrExport, opts.Width, opts.Height)
	}
	ctrl := animation.New(animation.WithMaxGenerations(opts.MaxGenerations))
	for _, p := range seq {
		ctrl.AddPoint(p)
	}
	ctrl.Start()
	if ctrl.State() != animation.Running {
		return nil, fmt.Errorf("%w: need at least two valid control points, have %d",
			ErrExport, ctrl.ControlPoints().N())
	}
	r := NewRasterizer(opts.Width, opts.Height, opts.Palette)
	if opts.Fit {
		box, _ := Bounds(ctrl.ControlPoints())
		r.SetTransform(FitTransform(box, opts.Width, opts.Height, 20))
	}
	frames := []*image.RGBA{r.Frame(ctrl)}
	for ctrl.State() == animation.Running {
		ctrl.Tick()
		frames = append(frames, r.Frame(ctrl))
	}
	tracer().Infof("recorded %d frames", len(frames))
	return frames, nil
}

// ExportGIF writes the animation of the control points seq as an animated
// GIF to w, one frame per generation. The animation plays once and stops
// on the last generation.
func ExportGIF(w io.Writer, seq chaikin.Sequence, opts ExportOptions) error {
	frames, err := Record(seq, opts)
	if err != nil {
		return err
	}
	delay := int(opts.Delay / (10 * time.Millisecond)) // GIF delays are in 1/100 s
	anim := &gif.GIF{LoopCount: -1}
	for _, f := range frames {
		pf := image.NewPaletted(f.Bounds(), palette.Plan9)
		draw.Draw(pf, pf.Bounds(), f, image.Point{}, draw.Src)
		anim.Image = append(anim.Image, pf)
		anim.Delay = append(anim.Delay, delay)
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	return nil
}
