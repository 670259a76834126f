/*
Package termcanvas runs a Chaikin animation interactively in a terminal.

The canvas translates tcell mouse, key and resize events into calls of an
animation controller, ticks the controller at a fixed frame interval and
draws its render data with braille characters. Canvas coordinates are
braille dots: every terminal cell is 2 dots wide and 4 dots high. The last
terminal row is reserved for a status line.

Keys:

	left mouse button   add a control point, or drag an existing one
	Enter               start the animation
	Space               clear everything
	Esc, q, Ctrl-C      quit

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package termcanvas

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/chaikin"
	"github.com/npillmayer/chaikin/animation"
	"github.com/npillmayer/chaikin/config"
	"github.com/npillmayer/chaikin/render"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'termcanvas'
func tracer() tracing.Trace {
	return tracing.Select("termcanvas")
}

// DotPickRadius is the pick radius in dots for the default pick radius
// in pixels. Configured radii are scaled accordingly.
const DotPickRadius = 3.0

// ControllerOptions returns the controller options for settings, with the
// pick radius converted from pixels to dots.
func ControllerOptions(s config.Settings) []animation.Option {
	radius := DotPickRadius * s.PickRadius / config.Default().PickRadius
	return []animation.Option{
		animation.WithMaxGenerations(s.MaxGenerations),
		animation.WithPickRadius(radius),
	}
}

// Canvas connects a terminal screen to an animation controller.
type Canvas struct {
	screen      tcell.Screen
	ctrl        *animation.Controller
	settings    config.Settings
	palette     *render.Palette
	buttonDown  bool
	notice      string
	noticeUntil time.Time
	now         func() time.Time
}

// New creates a canvas. The screen must be initialized.
func New(screen tcell.Screen, ctrl *animation.Controller, settings config.Settings) *Canvas {
	return &Canvas{
		screen:   screen,
		ctrl:     ctrl,
		settings: settings,
		palette:  render.NewPalette(0),
		now:      time.Now,
	}
}

// Size returns the size of the drawing area in dots.
func (cv *Canvas) Size() (int, int) {
	w, h := cv.screen.Size()
	return w * DotsX, max(h-1, 0) * DotsY
}

// cellToDot maps a terminal cell to a canvas point.
func cellToDot(x, y int) chaikin.Pair {
	return chaikin.P(float64(x*DotsX), float64(y*DotsY+1))
}

// HandleEvent dispatches a terminal event to the controller. It returns
// false if the user asked to quit.
func (cv *Canvas) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return cv.handleKey(ev)
	case *tcell.EventMouse:
		cv.handleMouse(ev)
	case *tcell.EventResize:
		cv.screen.Sync()
		w, h := cv.Size()
		cv.ctrl.Handle(animation.ResizeEvent{Width: w, Height: h})
	}
	return true
}

func (cv *Canvas) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		cv.ctrl.Handle(animation.StartEvent{})
		if n := cv.ctrl.Notice(); n != "" {
			cv.showNotice(n)
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			cv.ctrl.Handle(animation.ClearEvent{})
			cv.notice = ""
		}
	}
	return true
}

func (cv *Canvas) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0
	switch {
	case pressed && !cv.buttonDown:
		cv.buttonDown = true
		cv.ctrl.Handle(animation.PressEvent{At: cellToDot(x, y)})
	case pressed:
		cv.ctrl.Handle(animation.DragEvent{To: cellToDot(x, y)})
	case cv.buttonDown:
		cv.buttonDown = false
		cv.ctrl.Handle(animation.ReleaseEvent{})
	}
}

func (cv *Canvas) showNotice(msg string) {
	cv.notice = msg
	cv.noticeUntil = cv.now().Add(cv.settings.NoticeDuration)
	tracer().Infof("notice: %s", msg)
}

// Draw renders the current frame and the status line.
func (cv *Canvas) Draw() {
	cv.screen.Clear()
	w, h := cv.screen.Size()
	buf := newDotBuffer(w, h-1)
	pts := cv.ctrl.RenderPoints()
	for _, s := range animation.SegmentsOf(pts) {
		buf.line(s.From, s.To, tcell.FromImageColor(cv.palette.SegmentColor(s.Index)))
	}
	if cv.ctrl.State() == animation.Capturing {
		for _, p := range pts {
			buf.plot(p, tcell.ColorWhite)
		}
	}
	buf.flush(cv.screen)
	cv.drawStatus(w, h)
	cv.screen.Show()
}

func (cv *Canvas) drawStatus(w, h int) {
	if h < 1 {
		return
	}
	style := tcell.StyleDefault.Reverse(true)
	text := cv.status()
	if cv.notice != "" && cv.now().Before(cv.noticeUntil) {
		text = cv.notice
		style = tcell.StyleDefault.Foreground(tcell.ColorYellow).Reverse(true)
	}
	runes := []rune(" " + text)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		cv.screen.SetContent(x, h-1, r, nil, style)
	}
}

func (cv *Canvas) status() string {
	switch cv.ctrl.State() {
	case animation.Capturing:
		return fmt.Sprintf("Capturing: %d points | Enter start | Space clear | q quit",
			cv.ctrl.ControlPoints().N())
	case animation.Running, animation.Finished:
		depth, _ := cv.ctrl.Generation()
		return fmt.Sprintf("%s: generation %d/%d, %d points | Space clear | q quit",
			cv.ctrl.State(), depth, cv.ctrl.MaxGenerations(), cv.ctrl.RenderPoints().N())
	}
	return "Click to add control points | q quit"
}

// Run polls terminal events and ticks the controller until the user quits
// or ctx is cancelled. Run does not finalize the screen.
func (cv *Canvas) Run(ctx context.Context) error {
	cv.screen.EnableMouse()
	w, h := cv.Size()
	cv.ctrl.Handle(animation.ResizeEvent{Width: w, Height: h})
	ticker := time.NewTicker(cv.settings.FrameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	var poller sync.WaitGroup
	poller.Add(1)
	go func() {
		defer poller.Done()
		for {
			ev := cv.screen.PollEvent()
			if ev == nil { // screen finalized
				close(events)
				return
			}
			select {
			case <-done:
				return
			default:
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	defer func() {
		close(done)
		// wake up the poller; a full queue wakes it up as well
		_ = cv.screen.PostEvent(tcell.NewEventInterrupt(nil))
		poller.Wait()
	}()

	cv.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !cv.HandleEvent(ev) {
				tracer().Infof("quit")
				return nil
			}
			cv.Draw()
		case <-ticker.C:
			cv.ctrl.Handle(animation.TickEvent{})
			cv.Draw()
		}
	}
}
