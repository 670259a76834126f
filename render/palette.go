/*
Package render draws the frames of a Chaikin animation.

Rendering is kept outside of the animation controller: the controller
reports points and segments in canvas coordinates, and this package turns
them into pixels. It provides

  - a deterministic palette, colouring segments by their index,
  - bounding boxes and viewport culling of segments,
  - an off-screen rasterizer for RGBA frames,
  - export of a whole animation as an animated GIF.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package render

import (
	"image/color"
	"math/rand"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'render'
func tracer() tracing.Trace {
	return tracing.Select("render")
}

// Colours of non-segment frame elements.
var (
	Background  = color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}
	MarkerColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Palette colours segments by their index. Colours are pseudo-random but
// stable: segment i has the same colour in every frame and every run.
type Palette struct {
	seed   int64
	colors map[int]color.RGBA
}

// NewPalette creates a palette. Palettes with different seeds produce
// different colour sequences.
func NewPalette(seed int64) *Palette {
	return &Palette{seed: seed, colors: make(map[int]color.RGBA)}
}

// SegmentColor returns the colour of the segment at position index.
func (pal *Palette) SegmentColor(index int) color.RGBA {
	if c, ok := pal.colors[index]; ok {
		return c
	}
	rnd := rand.New(rand.NewSource(pal.seed*7919 + int64(index)))
	// keep channels bright enough to show on the dark background
	c := color.RGBA{
		R: uint8(80 + rnd.Intn(176)),
		G: uint8(80 + rnd.Intn(176)),
		B: uint8(80 + rnd.Intn(176)),
		A: 0xff,
	}
	pal.colors[index] = c
	return c
}
