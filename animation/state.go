// Package animation drives the interactive capture of control points and
// the frame-by-frame playback of their Chaikin generations.
/*
The Controller is a small state machine:

	Idle ──add──▶ Capturing ──start (≥2 points)──▶ Running ──last frame──▶ Finished
	  ▲               │                               │                      │
	  └── Cleared ◀───┴────────── clear ──────────────┴──────────────────────┘

Cleared behaves exactly like Idle. Calls which are not allowed in the current
state are no-ops: stray clicks or keys never corrupt the animation. Such
calls are traced with key 'animation'.

The controller does not know about windows, pixels or timers. A host
collaborator feeds it input events and a frame tick, and after each frame
asks for the points (or segments) to draw.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package animation

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'animation'
func tracer() tracing.Trace {
	return tracing.Select("animation")
}

// State is the state of an animation controller.
type State uint8

// States of the controller.
const (
	Idle State = iota
	Capturing
	Running
	Finished
	Cleared
)

var stateNames = [...]string{"Idle", "Capturing", "Running", "Finished", "Cleared"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "<unknown>"
}

// acceptsPoints is a predicate: may control points be added or moved?
func (s State) acceptsPoints() bool {
	return s == Idle || s == Capturing || s == Cleared
}

// isPlaying is a predicate: are there generations to show?
func (s State) isPlaying() bool {
	return s == Running || s == Finished
}
