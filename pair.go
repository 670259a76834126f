/*
Package chaikin implements points, point sequences, affine transformations
and Chaikin's corner-cutting subdivision for open polylines.

A sequence of control points is smoothed by repeatedly cutting its corners:
every edge (P.i, P.i+1) is replaced by two points at 1/4 and 3/4 along the
edge. Each pass is called a generation; generation 0 are the control
points themselves.

	seed := chaikin.Sequence{chaikin.P(0, 0), chaikin.P(10, 0), chaikin.P(10, 10)}
	gens := chaikin.GenerateChain(seed, 5)
	fmt.Println(chaikin.AsString(gens[1].Points))
	// (2.5,0) .. (7.5,0) .. (10,2.5) .. (10,7.5)

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package chaikin

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'chaikin'
func tracer() tracing.Trace {
	return tracing.Select("chaikin")
}

// === Numeric Data Type =====================================================

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// ErrInvalidPoint indicates a point coordinate contains NaN/Inf.
var ErrInvalidPoint = errors.New("point has invalid coordinate")

// ErrMalformedPoint is returned by ParseSequence for unreadable input.
var ErrMalformedPoint = errors.New("malformed point")

// === Pair Data Type ========================================================

// Pair is a 2D-point. Pairs are immutable values.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(0, 0)

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// F is a quick notation for getting float values from a pair.
func (p Pair) F() (float64, float64) {
	return real(p), imag(p)
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// Equal compares two pairs, tolerating differences below Epsilon.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Identical is exact-value comparison of two pairs.
func (p Pair) Identical(p2 Pair) bool {
	return p.X() == p2.X() && p.Y() == p2.Y()
}

// IsValid is a predicate: are both coordinates finite numbers?
func (p Pair) IsValid() bool {
	x, y := p.F()
	return !math.IsNaN(x) && !math.IsNaN(y) && !math.IsInf(x, 0) && !math.IsInf(y, 0)
}

// Lerp returns the point t of the way from p to q.
//
// Coordinates are interpolated separately, so infinite coordinates of one
// axis never leak into the other one (as they would with complex
// multiplication).
func (p Pair) Lerp(q Pair, t float64) Pair {
	x := p.X() + t*(q.X()-p.X())
	y := p.Y() + t*(q.Y()-p.Y())
	return P(x, y)
}

// Distance returns the euclidean distance between p and q.
func (p Pair) Distance(q Pair) float64 {
	return math.Hypot(q.X()-p.X(), q.Y()-p.Y())
}

// Shifted returns a new pair translated by v.
func (p Pair) Shifted(v Pair) Pair {
	return Translation(v).Transform(p)
}

// === Sequences =============================================================

// Sequence is an ordered sequence of points, interpreted as an open
// polyline. Sequences with fewer than 2 points are degenerate.
type Sequence []Pair

// N returns the number of points.
func (seq Sequence) N() int {
	return len(seq)
}

// IsDegenerate is a predicate: does seq have no defined curve?
func (seq Sequence) IsDegenerate() bool {
	return len(seq) < 2
}

// Copy returns a copy of seq which does not share storage with it.
// The copy of an empty sequence is an empty, non-nil sequence.
func (seq Sequence) Copy() Sequence {
	c := make(Sequence, len(seq))
	copy(c, seq)
	return c
}

// Identical compares two sequences point by point, by exact value.
func (seq Sequence) Identical(other Sequence) bool {
	if len(seq) != len(other) {
		return false
	}
	for i := range seq {
		if !seq[i].Identical(other[i]) {
			return false
		}
	}
	return true
}

// Validate checks every point for NaN/Inf coordinates.
func (seq Sequence) Validate() error {
	for i, p := range seq {
		if !p.IsValid() {
			return fmt.Errorf("%w at point %d", ErrInvalidPoint, i)
		}
	}
	return nil
}

// AsString returns a sequence as a (debugging) string, in the notation
// of MetaFont/MetaPost paths:
//
//	(0,0) .. (10,0) .. (10,10)
func AsString(seq Sequence) string {
	var b strings.Builder
	for i, p := range seq {
		if i > 0 {
			b.WriteString(" .. ")
		}
		b.WriteString(p.String())
	}
	return b.String()
}

// ParseSequence reads points from a string of blank-separated "x,y"
// tokens, e.g. "0,0 10,0 10,10".
func ParseSequence(s string) (Sequence, error) {
	fields := strings.Fields(s)
	seq := make(Sequence, 0, len(fields))
	for i, f := range fields {
		xy := strings.Split(f, ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("%w %q at position %d", ErrMalformedPoint, f, i)
		}
		x, err := strconv.ParseFloat(xy[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w %q at position %d: %v", ErrMalformedPoint, f, i, err)
		}
		y, err := strconv.ParseFloat(xy[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w %q at position %d: %v", ErrMalformedPoint, f, i, err)
		}
		seq = append(seq, P(x, y))
	}
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	return seq, nil
}

// MustParseSequence is a helper which panics on malformed input.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic(err)
	}
	return seq
}

// === Affine Transformations ================================================

// AT is an affine transform, a matrix type used for transforming vectors.
type AT []float64 // a 3x3 matrix, flattened by rows

// Internal constructor. Clients implicitely use this as a starting point for
// transform combinations.
func newAT() AT {
	m := make([]float64, 9)
	return m
}

func (m AT) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*3 : (row+1)*3]
}

func (m AT) col(col int) []float64 {
	c := make([]float64, 3)
	c[0] = m[col]
	c[1] = m[3+col]
	c[2] = m[6+col]
	return c
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// Translation transform. Translate a point by (dx,dy).
func Translation(p Pair) AT {
	m := Identity()
	m.set(0, 2, p.X())
	m.set(1, 2, p.Y())
	return m
}

// Scaling transform. Scale a point by sx horizontally and sy vertically,
// relative to the origin.
func Scaling(sx, sy float64) AT {
	m := Identity()
	m.set(0, 0, sx)
	m.set(1, 1, sy)
	return m
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	s := fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
	return s
}

// v1 × v2, v.n = [a,b,c]
func dotProd(vec1, vec2 []float64) float64 {
	p1 := vec1[0] * vec2[0]
	p2 := vec1[1] * vec2[1]
	p3 := vec1[2] * vec2[2]
	return p1 + p2 + p3
}

// Combine 2 affine transformation to a new one: n is applied after m.
// Returns a new transformation without changing the argument(s).
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

// Transform a 2D-point. The argument is unchanged and a new pair is returned.
func (m AT) Transform(p Pair) Pair {
	v := []float64{p.X(), p.Y(), 1.0}
	return P(dotProd(m.row(0), v), dotProd(m.row(1), v))
}

// TransformAll transforms every point of a sequence into a new sequence.
func (m AT) TransformAll(seq Sequence) Sequence {
	out := make(Sequence, len(seq))
	for i, p := range seq {
		out[i] = m.Transform(p)
	}
	return out
}
