package chaikin

import "fmt"

// Corner-cutting ratios of the classic Chaikin scheme.
const (
	nearCut = 0.25
	farCut  = 0.75
)

// Subdivide performs one pass of Chaikin's corner-cutting algorithm on an
// open polyline. For every edge (P.i, P.i+1) two points are emitted,
//
//	Q.i = P.i + 1/4 (P.i+1 - P.i)
//	R.i = P.i + 3/4 (P.i+1 - P.i)
//
// in traversal order Q.0, R.0, Q.1, R.1, ... The end points of the input are
// not retained. For an input of k ≥ 2 points the result has exactly
// 2(k-1) points. Degenerate inputs (0 or 1 points) are returned unchanged.
//
// Subdivide does not modify seq.
func Subdivide(seq Sequence) Sequence {
	if seq.IsDegenerate() {
		return seq
	}
	out := make(Sequence, 0, 2*(len(seq)-1))
	for i := 0; i < len(seq)-1; i++ {
		p, q := seq[i], seq[i+1]
		out = append(out, p.Lerp(q, nearCut), p.Lerp(q, farCut))
	}
	return out
}

// Generation is a point sequence tagged with the number of subdivision
// passes which produced it. Depth 0 holds the control points.
type Generation struct {
	Depth  int
	Points Sequence
}

func (g Generation) String() string {
	return fmt.Sprintf("gen[%d] #%d", g.Depth, len(g.Points))
}

// GenerateChain applies Subdivide repeatedly, starting with seed as
// generation 0. The result always has maxDepth+1 entries (negative values
// for maxDepth count as 0). Generation 0 is a copy of seed.
//
// If a generation has fewer than 2 points, no further subdivision is
// possible; all remaining generations repeat its points, so that the
// length of the chain stays predictable for clients.
func GenerateChain(seed Sequence, maxDepth int) []Generation {
	return NewChain(seed).Generations(maxDepth)
}

// Chain is a generation cache for one seed sequence. Generations are
// computed on demand and memoized; generation n+1 is derived solely from
// generation n.
//
// The zero value is not usable, create chains with NewChain.
type Chain struct {
	gens []Generation
}

// NewChain creates a generation cache for a seed sequence. The seed is
// copied, later changes to it do not affect the chain.
func NewChain(seed Sequence) *Chain {
	return &Chain{
		gens: []Generation{{Depth: 0, Points: seed.Copy()}},
	}
}

// Depth returns the depth of the deepest generation computed so far.
func (c *Chain) Depth() int {
	return len(c.gens) - 1
}

// At returns generation depth, computing and caching all generations up
// to it. Negative depths return generation 0.
func (c *Chain) At(depth int) Generation {
	if depth < 0 {
		depth = 0
	}
	for c.Depth() < depth {
		last := c.gens[c.Depth()]
		next := Subdivide(last.Points) // degenerate points repeat unchanged
		c.gens = append(c.gens, Generation{Depth: last.Depth + 1, Points: next})
		tracer().Debugf("subdivided %s -> %s", last, c.gens[c.Depth()])
	}
	return c.gens[depth]
}

// Generations returns generations 0 … maxDepth, computing the missing
// ones. The returned slice is a fresh copy of the cache index; the point
// sequences themselves are shared and must be treated as immutable.
func (c *Chain) Generations(maxDepth int) []Generation {
	if maxDepth < 0 {
		maxDepth = 0
	}
	c.At(maxDepth)
	gens := make([]Generation, maxDepth+1)
	copy(gens, c.gens[:maxDepth+1])
	return gens
}
