package chaikin_test

import (
	"fmt"

	"github.com/npillmayer/chaikin"
)

// Smooth an L-shaped polyline and print the first generations.
func ExampleGenerateChain() {
	seed := chaikin.Sequence{chaikin.P(0, 0), chaikin.P(10, 0), chaikin.P(10, 10)}
	for _, gen := range chaikin.GenerateChain(seed, 2) {
		fmt.Printf("%d: %s\n", gen.Depth, chaikin.AsString(gen.Points))
	}
	// Output:
	// 0: (0,0) .. (10,0) .. (10,10)
	// 1: (2.5,0) .. (7.5,0) .. (10,2.5) .. (10,7.5)
	// 2: (3.75,0) .. (6.25,0) .. (8.125,0.625) .. (9.375,1.875) .. (10,3.75) .. (10,6.25)
}
