package termcanvas

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/chaikin"
)

// Every terminal cell holds a braille character of 2×4 dots.
const (
	DotsX = 2
	DotsY = 4
)

const brailleBlank = 0x2800

// dot bits of a braille character, indexed by [y][x] within a cell
var brailleBits = [DotsY][DotsX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// dotBuffer is a grid of braille cells. Every cell has a single colour:
// the colour of the dot set last.
type dotBuffer struct {
	cols, rows int // size in cells
	bits       []uint8
	colors     []tcell.Color
}

func newDotBuffer(cols, rows int) *dotBuffer {
	cols, rows = max(cols, 0), max(rows, 0)
	return &dotBuffer{
		cols:   cols,
		rows:   rows,
		bits:   make([]uint8, cols*rows),
		colors: make([]tcell.Color, cols*rows),
	}
}

func (b *dotBuffer) set(x, y int, c tcell.Color) {
	if x < 0 || y < 0 || x >= b.cols*DotsX || y >= b.rows*DotsY {
		return
	}
	i := (y/DotsY)*b.cols + x/DotsX
	b.bits[i] |= brailleBits[y%DotsY][x%DotsX]
	b.colors[i] = c
}

func (b *dotBuffer) plot(p chaikin.Pair, c tcell.Color) {
	b.set(int(math.Round(p.X())), int(math.Round(p.Y())), c)
}

// line sets the dots on the straight line from p to q (DDA).
func (b *dotBuffer) line(p, q chaikin.Pair, c tcell.Color) {
	steps := int(math.Ceil(math.Max(math.Abs(q.X()-p.X()), math.Abs(q.Y()-p.Y()))))
	if steps == 0 {
		b.plot(p, c)
		return
	}
	// lines far outside the canvas are clipped by set, keep the loop bounded
	steps = min(steps, 4*(b.cols*DotsX+b.rows*DotsY))
	for i := 0; i <= steps; i++ {
		b.plot(p.Lerp(q, float64(i)/float64(steps)), c)
	}
}

// flush writes all non-blank cells to the screen.
func (b *dotBuffer) flush(screen tcell.Screen) {
	for i, bits := range b.bits {
		if bits == 0 {
			continue
		}
		style := tcell.StyleDefault.Foreground(b.colors[i])
		screen.SetContent(i%b.cols, i/b.cols, rune(brailleBlank+int(bits)), nil, style)
	}
}
