package tui

import (
	"math"

	"github.com/Garsondee/Curve-Pass/internal/sim"
)

// Grid maps the field onto a block of terminal cells: columns run along z
// (attacked goal on the right), rows along x with +x at the top.
type Grid struct {
	Left, Top  int
	Cols, Rows int
}

func (g Grid) zSpan() float64 { return sim.Field.MaxZ - sim.Field.MinZ }
func (g Grid) xSpan() float64 { return sim.Field.MaxX - sim.Field.MinX }

// Cell returns the terminal cell containing p and whether it is inside the
// grid.
func (g Grid) Cell(p sim.Vec3) (int, int, bool) {
	if !p.Finite() || g.Cols <= 0 || g.Rows <= 0 {
		return 0, 0, false
	}
	fc := (p.Z - sim.Field.MinZ) / g.zSpan() * float64(g.Cols)
	fr := (sim.Field.MaxX - p.X) / g.xSpan() * float64(g.Rows)
	c := int(math.Floor(fc))
	r := int(math.Floor(fr))
	// The far edges belong to the last cell.
	if c == g.Cols {
		c--
	}
	if r == g.Rows {
		r--
	}
	ok := c >= 0 && r >= 0 && c < g.Cols && r < g.Rows
	return g.Left + c, g.Top + r, ok
}

// World is the pitch point at the centre of terminal cell (x, y) and
// whether the cell lies on the pitch.
func (g Grid) World(x, y int) (sim.Vec3, bool) {
	c, r := x-g.Left, y-g.Top
	p := sim.Vec3{
		Z: sim.Field.MinZ + (float64(c)+0.5)/float64(g.Cols)*g.zSpan(),
		X: sim.Field.MaxX - (float64(r)+0.5)/float64(g.Rows)*g.xSpan(),
	}
	return p, c >= 0 && r >= 0 && c < g.Cols && r < g.Rows
}
