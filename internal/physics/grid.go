package physics

import "math"

// Grid buckets object indices by position for broad-phase collision checks
// over a bounded field. Queries look at the 3x3 block of cells around a
// point, so the cell size must be at least the largest interaction
// distance. Positions off the field fall into the nearest edge cell, which
// only ever brings objects closer together.
type Grid struct {
	size       float64
	cols, rows int
	buckets    [][]int // Row-major; each bucket keeps insertion order
}

// NewGrid creates a grid over a width x height field.
func NewGrid(width, height, cellSize float64) *Grid {
	cols := max(1, int(math.Ceil(width/cellSize)))
	rows := max(1, int(math.Ceil(height/cellSize)))
	return &Grid{
		size:    cellSize,
		cols:    cols,
		rows:    rows,
		buckets: make([][]int, cols*rows),
	}
}

// CellSize returns the side of one cell.
func (g *Grid) CellSize() float64 {
	return g.size
}

// Reset empties every bucket, keeping their memory.
func (g *Grid) Reset() {
	for i := range g.buckets {
		g.buckets[i] = g.buckets[i][:0]
	}
}

// Add files index under the cell containing (x, y).
func (g *Grid) Add(x, y float64, index int) {
	col, row := g.cellOf(x, y)
	b := row*g.cols + col
	g.buckets[b] = append(g.buckets[b], index)
}

// Lowest returns the smallest index near (x, y) for which match reports
// true, or -1. Indices must be added in ascending order.
func (g *Grid) Lowest(x, y float64, match func(index int) bool) int {
	best := -1
	col, row := g.cellOf(x, y)
	for r := max(row-1, 0); r <= min(row+1, g.rows-1); r++ {
		for c := max(col-1, 0); c <= min(col+1, g.cols-1); c++ {
			for _, i := range g.buckets[r*g.cols+c] {
				if best >= 0 && i >= best {
					break
				}
				if match(i) {
					best = i
					break
				}
			}
		}
	}
	return best
}

func (g *Grid) cellOf(x, y float64) (col, row int) {
	col = clampInt(int(math.Floor(x/g.size)), 0, g.cols-1)
	row = clampInt(int(math.Floor(y/g.size)), 0, g.rows-1)
	return col, row
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
