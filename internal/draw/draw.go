package draw

import "math"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// FitAspect returns the largest terminal area (columns, rows) inside
// maxCols x maxRows that shows a logicalW x logicalH field undistorted.
// A terminal cell holds two square sub-pixels stacked vertically.
func FitAspect(maxCols, maxRows int, logicalW, logicalH float64) (cols, rows int) {
	if maxCols <= 0 || maxRows <= 0 || logicalW <= 0 || logicalH <= 0 {
		return 0, 0
	}
	aspect := logicalW / logicalH
	cols = int(math.Floor(float64(maxRows*2) * aspect))
	rows = maxRows
	if cols > maxCols {
		cols = maxCols
		rows = int(math.Floor(float64(cols) / aspect / 2))
	}
	return max(cols, 1), max(rows, 1)
}

// ProgressBar renders a bar of width cells filled to value/total.
func ProgressBar(value, total, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if total > 0 {
		filled = min(width, max(0, value*width/total))
	}
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = BlockFull
		} else {
			bar[i] = BlockLight
		}
	}
	return string(bar)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
