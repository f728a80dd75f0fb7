// Package physics holds the geometry behind collision checks: circle tests,
// clamping and a broad-phase grid.
package physics

func distSq(x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	return dx*dx + dy*dy
}

// PointInCircle reports whether (px, py) lies strictly inside the circle of
// radius r around (cx, cy). The center always counts as inside.
func PointInCircle(px, py, cx, cy, r float64) bool {
	return distSq(px, py, cx, cy) < r*r
}

// CirclesOverlap reports whether two circles intersect. Touching circles
// do not overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	reach := r1 + r2
	return distSq(x1, y1, x2, y2) < reach*reach
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
