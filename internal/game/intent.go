package game

import "math"

// Pointer is an absolute target position in playfield units, as produced by a
// mouse or touch.
type Pointer struct {
	X, Y float64
}

// Intent is the input sampled at the start of a tick. The zero value is a
// neutral intent.
type Intent struct {
	H, V     int      // Per-axis direction: -1, 0 or 1
	Pointer  *Pointer // When set, the ship follows it instead of H and V
	Fire     bool     // Fire was pressed this tick
	FireHeld bool     // Fire is being held down
	Restart  bool
}

// normalized maps out-of-range or unusable values to neutral ones.
func (in Intent) normalized() Intent {
	in.H = unit(in.H)
	in.V = unit(in.V)
	if p := in.Pointer; p != nil && !finite(p.X, p.Y) {
		in.Pointer = nil
	}
	if in.Fire {
		in.FireHeld = true
	}
	return in
}

func unit(v int) int {
	if v < -1 || v > 1 {
		return 0
	}
	return v
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
