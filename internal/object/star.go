package object

import "math/rand"

// starFall is how far a background star moves per tick.
const starFall = 1.0

// Star is a purely cosmetic background point.
type Star struct {
	X, Y       float64
	Brightness float64
}

// NewStarField scatters count stars over the playfield.
func NewStarField(count int, r *rand.Rand, s Screen) []*Star {
	stars := make([]*Star, 0, count)
	for i := 0; i < count; i++ {
		stars = append(stars, &Star{
			X:          r.Float64() * s.Width,
			Y:          r.Float64() * s.Height,
			Brightness: randRange(r, 100, 255),
		})
	}
	return stars
}

// Advance moves the star down, wrapping to the top at a new x.
func (st *Star) Advance(ctx UpdateContext) {
	st.Y += starFall
	if st.Y > ctx.Screen.Height {
		st.Y = 0
		if ctx.Noise != nil {
			st.X = ctx.Noise.Float64() * ctx.Screen.Width
		}
	}
}

// IsExpired is always false; stars wrap forever.
func (st *Star) IsExpired(Screen) bool {
	return false
}

// Sprite implements Object.
func (st *Star) Sprite() Sprite {
	return Sprite{
		Kind:  KindStar,
		X:     st.X,
		Y:     st.Y,
		Size:  1,
		Alpha: st.Brightness,
	}
}
