package game

// trigger is the firing controller. A press always fires; while rapid fire
// is active, holding fire repeats at most once per cooldown.
type trigger struct {
	cooldown int // Ticks until a held shot is allowed
}

func (t *trigger) pull(in Intent, rapid bool, cooldown int) bool {
	if t.cooldown > 0 {
		t.cooldown--
	}
	switch {
	case in.Fire:
	case rapid && in.FireHeld && t.cooldown == 0:
	default:
		return false
	}
	t.cooldown = cooldown
	return true
}
