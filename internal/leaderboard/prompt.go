package leaderboard

import "fmt"

// Prompt is the game-over identifier field and the status of its
// submission. It is driven from a frame loop and never blocks.
type Prompt struct {
	editing   bool
	id        []byte
	pending   <-chan Result
	submitted bool
	message   string
}

// Begin opens the field prefilled with defaultID.
func (p *Prompt) Begin(defaultID string) {
	p.editing = true
	p.message = ""
	p.id = p.id[:0]
	p.Type([]byte(defaultID))
}

// Type appends printable ASCII bytes, up to MaxIDLength.
func (p *Prompt) Type(b []byte) {
	for _, c := range b {
		if len(p.id) >= MaxIDLength {
			return
		}
		if c >= 0x20 && c <= 0x7e {
			p.id = append(p.id, c)
		}
	}
}

// Backspace removes the last byte.
func (p *Prompt) Backspace() {
	if len(p.id) > 0 {
		p.id = p.id[:len(p.id)-1]
	}
}

// Cancel closes the field without submitting.
func (p *Prompt) Cancel() {
	p.editing = false
}

// Editing reports whether the field is open.
func (p *Prompt) Editing() bool { return p.editing }

// ID returns the identifier typed so far.
func (p *Prompt) ID() string { return string(p.id) }

// Message returns the latest status line, if any.
func (p *Prompt) Message() string { return p.message }

// Pending reports whether a submission is in flight.
func (p *Prompt) Pending() bool { return p.pending != nil }

// Submitted reports whether the score was stored.
func (p *Prompt) Submitted() bool { return p.submitted }

// CanSubmit reports whether a new submission may be started.
func (p *Prompt) CanSubmit() bool {
	return !p.editing && !p.submitted && p.pending == nil
}

// Submit closes the field and hands score to s. A nil submitter only sets
// the status line. The result is picked up by Poll.
func (p *Prompt) Submit(s *Submitter, score int) {
	p.editing = false
	if s == nil {
		p.message = "Leaderboard unavailable"
		return
	}
	p.pending = s.Submit(string(p.id), score)
	p.message = "Submitting..."
}

// Reset drops the field and any pending result. A submission in flight
// still completes; its result is discarded.
func (p *Prompt) Reset() {
	*p = Prompt{id: p.id[:0]}
}

// Poll checks for a submission result without blocking.
func (p *Prompt) Poll() {
	if p.pending == nil {
		return
	}
	select {
	case res, ok := <-p.pending:
		p.pending = nil
		switch {
		case !ok:
			p.message = "Submission lost"
		case res.Err != nil:
			p.message = "Not submitted: " + res.Err.Error()
		default:
			p.submitted = true
			p.message = fmt.Sprintf("Saved as %s, rank #%d", res.Entry.ID, res.Rank)
		}
	default:
	}
}
