// Package input turns raw terminal bytes into per-frame key state.
package input

import (
	"bufio"
	"time"

	"github.com/tomz197/skydodge/internal/game"
)

// HoldWindow is how long a movement or fire key counts as held after its last
// byte. Terminals only report presses and auto-repeats, never releases.
const HoldWindow = 80 * time.Millisecond

// Input is the key state for one frame.
type Input struct {
	Left, Right, Up, Down bool // Held directions
	FireHeld              bool

	// Discrete presses seen during this frame.
	Fire      bool
	Restart   bool
	Quit      bool
	Interrupt bool // Ctrl+C, which also sets Quit
	Enter     bool
	Backspace bool
	Escape    bool

	Pressed []byte // Printable bytes of this frame, for text entry
}

// Active reports whether any key was seen or is still held this frame.
func (in Input) Active() bool {
	return in.Left || in.Right || in.Up || in.Down || in.FireHeld ||
		in.Quit || in.Enter || in.Backspace || in.Escape || len(in.Pressed) > 0
}

// Intent maps the key state to a simulation intent. Opposite directions
// cancel out.
func (in Input) Intent() game.Intent {
	return game.Intent{
		H:        axis(in.Left, in.Right),
		V:        axis(in.Up, in.Down),
		Fire:     in.Fire,
		FireHeld: in.FireHeld,
		Restart:  in.Restart,
	}
}

func axis(neg, pos bool) int {
	switch {
	case neg && !pos:
		return -1
	case pos && !neg:
		return 1
	default:
		return 0
	}
}

// keyState tracks the last time each held key was seen.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
	fire  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for holds.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream without blocking.
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

func (s *Stream) read(now time.Time) Input {
	var buf []byte
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	return s.parse(buf, now)
}

// parse applies buf to the key state and builds the frame's input.
func (s *Stream) parse(buf []byte, now time.Time) Input {
	var in Input
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
			case 'B':
				s.state.down = now
			case 'C':
				s.state.right = now
			case 'D':
				s.state.left = now
			}
			i += 2
			continue
		}

		switch b {
		case 'q', 'Q':
			in.Quit = true
		case 0x03: // Ctrl+C arrives as a byte in raw mode
			in.Quit = true
			in.Interrupt = true
		case 'r', 'R':
			in.Restart = true
		case 'a', 'A', 'h', 'H':
			s.state.left = now
		case 'd', 'D', 'l', 'L':
			s.state.right = now
		case 'w', 'W', 'k', 'K':
			s.state.up = now
		case 's', 'S', 'j', 'J':
			s.state.down = now
		case ' ':
			s.state.fire = now
			in.Fire = true
		case '\n', '\r':
			in.Enter = true
		case '\b', 0x7f:
			in.Backspace = true
		case '\x1b':
			in.Escape = true
		}
		if b >= 0x20 && b < 0x7f {
			in.Pressed = append(in.Pressed, b)
		}
	}

	in.Left = now.Sub(s.state.left) < HoldWindow
	in.Right = now.Sub(s.state.right) < HoldWindow
	in.Up = now.Sub(s.state.up) < HoldWindow
	in.Down = now.Sub(s.state.down) < HoldWindow
	in.FireHeld = now.Sub(s.state.fire) < HoldWindow
	return in
}
