package input

import (
	"testing"
	"time"

	"github.com/tomz197/skydodge/internal/game"
)

func TestParseArrowsAndHold(t *testing.T) {
	var s Stream
	now := time.Unix(100, 0)

	in := s.parse([]byte("\x1b[D\x1b[A"), now)
	if !in.Left || !in.Up || in.Right || in.Down {
		t.Fatalf("arrows = %+v", in)
	}
	if in.Escape {
		t.Fatal("CSI sequence reported as escape")
	}
	if len(in.Pressed) != 0 {
		t.Fatalf("arrow bytes leaked into text: %q", in.Pressed)
	}

	in = s.parse(nil, now.Add(HoldWindow/2))
	if !in.Left || !in.Up {
		t.Fatal("keys should stay held inside the hold window")
	}
	in = s.parse(nil, now.Add(HoldWindow))
	if in.Left || in.Up {
		t.Fatal("keys should release after the hold window")
	}
}

func TestParseDiscreteKeys(t *testing.T) {
	var s Stream
	now := time.Unix(100, 0)

	in := s.parse([]byte(" rQ\r\x7f"), now)
	if !in.Fire || !in.FireHeld || !in.Restart || !in.Quit || !in.Enter || !in.Backspace {
		t.Fatalf("discrete keys = %+v", in)
	}
	if string(in.Pressed) != " rQ" {
		t.Fatalf("pressed = %q", in.Pressed)
	}
	if in.Interrupt {
		t.Fatal("q is not an interrupt")
	}
	if in = s.parse([]byte{0x03}, now); !in.Quit || !in.Interrupt {
		t.Fatalf("ctrl+c = %+v", in)
	}

	in = s.parse(nil, now.Add(time.Millisecond))
	if in.Fire || in.Restart || !in.FireHeld {
		t.Fatalf("presses must last one frame, holds longer: %+v", in)
	}

	in = s.parse([]byte{'\x1b'}, now)
	if !in.Escape {
		t.Fatal("lone ESC should be escape")
	}
}

func TestIntent(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want game.Intent
	}{
		{"neutral", Input{}, game.Intent{}},
		{"left up", Input{Left: true, Up: true}, game.Intent{H: -1, V: -1}},
		{"opposites cancel", Input{Left: true, Right: true, Down: true}, game.Intent{V: 1}},
		{"fire", Input{Fire: true, FireHeld: true}, game.Intent{Fire: true, FireHeld: true}},
		{"restart", Input{Restart: true}, game.Intent{Restart: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Intent(); got != tc.want {
				t.Fatalf("Intent() = %+v, want %+v", got, tc.want)
			}
		})
	}
}
