package input

import (
	"bufio"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestParseActions(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Action
	}{
		{"empty", "", nil},
		{"pause and step", " n", []Action{ActionPause, ActionStep}},
		{"spawn explode", "cx", []Action{ActionSpawn, ActionExplode}},
		{"size", "+-=", []Action{ActionGrow, ActionShrink, ActionGrow}},
		{"time", "][", []Action{ActionFaster, ActionSlower}},
		{"zoom", "zZ0", []Action{ActionZoomIn, ActionZoomOut, ActionRecenter}},
		{"quit", "q", []Action{ActionQuit}},
		{"ctrl-c", "\x03", []Action{ActionQuit}},
		{"unknown ignored", "§y", nil},
		{"arrows are not actions", "\x1b[A\x1b[Dr", []Action{ActionReset}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st keyState
			got := parse(&st, []byte(tt.in), time.Now())
			if !slices.Equal(got.Actions, tt.want) {
				t.Errorf("Actions = %v, want %v", got.Actions, tt.want)
			}
		})
	}
}

func TestParseDirectionsHeld(t *testing.T) {
	var st keyState
	now := time.Now()
	in := parse(&st, []byte("\x1b[Aa"), now)
	if !in.Up || !in.Left || in.Down || in.Right {
		t.Errorf("got = %+v, want up and left", in)
	}

	in = parse(&st, nil, now.Add(keyHoldDuration/2))
	if !in.Up || !in.Left {
		t.Errorf("within hold: got = %+v, want up and left still held", in)
	}
	if in.Active() {
		t.Error("Active() = true with no bytes")
	}

	in = parse(&st, nil, now.Add(2*keyHoldDuration))
	if in.Up || in.Left {
		t.Errorf("after hold: got = %+v, want nothing held", in)
	}
}

func TestParseLoneEscape(t *testing.T) {
	var st keyState
	in := parse(&st, []byte("\x1b"), time.Now())
	if len(in.Actions) != 0 || in.Up || in.Down || in.Left || in.Right {
		t.Errorf("got = %+v, want nothing", in)
	}
}

func TestInputHas(t *testing.T) {
	in := Input{Actions: []Action{ActionSpawn, ActionQuit}}
	if !in.Has(ActionQuit) || in.Has(ActionReset) {
		t.Errorf("Has() wrong for %v", in.Actions)
	}
}

func TestReadInputClosedStreamQuits(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("c")))
	deadline := time.Now().Add(time.Second)
	var seen []Action
	for time.Now().Before(deadline) {
		in := ReadInput(s)
		seen = append(seen, in.Actions...)
		if in.Has(ActionQuit) {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !slices.Equal(seen, []Action{ActionSpawn, ActionQuit}) {
		t.Errorf("actions = %v, want [spawn quit]", seen)
	}
}

func TestActionString(t *testing.T) {
	if got := ActionZoomIn.String(); got != "zoom-in" {
		t.Errorf("String() = %q, want zoom-in", got)
	}
	if got := Action(99).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
}
