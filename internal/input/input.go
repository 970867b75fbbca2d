// Package input turns raw terminal bytes into viewer actions.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a direction key counts as held after its last
// byte arrived. Terminals repeat held keys, so this bridges the gaps.
const keyHoldDuration = 60 * time.Millisecond

// Action is a one-shot command triggered by a key press.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionStep
	ActionSpawn
	ActionExplode
	ActionReset
	ActionGrow
	ActionShrink
	ActionFaster
	ActionSlower
	ActionZoomIn
	ActionZoomOut
	ActionRecenter
	ActionHelp
	ActionConfirm
)

var actionNames = [...]string{
	ActionNone:     "none",
	ActionQuit:     "quit",
	ActionPause:    "pause",
	ActionStep:     "step",
	ActionSpawn:    "spawn",
	ActionExplode:  "explode",
	ActionReset:    "reset",
	ActionGrow:     "grow",
	ActionShrink:   "shrink",
	ActionFaster:   "faster",
	ActionSlower:   "slower",
	ActionZoomIn:   "zoom-in",
	ActionZoomOut:  "zoom-out",
	ActionRecenter: "recenter",
	ActionHelp:     "help",
	ActionConfirm:  "confirm",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

var keyActions = map[byte]Action{
	'q': ActionQuit, 'Q': ActionQuit, 0x03: ActionQuit, // ctrl-c
	' ': ActionPause, 'p': ActionPause, 'P': ActionPause,
	'n': ActionStep, 'N': ActionStep, '.': ActionStep,
	'c': ActionSpawn, 'C': ActionSpawn,
	'x': ActionExplode, 'X': ActionExplode,
	'r': ActionReset, 'R': ActionReset,
	'+': ActionGrow, '=': ActionGrow,
	'-': ActionShrink, '_': ActionShrink,
	']': ActionFaster, '[': ActionSlower,
	'z': ActionZoomIn, 'Z': ActionZoomOut,
	'0': ActionRecenter,
	'?': ActionHelp, 'h': ActionHelp,
	'\r': ActionConfirm, '\n': ActionConfirm,
}

// Input is one frame's worth of input.
type Input struct {
	Actions []Action // in the order they were typed
	Left    bool     // direction keys currently held
	Right   bool
	Up      bool
	Down    bool
	Pressed []byte // raw bytes read this frame
}

// Has reports whether a was triggered this frame.
func (in Input) Has(a Action) bool {
	for _, got := range in.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Active reports whether any key arrived this frame.
func (in Input) Active() bool {
	return len(in.Pressed) > 0
}

// keyState tracks when each direction was last seen.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
}

// Stream delivers input bytes via a channel and remembers held directions.
type Stream struct {
	ch    chan byte
	state keyState
	buf   []byte
}

// StartStream spawns a goroutine that reads from r into the stream.
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

// ReadInput drains available bytes without blocking and parses them. A
// closed stream reports ActionQuit.
func ReadInput(s *Stream) Input {
	s.buf = s.buf[:0]
	closed := false
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			s.buf = append(s.buf, b)
		default:
			break drain
		}
	}
	in := parse(&s.state, s.buf, time.Now())
	if closed {
		in.Actions = append(in.Actions, ActionQuit)
	}
	return in
}

// Reset forgets held directions.
func (s *Stream) Reset() {
	s.state = keyState{}
}

// parse turns raw bytes into an Input, updating the held-key state.
func parse(state *keyState, buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		// CSI arrow keys: ESC [ A..D
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if dir := arrow(state, buf[i+2]); dir != nil {
				*dir = now
				i += 2
				continue
			}
		}
		switch b {
		case 'a', 'A':
			state.left = now
		case 'd', 'D':
			state.right = now
		case 'w', 'W':
			state.up = now
		case 's', 'S':
			state.down = now
		default:
			if a, ok := keyActions[b]; ok {
				in.Actions = append(in.Actions, a)
			}
		}
	}
	in.Left = now.Sub(state.left) < keyHoldDuration
	in.Right = now.Sub(state.right) < keyHoldDuration
	in.Up = now.Sub(state.up) < keyHoldDuration
	in.Down = now.Sub(state.down) < keyHoldDuration
	return in
}

func arrow(state *keyState, code byte) *time.Time {
	switch code {
	case 'A':
		return &state.up
	case 'B':
		return &state.down
	case 'C':
		return &state.right
	case 'D':
		return &state.left
	}
	return nil
}
