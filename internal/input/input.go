// Package input turns raw terminal bytes into per-frame key and mouse state.
package input

import (
	"bufio"
	"bytes"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// maxPending bounds how many bytes of an unfinished escape sequence are kept
// between reads.
const maxPending = 32

// MouseAction is the kind of a mouse report.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseDrag
	MouseRelease
)

// MouseEvent is a left-button report. Col and Row are 1-based terminal cells.
type MouseEvent struct {
	Action MouseAction
	Col    int
	Row    int
}

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool // Held
	Right   bool // Held
	Shots   int  // Space presses this frame
	Enter   bool
	Restart bool
	Mouse   []MouseEvent
	Pressed []byte
}

// Any reports whether anything was received this frame.
func (in Input) Any() bool {
	return len(in.Pressed) > 0
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
}

// Stream delivers input bytes via a channel and tracks key state for held keys.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Unfinished escape sequence from the previous read
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
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

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	var buf []byte
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				s.ch = nil
				return s.feed(buf, time.Now())
			}
			buf = append(buf, b)
		default:
			return s.feed(buf, time.Now())
		}
	}
}

// Reset forgets held keys, so a key pressed before a scene change does not
// leak into the next one.
func (s *Stream) Reset() {
	s.state = keyState{}
}

// feed parses buf, prefixed by any unfinished sequence from the last call.
func (s *Stream) feed(buf []byte, now time.Time) Input {
	if len(s.pending) > 0 {
		buf = append(s.pending, buf...)
		s.pending = nil
	}

	in := Input{Pressed: buf}
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			applyByte(&s.state, &in, b, now)
			continue
		}

		n, complete := s.parseEscape(buf[i:], &in, now)
		if !complete {
			if rest := buf[i:]; len(rest) <= maxPending {
				s.pending = append([]byte(nil), rest...)
			}
			break
		}
		i += n - 1
	}

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	return in
}

// parseEscape handles the escape sequence at the start of seq and returns how
// many bytes it consumed. complete is false when seq ends mid-sequence.
func (s *Stream) parseEscape(seq []byte, in *Input, now time.Time) (n int, complete bool) {
	if len(seq) < 2 {
		return 0, false
	}
	if seq[1] != '[' {
		return 1, true // Bare escape
	}
	if len(seq) < 3 {
		return 0, false
	}

	switch seq[2] {
	case 'C':
		s.state.right = now
		return 3, true
	case 'D':
		s.state.left = now
		return 3, true
	case 'A', 'B':
		return 3, true
	case '<':
		end := bytes.IndexAny(seq[3:], "Mm")
		if end < 0 {
			return 0, false
		}
		if ev, ok := parseSGRMouse(seq[3:3+end], seq[3+end]); ok {
			in.Mouse = append(in.Mouse, ev)
		}
		return 3 + end + 1, true
	}
	return 2, true
}

// parseSGRMouse parses the "b;x;y" body of an SGR mouse report. Only the left
// button is reported.
func parseSGRMouse(body []byte, final byte) (MouseEvent, bool) {
	parts := bytes.Split(body, []byte{';'})
	if len(parts) != 3 {
		return MouseEvent{}, false
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(string(p))
		if err != nil {
			return MouseEvent{}, false
		}
		v[i] = n
	}
	btn, col, row := v[0], v[1], v[2]
	if btn&3 != 0 || btn&64 != 0 { // Other buttons and wheel
		return MouseEvent{}, false
	}

	ev := MouseEvent{Col: col, Row: row}
	switch {
	case final == 'm':
		ev.Action = MouseRelease
	case btn&32 != 0:
		ev.Action = MouseDrag
	default:
		ev.Action = MousePress
	}
	return ev, true
}

// applyByte updates the frame input and key state for a single byte.
func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'a', 'A', 'j', 'J', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ':
		in.Shots++
	case '\n', '\r':
		in.Enter = true
	case 'r', 'R':
		in.Restart = true
	}
}
