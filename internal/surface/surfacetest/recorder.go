// Package surfacetest provides a scripted, recording Surface for tests.
package surfacetest

import (
	"fmt"

	"github.com/san-kum/dynviz/internal/surface"
)

// Call is one recorded drawing operation.
type Call struct {
	Op    string
	Args  []int
	Color surface.Color
}

func (c Call) String() string { return fmt.Sprintf("%s%v %s", c.Op, c.Args, c.Color.Hex()) }

// Recorder replays Frames[i] as the event queue of the i-th poll cycle
// and records every call made against it.
type Recorder struct {
	Frames [][]surface.Event

	Calls    []Call
	Presents int
	Delays   []int
	Polls    int
	Closed   bool

	color surface.Color
	cycle int
	queue []surface.Event
	open  bool
}

func New(frames ...[]surface.Event) *Recorder {
	return &Recorder{Frames: frames, color: surface.White}
}

func (r *Recorder) PollEvent() (surface.Event, bool) {
	r.Polls++
	if !r.open {
		if r.cycle < len(r.Frames) {
			r.queue = append(r.queue[:0], r.Frames[r.cycle]...)
		}
		r.cycle++
		r.open = true
	}
	if len(r.queue) == 0 {
		r.open = false
		return surface.Event{}, false
	}
	ev := r.queue[0]
	r.queue = r.queue[1:]
	return ev, true
}

func (r *Recorder) record(op string, args ...int) {
	r.Calls = append(r.Calls, Call{Op: op, Args: args, Color: r.color})
}

func (r *Recorder) SetDrawColor(c surface.Color) { r.color = c }
func (r *Recorder) Clear()                        { r.record("clear") }
func (r *Recorder) DrawPoint(x, y int)            { r.record("point", x, y) }
func (r *Recorder) DrawLine(x0, y0, x1, y1 int)   { r.record("line", x0, y0, x1, y1) }
func (r *Recorder) FillRect(x, y, w, h int)       { r.record("rect", x, y, w, h) }
func (r *Recorder) Present()                      { r.Presents++; r.record("present") }
func (r *Recorder) Delay(ms int)                  { r.Delays = append(r.Delays, ms) }

func (r *Recorder) Close() error {
	r.Closed = true
	return nil
}

// Ops returns the recorded calls with the given op name.
func (r *Recorder) Ops(op string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset drops recorded calls but keeps the event script position.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Presents = 0
	r.Delays = nil
}
