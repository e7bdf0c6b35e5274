// Package surface is the rendering and input boundary of the simulations.
//
// A Surface owns one window (or terminal) and is driven from a single
// loop goroutine. Drawing calls are fire-and-forget: nothing they return
// is consulted by the simulation. Opening a surface is the only fallible
// operation and reports dynamo.ErrInitialization.
package surface

import "fmt"

type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 255} }

func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

var (
	Black = RGB(0, 0, 0)
	White = RGB(255, 255, 255)
	Red   = RGB(255, 0, 0)
	Green = RGB(0, 255, 0)
	Blue  = RGB(0, 0, 255)
)

type EventKind int

const (
	EventQuit EventKind = iota + 1
	EventPointerDown
	EventKeyDown
)

func (k EventKind) String() string {
	switch k {
	case EventQuit:
		return "quit"
	case EventPointerDown:
		return "pointer-down"
	case EventKeyDown:
		return "key-down"
	default:
		return "unknown"
	}
}

// Event is one queued input event. X and Y are window pixels for
// pointer events; Key names the key for key events.
type Event struct {
	Kind EventKind
	X, Y int
	Key  string
}

func Quit() Event                { return Event{Kind: EventQuit} }
func PointerDown(x, y int) Event { return Event{Kind: EventPointerDown, X: x, Y: y} }
func KeyDown(key string) Event   { return Event{Kind: EventKeyDown, Key: key} }

type Surface interface {
	// PollEvent never blocks. It returns false once the queued events of
	// the current frame are drained.
	PollEvent() (Event, bool)
	SetDrawColor(c Color)
	// Clear fills the frame with the current draw color.
	Clear()
	DrawPoint(x, y int)
	DrawLine(x0, y0, x1, y1 int)
	FillRect(x, y, w, h int)
	Present()
	// Delay blocks for ms milliseconds.
	Delay(ms int)
	Close() error
}

// ParseHex parses "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (Color, error) {
	c := Color{A: 255}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = fmt.Errorf("want #rrggbb")
	}
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}
