package sim

import (
	"github.com/san-kum/dynviz/internal/dynamo"
	"github.com/san-kum/dynviz/internal/surface"
)

// Phase is the loop state. STOPPED is terminal.
type Phase int

const (
	Running Phase = iota
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "RUNNING"
	case Stopped:
		return "STOPPED"
	}
	return "UNKNOWN"
}

// Scene is one simulation context: it owns its state and knows how to
// advance, draw and react to input.
type Scene interface {
	Advance() error
	Draw(s surface.Surface)
	HandleEvent(ev surface.Event)
	Time() float64
	States() []dynamo.State
}

// Observer is notified after every advanced frame. States must not be
// retained past the call.
type Observer interface {
	OnFrame(frame int, t float64, states []dynamo.State)
}

type ObserverFunc func(frame int, t float64, states []dynamo.State)

func (f ObserverFunc) OnFrame(frame int, t float64, states []dynamo.State) { f(frame, t, states) }
