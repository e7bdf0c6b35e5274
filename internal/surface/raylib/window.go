// Package raylib renders a surface.Surface into a native raylib window.
// It is the only package that links raylib and therefore needs cgo.
package raylib

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/dynviz/internal/dynamo"
	"github.com/san-kum/dynviz/internal/surface"
)

var _ surface.Surface = (*Window)(nil)

// Window is a native window backed by raylib. Input is gathered once per
// frame, when Present ends the drawing pass.
type Window struct {
	color   color.RGBA
	drawing bool
	queue   []surface.Event
	polled  bool
}

// Open creates the window. It fails when raylib cannot bring up a
// display.
func Open(title string, width, height int) (*Window, error) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(width), int32(height), title)
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("raylib window %q (%dx%d): %w", title, width, height, dynamo.ErrInitialization)
	}
	rl.SetExitKey(0)
	return &Window{color: rl.White}, nil
}

func (w *Window) PollEvent() (surface.Event, bool) {
	if !w.polled {
		w.collect()
		w.polled = true
	}
	if len(w.queue) == 0 {
		w.polled = false
		return surface.Event{}, false
	}
	ev := w.queue[0]
	w.queue = w.queue[1:]
	return ev, true
}

func (w *Window) collect() {
	if rl.WindowShouldClose() {
		w.queue = append(w.queue, surface.Quit())
	}
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		switch key {
		case rl.KeyQ, rl.KeyEscape:
			w.queue = append(w.queue, surface.Quit())
		default:
			w.queue = append(w.queue, surface.KeyDown(keyName(key)))
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		w.queue = append(w.queue, surface.PointerDown(int(rl.GetMouseX()), int(rl.GetMouseY())))
	}
}

func keyName(key int32) string {
	if key >= rl.KeyA && key <= rl.KeyZ {
		return string(rune('a' + key - rl.KeyA))
	}
	if key >= rl.KeyZero && key <= rl.KeyNine {
		return string(rune('0' + key - rl.KeyZero))
	}
	switch key {
	case rl.KeySpace:
		return "space"
	case rl.KeyEnter:
		return "enter"
	}
	return fmt.Sprintf("key%d", key)
}

func (w *Window) begin() {
	if !w.drawing {
		rl.BeginDrawing()
		w.drawing = true
	}
}

func (w *Window) SetDrawColor(c surface.Color) {
	w.color = rl.NewColor(c.R, c.G, c.B, c.A)
}

func (w *Window) Clear() {
	w.begin()
	rl.ClearBackground(w.color)
}

func (w *Window) DrawPoint(x, y int) {
	w.begin()
	rl.DrawPixel(int32(x), int32(y), w.color)
}

func (w *Window) DrawLine(x0, y0, x1, y1 int) {
	w.begin()
	rl.DrawLine(int32(x0), int32(y0), int32(x1), int32(y1), w.color)
}

func (w *Window) FillRect(x, y, w, h int) {
	w.begin()
	rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), w.color)
}

func (w *Window) Present() {
	w.begin()
	rl.EndDrawing()
	w.drawing = false
}

func (w *Window) Delay(ms int) {
	rl.WaitTime(float64(ms) / 1000)
}

func (w *Window) Close() error {
	if w.drawing {
		rl.EndDrawing()
		w.drawing = false
	}
	rl.CloseWindow()
	return nil
}
