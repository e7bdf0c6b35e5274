package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/dynviz/internal/dynamo"
	"github.com/san-kum/dynviz/internal/surface"
)

// SVG is a headless surface. Every presented frame replaces the previous
// snapshot and Close writes the last one to disk. It never produces
// input events, so a loop driving it needs a frame limit.
type SVG struct {
	path          string
	width, height int

	color surface.Color
	bg    surface.Color
	body  strings.Builder

	last   string
	frames int
}

// OpenSVG checks that path can be created and returns the surface.
func OpenSVG(path string, width, height int) (*SVG, error) {
	if path == "" {
		return nil, fmt.Errorf("svg: no output path: %w", dynamo.ErrInitialization)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("svg: invalid size %dx%d: %w", width, height, dynamo.ErrInitialization)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("svg: %v: %w", err, dynamo.ErrInitialization)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("svg: %v: %w", err, dynamo.ErrInitialization)
	}

	return &SVG{path: path, width: width, height: height, color: surface.White, bg: surface.Black}, nil
}

func (s *SVG) PollEvent() (surface.Event, bool) { return surface.Event{}, false }

func (s *SVG) SetDrawColor(c surface.Color) { s.color = c }

func (s *SVG) Clear() {
	s.bg = s.color
	s.body.Reset()
}

func (s *SVG) DrawPoint(x, y int) {
	fmt.Fprintf(&s.body, `<rect x="%d" y="%d" width="1" height="1" fill="%s"/>`+"\n", x, y, s.color.Hex())
}

func (s *SVG) DrawLine(x0, y0, x1, y1 int) {
	fmt.Fprintf(&s.body, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
		x0, y0, x1, y1, s.color.Hex())
}

func (s *SVG) FillRect(x, y, w, h int) {
	fmt.Fprintf(&s.body, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n", x, y, w, h, s.color.Hex())
}

func (s *SVG) Present() {
	s.last = s.Render()
	s.frames++
}

func (s *SVG) Delay(int) {}

// Frames returns the number of presented frames.
func (s *SVG) Frames() int { return s.frames }

// Render returns the frame drawn since the last Clear as an SVG document.
func (s *SVG) Render() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.width, s.height, s.width, s.height, s.bg.Hex()))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

// Close writes the last presented frame. If no frame was presented the
// placeholder created by OpenSVG is removed.
func (s *SVG) Close() error {
	if s.frames == 0 {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("svg: %w", err)
		}
		return nil
	}
	return os.WriteFile(s.path, []byte(s.last), 0644)
}
