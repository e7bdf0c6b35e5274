package surface

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/san-kum/dynviz/internal/dynamo"
)

const (
	DefaultTermCols = 120
	DefaultTermRows = 36

	eventBuffer = 256
	headerLines = 2
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type frameMsg string

// Terminal renders into a braille canvas shown by a bubbletea program.
// Window pixels are scaled onto canvas dots; the program runs on its own
// goroutine and only ever receives finished frames.
type Terminal struct {
	prog   *tea.Program
	canvas *Canvas
	color  Color
	width  int
	height int

	events chan Event
	quit   atomic.Bool
	done   chan struct{}
	runErr error
}

// OpenTerminal starts the terminal UI on out. out has to be a terminal.
func OpenTerminal(title string, width, height int, out *os.File) (*Terminal, error) {
	if out == nil || !(isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())) {
		return nil, fmt.Errorf("terminal %q: output is not a tty: %w", title, dynamo.ErrInitialization)
	}
	return newTerminal(title, width, height, DefaultTermCols, DefaultTermRows, out, os.Stdin,
		tea.WithAltScreen(), tea.WithMouseCellMotion())
}

func newTerminal(title string, width, height, cols, rows int, out io.Writer, in io.Reader, opts ...tea.ProgramOption) (*Terminal, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("terminal size %dx%d: %w", width, height, dynamo.ErrInitialization)
	}
	t := &Terminal{
		canvas: NewCanvas(cols, rows),
		color:  White,
		width:  width,
		height: height,
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}

	model := termModel{title: title, term: t}
	opts = append(opts, tea.WithOutput(out), tea.WithInput(in))
	t.prog = tea.NewProgram(model, opts...)

	go func() {
		defer close(t.done)
		_, t.runErr = t.prog.Run()
		t.quit.Store(true)
	}()
	return t, nil
}

func (t *Terminal) push(ev Event) {
	if ev.Kind == EventQuit {
		t.quit.Store(true)
		return
	}
	select {
	case t.events <- ev:
	default:
	}
}

func (t *Terminal) PollEvent() (Event, bool) {
	select {
	case ev := <-t.events:
		return ev, true
	default:
	}
	if t.quit.Load() {
		return Quit(), true
	}
	return Event{}, false
}

// dot maps a window pixel onto canvas dot coordinates.
func (t *Terminal) dot(x, y int) (int, int) {
	return x * t.canvas.DotsWide() / t.width, y * t.canvas.DotsHigh() / t.height
}

func (t *Terminal) SetDrawColor(c Color) { t.color = c }

func (t *Terminal) Clear() { t.canvas.Clear() }

func (t *Terminal) DrawPoint(x, y int) {
	dx, dy := t.dot(x, y)
	t.canvas.Set(dx, dy, t.color)
}

func (t *Terminal) DrawLine(x0, y0, x1, y1 int) {
	ax, ay := t.dot(x0, y0)
	bx, by := t.dot(x1, y1)
	t.canvas.DrawLine(ax, ay, bx, by, t.color)
}

func (t *Terminal) FillRect(x, y, w, h int) {
	x0, y0 := t.dot(x, y)
	x1, y1 := t.dot(x+w, y+h)
	for dy := y0; dy <= y1; dy++ {
		for dx := x0; dx <= x1; dx++ {
			t.canvas.Set(dx, dy, t.color)
		}
	}
}

func (t *Terminal) Present() {
	t.prog.Send(frameMsg(t.canvas.Render()))
}

func (t *Terminal) Delay(ms int) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

func (t *Terminal) Close() error {
	t.prog.Quit()
	<-t.done
	return t.runErr
}

type termModel struct {
	title string
	frame string
	term  *Terminal
}

func (m termModel) Init() tea.Cmd { return nil }

func (m termModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = string(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.term.push(Quit())
		default:
			m.term.push(KeyDown(msg.String()))
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			cx, cy := msg.X, msg.Y-headerLines
			if cy >= 0 && cx < m.term.canvas.Cols && cy < m.term.canvas.Rows {
				m.term.push(PointerDown(
					cx*m.term.width/m.term.canvas.Cols,
					cy*m.term.height/m.term.canvas.Rows,
				))
			}
		}
	}
	return m, nil
}

func (m termModel) View() string {
	header := titleStyle.Render(m.title) + "  " + hintStyle.Render("[q] quit  [click] perturb")
	return header + "\n\n" + m.frame
}
