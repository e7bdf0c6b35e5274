package sim

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/san-kum/dynviz/internal/surface"
)

// Loop drives one scene against one surface. Each Step drains pending
// events, advances the scene, draws, presents and sleeps.
type Loop struct {
	surface    surface.Surface
	scene      Scene
	frameDelay int
	maxFrames  int
	observers  []Observer
	logger     *log.Logger

	phase Phase
	frame int
	err   error
}

type Option func(*Loop)

func WithObserver(o Observer) Option {
	return func(l *Loop) { l.observers = append(l.observers, o) }
}

func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// WithMaxFrames stops the loop after n frames. Zero means no limit.
func WithMaxFrames(n int) Option {
	return func(l *Loop) { l.maxFrames = n }
}

func New(s surface.Surface, sc Scene, frameDelayMs int, opts ...Option) *Loop {
	l := &Loop{
		surface:    s,
		scene:      sc,
		frameDelay: frameDelayMs,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loop) Phase() Phase { return l.phase }

// Frame returns the number of completed frames.
func (l *Loop) Frame() int { return l.frame }

// Err returns the scene error that stopped the loop, if any.
func (l *Loop) Err() error { return l.err }

func (l *Loop) Stop() { l.stop("stop requested") }

func (l *Loop) stop(reason string) {
	if l.phase == Stopped {
		return
	}
	l.phase = Stopped
	l.logger.Debug("loop stopped", "reason", reason, "frame", l.frame, "t", l.scene.Time())
}

// Step runs a single iteration and reports whether the loop is still
// running afterwards. A Quit event stops the loop before the scene is
// advanced or drawn.
func (l *Loop) Step() bool {
	if l.phase == Stopped {
		return false
	}

	for {
		ev, ok := l.surface.PollEvent()
		if !ok {
			break
		}
		if ev.Kind == surface.EventQuit {
			l.stop("quit")
			return false
		}
		l.scene.HandleEvent(ev)
	}

	if err := l.scene.Advance(); err != nil {
		l.err = err
		l.logger.Error("simulation halted", "err", err)
		l.stop("scene error")
		return false
	}

	l.scene.Draw(l.surface)
	l.surface.Present()

	for _, o := range l.observers {
		o.OnFrame(l.frame, l.scene.Time(), l.scene.States())
	}
	l.frame++

	if l.maxFrames > 0 && l.frame >= l.maxFrames {
		l.stop("frame limit")
		return false
	}

	l.surface.Delay(l.frameDelay)
	return true
}

// Run steps until the loop stops or ctx is cancelled. It returns the
// scene error, if any, or ctx.Err() on cancellation.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Debug("loop started", "delay_ms", l.frameDelay, "max_frames", l.maxFrames)
	for {
		select {
		case <-ctx.Done():
			l.stop("context done")
			return ctx.Err()
		default:
		}
		if !l.Step() {
			return l.err
		}
	}
}

// Headless advances sc for the given number of frames without drawing.
func Headless(ctx context.Context, sc Scene, frames int, observers ...Observer) error {
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := sc.Advance(); err != nil {
			return err
		}
		for _, o := range observers {
			o.OnFrame(i, sc.Time(), sc.States())
		}
	}
	return nil
}

// Job pairs a scene with the observers watching it.
type Job struct {
	Scene     Scene
	Observers []Observer
}

// HeadlessAll runs every job on its own goroutine. Scenes share nothing,
// so no locking is needed; observers must not be shared between jobs.
func HeadlessAll(ctx context.Context, frames int, jobs ...Job) error {
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(idx int, job Job) {
			defer wg.Done()
			errs[idx] = Headless(ctx, job.Scene, frames, job.Observers...)
		}(i, job)
	}
	wg.Wait()

	return errors.Join(errs...)
}
