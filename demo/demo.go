// Package demo holds the runnable programs and the frame loop they share.
package demo

import (
	"context"
	"fmt"
	"log/slog"

	"tilegl/core"
	"tilegl/input"
	"tilegl/internal/opengl"
)

// Demo is one runnable program. Init runs once with a current GL context,
// then Update and Render once per frame until the window closes.
type Demo interface {
	Name() string
	Init(c *Context) error
	Update(c *Context, dt float32)
	Render(c *Context)
	Destroy()
}

// Context is what a demo sees of the running application.
type Context struct {
	Window *core.Window
	Input  *input.Manager
	Config core.Config
	Log    *slog.Logger
	// Time is seconds since start, sampled at the top of the frame.
	Time float64
}

// New returns the demo registered under name.
func New(name string) (Demo, error) {
	switch name {
	case "hello":
		return &Hello{}, nil
	case "color":
		return &Color{}, nil
	case "tester":
		return &Tester{}, nil
	case "world":
		return &World{}, nil
	}
	return nil, fmt.Errorf("unknown demo %q", name)
}

// Names lists every demo New accepts.
func Names() []string {
	return []string{"hello", "color", "tester", "world"}
}

// Run opens a window, initialises d and drives it until the window is
// closed, ESC is pressed or ctx is cancelled.
func Run(ctx context.Context, cfg core.Config, log *slog.Logger, d Demo) error {
	window, err := core.NewWindow(cfg.WindowConfig())
	if err != nil {
		return err
	}
	defer window.Destroy()

	if err := opengl.Init(log); err != nil {
		return err
	}
	window.SetTitle(windowTitle(cfg.Window.Title, d.Name()))
	window.OnResize(opengl.SetViewport)
	opengl.SetViewport(window.GetFramebufferSize())

	in := input.NewManager(window)
	window.SetScrollCallback(func(_, yoff float64) { in.Scroll(yoff) })

	c := &Context{
		Window: window,
		Input:  in,
		Config: cfg,
		Log:    log.With("demo", d.Name()),
	}
	if err := d.Init(c); err != nil {
		return fmt.Errorf("%s: init: %w", d.Name(), err)
	}
	defer d.Destroy()

	c.Log.Info("running", "width", window.Width, "height", window.Height)
	frames := loop(ctx, window, c, d)
	c.Log.Info("stopped", "frames", frames)
	return nil
}

func windowTitle(base, demo string) string {
	if base == "" {
		return demo
	}
	return base + " - " + demo
}

// surface is the part of a window the frame loop drives.
type surface interface {
	ShouldClose() bool
	SetShouldClose(bool)
	SwapBuffers()
	PollEvents()
	Time() float64
}

// maxFrameDelta caps dt after stalls such as window drags.
const maxFrameDelta = 0.1

func loop(ctx context.Context, s surface, c *Context, d Demo) int {
	clock := core.Clock{MaxDelta: maxFrameDelta}
	c.Input.Watch(core.KeyEscape)

	frames := 0
	for !s.ShouldClose() {
		if ctx.Err() != nil {
			s.SetShouldClose(true)
			break
		}

		c.Time = s.Time()
		dt := clock.Tick(c.Time)

		c.Input.Update()
		if c.Input.IsKeyDown(core.KeyEscape) {
			s.SetShouldClose(true)
		}

		d.Update(c, dt)
		d.Render(c)
		c.Input.EndFrame()

		s.SwapBuffers()
		s.PollEvents()
		frames++
	}
	return frames
}
