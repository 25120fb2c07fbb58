package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stewi1014/glbacteria/config"
	"github.com/stewi1014/glbacteria/session"
	"go.uber.org/zap"
)

// GLFWWindow is the plain window used by --backend glfw. The score goes in
// the title bar.
type GLFWWindow struct {
	*glfw.Window
	renderer *Renderer
	session  *session.Session
	logger   *zap.Logger
}

func NewGLFWWindow(cfg config.Config, s *session.Session, logger *zap.Logger) (*GLFWWindow, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if cfg.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}
	window, err := glfw.CreateWindow(
		cfg.Window.Width,
		cfg.Window.Height,
		"glbacteria",
		nil,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("glfw.CreateWindow failed: %w", err)
	}

	w := &GLFWWindow{
		Window:  window,
		session: s,
		logger:  logger,
	}

	w.MakeContextCurrent()
	glfw.SwapInterval(1)

	w.renderer, err = NewRenderer(logger, cfg.Debug)
	if err != nil {
		window.Destroy()
		return nil, err
	}
	if err := w.renderer.LoadProgram(s.Program()); err != nil {
		window.Destroy()
		return nil, err
	}

	w.SetMouseButtonCallback(w.mouseButton)
	w.SetCursorPosCallback(w.cursorPos)
	w.SetKeyCallback(w.key)

	return w, nil
}

func (w *GLFWWindow) mouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}

	x, y := w.GetCursorPos()
	switch action {
	case glfw.Press:
		w.session.PointerDown(x, y)
	case glfw.Release:
		width, height := w.GetSize()
		w.session.PointerUp(x, y, width, height)
	}
}

func (w *GLFWWindow) cursorPos(_ *glfw.Window, x, y float64) {
	w.session.PointerMove(x, y)
}

func (w *GLFWWindow) key(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
}

// Run draws frames until the window closes or ctx is done. Config changes
// are applied from the next new game.
func (w *GLFWWindow) Run(ctx context.Context, statusInterval time.Duration, changes <-chan config.Config) {
	defer w.renderer.Delete()

	last := time.Now()
	lastStatus := time.Time{}
	for !w.ShouldClose() && ctx.Err() == nil {
		select {
		case cfg := <-changes:
			w.session.SetConfig(cfg)
		default:
		}

		now := time.Now()
		w.session.Tick(now.Sub(last).Seconds())
		last = now

		if now.Sub(lastStatus) >= statusInterval {
			lastStatus = now
			w.SetTitle("glbacteria - " + w.session.StatusText())
		}

		width, height := w.GetFramebufferSize()
		w.renderer.Resize(width, height)
		u := w.session.Uniforms(width, height)
		w.renderer.Draw(&u)

		w.SwapBuffers()
		glfw.PollEvents()
	}
}

func glfwMain(ctx context.Context, cfg config.Config, s *session.Session, changes <-chan config.Config, logger *zap.Logger) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw.Init: %w", err)
	}
	defer glfw.Terminate()

	w, err := NewGLFWWindow(cfg, s, logger)
	if err != nil {
		return err
	}
	defer w.Destroy()

	w.Run(ctx, cfg.StatusInterval, changes)
	return nil
}
