package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/glbacteria/config"
	"github.com/stewi1014/glbacteria/link"
	"github.com/stewi1014/glbacteria/session"
	"go.uber.org/zap"
)

// frameInterval paces the simulation tick; GTK coalesces the redraws.
const frameInterval = 16 * time.Millisecond

func NewRenderWindow(
	app *gtk.Application,
	ctx context.Context,
	quit context.CancelCauseFunc,
	cfg config.Config,
	s *session.Session,
	l *link.Link,
	logger *zap.Logger,
) (*RenderWindow, error) {
	var err error
	w := &RenderWindow{
		ctx:     ctx,
		quit:    quit,
		cfg:     cfg,
		session: s,
		link:    l,
		logger:  logger,
	}

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		return nil, fmt.Errorf("gtk.ApplicationWindowNew: %w", err)
	}

	w.SetDefaultSize(cfg.Window.Width, cfg.Window.Height)

	w.gla, err = gtk.GLAreaNew()
	if err != nil {
		return nil, fmt.Errorf("gtk.GLAreaNew: %w", err)
	}

	w.gla.SetRequiredVersion(4, 6)
	w.gla.SetHasDepthBuffer(true)
	w.gla.Connect("realize", w.glaRealize)
	w.gla.Connect("render", w.glaRender)
	w.gla.Connect("unrealize", w.glaUnrealize)

	w.gla.SetEvents(
		int(gdk.BUTTON_PRESS_MASK) |
			int(gdk.BUTTON_RELEASE_MASK) |
			int(gdk.POINTER_MOTION_MASK),
	)
	w.gla.Connect("resize", w.resize)
	w.gla.Connect("button-press-event", w.button)
	w.gla.Connect("button-release-event", w.button)
	w.gla.Connect("motion-notify-event", w.motion)

	w.Add(w.gla)
	w.ShowAll()

	w.lastTick = time.Now()
	glib.TimeoutAdd(uint(frameInterval/time.Millisecond), w.tick)
	glib.TimeoutAdd(uint(cfg.StatusInterval/time.Millisecond), w.sendSnapshot)

	go func() {
		defer CatchPanicToContext(quit)
		if err := l.Run(ctx, w.handleMessage); err != nil {
			quit(err)
		}
	}()

	return w, nil
}

type RenderWindow struct {
	*gtk.ApplicationWindow
	gla      *gtk.GLArea
	renderer *Renderer
	width    int
	height   int
	lastTick time.Time

	ctx    context.Context
	quit   context.CancelCauseFunc
	cfg    config.Config
	logger *zap.Logger

	session *session.Session
	link    *link.Link
}

func (w *RenderWindow) glaRealize(gla *gtk.GLArea) {
	gla.MakeCurrent()

	var err error
	w.renderer, err = NewRenderer(w.logger, w.cfg.Debug)
	if err != nil {
		w.quit(err)
		return
	}

	if err := w.renderer.LoadProgram(w.session.Program()); err != nil {
		w.quit(err)
	}
}

func (w *RenderWindow) glaRender(gla *gtk.GLArea) bool {
	if w.renderer == nil {
		return false
	}

	w.gla.AttachBuffers()
	u := w.session.Uniforms(w.width, w.height)
	w.renderer.Draw(&u)
	return true
}

func (w *RenderWindow) glaUnrealize(gla *gtk.GLArea) {
	if w.renderer == nil {
		return
	}
	gla.MakeCurrent()
	w.renderer.Delete()
	w.renderer = nil
}

func (w *RenderWindow) resize(gla *gtk.GLArea, width, height int) {
	w.width, w.height = width, height
	if w.renderer != nil {
		w.renderer.Resize(width, height)
	}
}

func (w *RenderWindow) tick() bool {
	if w.ctx.Err() != nil {
		return false
	}

	now := time.Now()
	w.session.Tick(now.Sub(w.lastTick).Seconds())
	w.lastTick = now

	w.gla.QueueRender()
	return true
}

// pointer returns the event position and the surface size in the same
// logical pixels.
func (w *RenderWindow) pointer(x, y float64) (float64, float64, int, int) {
	return x, y, w.gla.GetAllocatedWidth(), w.gla.GetAllocatedHeight()
}

func (w *RenderWindow) button(gla *gtk.GLArea, event *gdk.Event) {
	button := gdk.EventButtonNewFromEvent(event)
	if button.Button() != gdk.BUTTON_PRIMARY {
		return
	}
	x, y, width, height := w.pointer(button.X(), button.Y())

	switch button.Type() {
	case gdk.EVENT_BUTTON_PRESS:
		w.session.PointerDown(x, y)
	case gdk.EVENT_BUTTON_RELEASE:
		if _, ok := w.session.PointerUp(x, y, width, height); ok {
			w.sendSnapshot()
		}
	}
	gla.QueueRender()
}

func (w *RenderWindow) motion(gla *gtk.GLArea, event *gdk.Event) {
	motion := gdk.EventMotionNewFromEvent(event)
	x, y := motion.MotionVal()
	w.session.PointerMove(x, y)
	gla.QueueRender()
}

func (w *RenderWindow) sendSnapshot() bool {
	if w.ctx.Err() != nil {
		return false
	}
	if err := w.link.Send(w.ctx, w.session.Snapshot()); err != nil {
		w.logger.Debug("snapshot not sent", zap.Error(err))
	}
	return true
}

// SetConfig applies cfg from the next new game on.
func (w *RenderWindow) SetConfig(cfg config.Config) {
	w.cfg = cfg
	w.session.SetConfig(cfg)
}

func (w *RenderWindow) handleMessage(msg any) {
	switch msg := msg.(type) {
	case link.NewGame:
		glib.IdleAdd(func() {
			w.newGame(msg.Program)
		})

	case link.SaveImage:
		glib.IdleAdd(func() {
			save(w.ctx, w.ApplicationWindow, SaveOptions{
				Name:      msg.Name,
				Width:     w.width,
				Height:    w.height,
				Antialias: msg.Antialias,
			}, w.session.Program(), w.session.Uniforms(w.width, w.height), w.logger)
		})

	default:
		w.logger.Warn("unexpected message", zap.Any("message", msg))
	}
}

func (w *RenderWindow) newGame(name string) {
	previous := w.session.Program().Name
	if err := w.session.NewGame(name); err != nil {
		NewErrorDialog(w.ApplicationWindow, err)
		return
	}

	if w.renderer != nil && w.session.Program().Name != previous {
		w.gla.MakeCurrent()
		if err := w.renderer.LoadProgram(w.session.Program()); err != nil {
			w.quit(err)
			return
		}
	}

	w.lastTick = time.Now()
	w.sendSnapshot()
	w.gla.QueueRender()
}
