package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/glbacteria/config"
	"github.com/stewi1014/glbacteria/link"
	"github.com/stewi1014/glbacteria/programs"
	"go.uber.org/zap"
)

func NewStatusWindow(
	app *gtk.Application,
	ctx context.Context,
	quit context.CancelCauseFunc,
	cfg config.Config,
	l *link.Link,
	logger *zap.Logger,
) (*StatusWindow, error) {
	var err error
	w := &StatusWindow{
		ctx:    ctx,
		link:   l,
		logger: logger,
	}

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		return nil, fmt.Errorf("gtk.ApplicationWindowNew: %w", err)
	}

	w.SetDefaultSize(280, 240)

	box, err := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 8)
	if err != nil {
		return nil, fmt.Errorf("gtk.BoxNew: %w", err)
	}
	box.SetMarginStart(12)
	box.SetMarginEnd(12)
	box.SetMarginTop(12)
	box.SetMarginBottom(12)

	w.status, _ = gtk.LabelNew("")
	w.details, _ = gtk.LabelNew("")
	w.session, _ = gtk.LabelNew("")
	w.session.SetSelectable(true)

	w.programs, err = gtk.ComboBoxTextNew()
	if err != nil {
		return nil, fmt.Errorf("gtk.ComboBoxTextNew: %w", err)
	}
	for i, name := range programs.Names() {
		w.programs.AppendText(name)
		if name == cfg.Program {
			w.programs.SetActive(i)
		}
	}

	newGame, _ := gtk.ButtonNewWithLabel("New Game")
	newGame.Connect("clicked", func() {
		w.send(link.NewGame{Program: w.programs.GetActiveText()})
	})

	saveImage, _ := gtk.ButtonNewWithLabel("Save PNG")
	saveImage.Connect("clicked", func() {
		w.send(link.SaveImage{
			Name:      fmt.Sprintf("%s-%s.png", w.snapshot.Program, time.Now().Format("20060102-150405")),
			Antialias: 1,
		})
	})

	box.PackStart(w.status, false, false, 0)
	box.PackStart(w.details, false, false, 0)
	box.PackStart(w.programs, false, false, 0)
	box.PackStart(newGame, false, false, 0)
	box.PackStart(saveImage, false, false, 0)
	box.PackEnd(w.session, false, false, 0)

	w.Add(box)
	w.ShowAll()

	glib.TimeoutAdd(uint(cfg.StatusInterval/time.Millisecond), w.refresh)

	go func() {
		defer CatchPanicToContext(quit)
		if err := l.Run(ctx, w.handleMessage); err != nil {
			quit(err)
		}
	}()

	return w, nil
}

// StatusWindow shows the score readout and starts new games.
type StatusWindow struct {
	*gtk.ApplicationWindow
	status   *gtk.Label
	details  *gtk.Label
	session  *gtk.Label
	programs *gtk.ComboBoxText

	ctx    context.Context
	link   *link.Link
	logger *zap.Logger

	snapshot link.Snapshot
}

func (w *StatusWindow) send(msg any) {
	if err := w.link.Send(w.ctx, msg); err != nil {
		w.logger.Warn("message not sent", zap.Error(err))
	}
}

func (w *StatusWindow) handleMessage(msg any) {
	snapshot, ok := msg.(link.Snapshot)
	if !ok {
		w.logger.Warn("unexpected message", zap.Any("message", msg))
		return
	}

	glib.IdleAdd(func() {
		w.snapshot = snapshot
	})
}

func (w *StatusWindow) refresh() bool {
	if w.ctx.Err() != nil {
		return false
	}

	s := w.snapshot
	w.status.SetText(s.Status)
	if s.Total > 0 {
		w.details.SetText(fmt.Sprintf("%d of %d alive, %d crossed", s.Alive, s.Total, s.Crossings))
	} else {
		w.details.SetText(s.Program)
	}
	w.session.SetText(s.Session)
	return true
}
