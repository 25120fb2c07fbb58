package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/glbacteria/config"
	"github.com/stewi1014/glbacteria/link"
	"github.com/stewi1014/glbacteria/session"
	"go.uber.org/zap"
)

const applicationID = "com.github.stewi1014.glbacteria"

// gtkMain runs the render and status windows until either is closed or ctx
// is done. Config changes arrive on changes.
func gtkMain(ctx context.Context, cfg config.Config, changes <-chan config.Config, logger *zap.Logger) error {
	runtime.LockOSThread()

	gtk.Init(nil)
	app, err := gtk.ApplicationNew(applicationID, glib.APPLICATION_FLAGS_NONE)
	if err != nil {
		return fmt.Errorf("gtk.ApplicationNew failed: %w", err)
	}

	appContext, appQuit := context.WithCancelCause(ctx)
	defer appQuit(nil)

	app.Connect("activate", func() {
		s, err := session.New(cfg.Program, cfg, logger)
		if err != nil {
			appQuit(err)
			return
		}

		client, listener := link.NewPipeListener()
		server, err := listener.Accept()
		if err != nil {
			appQuit(err)
			return
		}
		context.AfterFunc(appContext, func() {
			listener.Close()
		})

		renderWindow, err := NewRenderWindow(app, appContext, appQuit, cfg, s, link.New(client, logger.Named("render")), logger)
		if err != nil {
			appQuit(err)
			return
		}
		renderWindow.Connect("destroy", func() {
			appQuit(nil)
		})
		renderWindow.SetTitle("glbacteria")
		AttachErrorDialog(renderWindow.ApplicationWindow, appContext, logger)

		statusWindow, err := NewStatusWindow(app, appContext, appQuit, cfg, link.New(server, logger.Named("status")), logger)
		if err != nil {
			appQuit(err)
			return
		}
		statusWindow.Connect("destroy", func() {
			appQuit(nil)
		})
		statusWindow.SetTitle("glbacteria status")

		go func() {
			defer CatchPanicToContext(appQuit)
			for {
				select {
				case cfg := <-changes:
					glib.IdleAdd(func() {
						renderWindow.SetConfig(cfg)
					})
				case <-appContext.Done():
					return
				}
			}
		}()
	})

	go func() {
		<-appContext.Done()
		glib.IdleAdd(app.Quit)
	}()
	app.Run(nil)
	return context.Cause(appContext)
}
