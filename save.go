package main

import (
	"context"
	"fmt"
	"image/png"
	"os"

	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/glbacteria/programs"
	"go.uber.org/zap"
)

type SaveOptions struct {
	Name          string
	Width, Height int
	Antialias     float32
}

// save renders program on the CPU and writes it to opts.Name, showing
// progress over window. It must be called on the GTK thread.
func save(
	ctx context.Context,
	window *gtk.ApplicationWindow,
	opts SaveOptions,
	program programs.Program,
	uniforms programs.Uniforms,
	logger *zap.Logger,
) {
	ctx, cancel := context.WithCancelCause(ctx)
	AttachErrorDialog(window, ctx, logger)

	image, err := program.GetImage(uniforms, opts.Width, opts.Height)
	if err != nil {
		cancel(fmt.Errorf("%s: %w", program.Name, err))
		return
	}

	progressDialog, err := NewProgressDialog(
		ctx, window, "Save Image",
		fmt.Sprintf("Saving %v", opts.Name),
		func() { cancel(context.Canceled) },
	)
	if err != nil {
		cancel(err)
		return
	}

	go func() {
		defer CatchPanicToContext(cancel)
		if opts.Antialias > 0 {
			image = programs.AntiAlias9x(image, opts.Antialias)
		}

		imageImage := programs.ToImage(image)
		progressDialog.AddProgressSupplier(programs.WrapWithProgress(&imageImage))

		buff := programs.BufferImage(imageImage)
		if err := buff.Buffer(ctx); err != nil {
			cancel(err)
			return
		}

		file, err := os.Create(opts.Name)
		if err != nil {
			cancel(err)
			return
		}

		err = png.Encode(file, buff)
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			os.Remove(file.Name())
			cancel(fmt.Errorf("failed to save %s: %w", opts.Name, err))
			return
		}

		logger.Info("image saved",
			zap.String("file", opts.Name),
			zap.Int("width", opts.Width),
			zap.Int("height", opts.Height),
		)
		cancel(nil)
	}()
}
