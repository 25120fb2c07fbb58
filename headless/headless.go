// Package headless runs programs without a window: simulating a game on a
// fixed timestep and rendering frames through the CPU pixel functions.
package headless

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"math"

	"github.com/stewi1014/glbacteria/link"
	"github.com/stewi1014/glbacteria/programs"
	"github.com/stewi1014/glbacteria/session"
	"go.uber.org/zap"
)

// DefaultStep is one frame at 60Hz.
const DefaultStep = 1.0 / 60

type SimulateOptions struct {
	// Seconds is the longest simulated time; the run stops early when the
	// game ends.
	Seconds float64
	Step    float64
	// Report is the simulated time between status lines. Zero only prints
	// the final line.
	Report float64
}

// Simulate ticks s and writes its status line to out as it goes.
func Simulate(ctx context.Context, s *session.Session, opts SimulateOptions, out io.Writer, logger *zap.Logger) (link.Snapshot, error) {
	step := opts.Step
	if step <= 0 {
		step = DefaultStep
	}

	// counting ticks keeps float drift from adding a step past Seconds
	ticks := int(math.Round(opts.Seconds / step))
	every := 0
	if opts.Report > 0 {
		every = max(int(math.Round(opts.Report/step)), 1)
	}

	var elapsed float64
	for i := 1; i <= ticks; i++ {
		if err := ctx.Err(); err != nil {
			return s.Snapshot(), err
		}

		s.Tick(step)
		elapsed = float64(i) * step

		if every > 0 && i%every == 0 {
			if _, err := fmt.Fprintf(out, "%7.2fs  %s\n", elapsed, s.StatusText()); err != nil {
				return s.Snapshot(), err
			}
		}

		if g := s.Game(); g != nil && g.Status().Terminal() {
			break
		}
	}

	snap := s.Snapshot()
	logger.Debug("simulation finished",
		zap.Float64("seconds", elapsed),
		zap.String("status", snap.Status),
	)
	_, err := fmt.Fprintf(out, "%7.2fs  %s\n", elapsed, snap.Status)
	return snap, err
}

type RenderOptions struct {
	Width     int
	Height    int
	Antialias float32
}

// Render writes the current frame of s to w as a PNG.
func Render(ctx context.Context, s *session.Session, opts RenderOptions, w io.Writer) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}

	program := s.Program()
	img, err := program.GetImage(s.Uniforms(opts.Width, opts.Height), opts.Width, opts.Height)
	if err != nil {
		return fmt.Errorf("%s: %w", program.Name, err)
	}
	if opts.Antialias > 0 {
		img = programs.AntiAlias9x(img, opts.Antialias)
	}

	buff := programs.BufferImage(programs.ToImage(img))
	if err := buff.Buffer(ctx); err != nil {
		return err
	}

	if err := png.Encode(w, buff); err != nil {
		return fmt.Errorf("png.Encode: %w", err)
	}
	return nil
}
