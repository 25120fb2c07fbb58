package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/stewi1014/glbacteria/config"
	"github.com/stewi1014/glbacteria/headless"
	"github.com/stewi1014/glbacteria/programs"
	"github.com/stewi1014/glbacteria/session"
)

func (c *cli) runGLFW(ctx context.Context, changes <-chan config.Config) error {
	s, err := session.New(c.cfg.Program, c.cfg, c.logger)
	if err != nil {
		return err
	}
	return glfwMain(ctx, c.cfg, s, changes, c.logger)
}

func (c *cli) programsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "programs",
		Short: "List the available programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for i := 0; i < programs.NumPrograms(); i++ {
				p := programs.GetProgram(i)
				kind := "demo"
				if p.Game {
					kind = "game"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, kind, p.Description)
			}
			return tw.Flush()
		},
	}
}

func (c *cli) renderCommand() *cobra.Command {
	var (
		out       string
		width     int
		height    int
		seconds   float64
		antialias float32
		angleX    float32
		angleY    float32
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a frame to PNG without a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.New(c.cfg.Program, c.cfg, c.logger)
			if err != nil {
				return err
			}

			if seconds > 0 {
				opts := headless.SimulateOptions{Seconds: seconds}
				if _, err := headless.Simulate(cmd.Context(), s, opts, io.Discard, c.logger); err != nil {
					return err
				}
			}
			s.Rotate(angleX, angleY)

			if out == "" {
				out = s.Program().Name + ".png"
			}
			if width == 0 {
				width = c.cfg.Window.Width
			}
			if height == 0 {
				height = c.cfg.Window.Height
			}

			file, err := os.Create(out)
			if err != nil {
				return err
			}

			err = headless.Render(cmd.Context(), s, headless.RenderOptions{
				Width:     width,
				Height:    height,
				Antialias: antialias,
			}, file)
			if closeErr := file.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				os.Remove(out)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", out, s.StatusText())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&out, "out", "o", "", "output file (default <program>.png)")
	flags.IntVar(&width, "width", 0, "image width (default window width)")
	flags.IntVar(&height, "height", 0, "image height (default window height)")
	flags.Float64Var(&seconds, "seconds", 0, "simulated seconds before the frame")
	flags.Float32Var(&antialias, "antialias", 0, "9x antialias sample spacing in pixels, 0 to disable")
	flags.Float32Var(&angleX, "angle-x", 0, "sphere rotation about x in degrees")
	flags.Float32Var(&angleY, "angle-y", 0, "sphere rotation about y in degrees")
	return cmd
}

func (c *cli) simulateCommand() *cobra.Command {
	opts := headless.SimulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a game without a window, printing the status as it goes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.New(c.cfg.Program, c.cfg, c.logger)
			if err != nil {
				return err
			}

			_, err = headless.Simulate(cmd.Context(), s, opts, cmd.OutOrStdout(), c.logger)
			return err
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&opts.Seconds, "seconds", 60, "longest simulated time")
	flags.Float64Var(&opts.Step, "step", headless.DefaultStep, "tick length in seconds")
	flags.Float64Var(&opts.Report, "report", 1, "simulated seconds between status lines")
	return cmd
}
