package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/stewi1014/glbacteria/config"
	"go.uber.org/zap"
)

func init() {
	// GLFW wants the main thread.
	runtime.LockOSThread()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type cli struct {
	configPath string
	program    string
	count      int
	seed       uint64
	backend    string
	debug      bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:               "glbacteria",
		Short:             "Click the growing bacteria away before two of them take over",
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			c.logger.Sync()
		},
		RunE: c.runWindow,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $"+config.EnvPath+")")
	flags.StringVar(&c.program, "program", "", "program to run")
	flags.IntVar(&c.count, "count", 0, "number of bacteria")
	flags.Uint64Var(&c.seed, "seed", 0, "placement seed, 0 for random")
	flags.StringVar(&c.backend, "backend", "", "window backend, gtk or glfw")
	flags.BoolVar(&c.debug, "debug", false, "debug logging and GL debug output")

	root.AddCommand(
		c.programsCommand(),
		c.renderCommand(),
		c.simulateCommand(),
	)
	return root
}

// setup loads the config, applies flag overrides and builds the logger.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.Path(c.configPath))
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("program") {
		cfg.Program = c.program
	}
	if flags.Changed("count") {
		cfg.Flat.Count = c.count
		cfg.Sphere.Count = c.count
	}
	if flags.Changed("seed") {
		cfg.Seed = c.seed
	}
	if flags.Changed("backend") {
		cfg.Window.Backend = c.backend
	}
	if flags.Changed("debug") {
		cfg.Debug = c.debug
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	zc := zap.NewProductionConfig()
	if cfg.Debug {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	c.logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	c.cfg = cfg
	return nil
}

func (c *cli) runWindow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	changes := make(chan config.Config, 1)

	if path := config.Path(c.configPath); path != "" {
		watcher, err := config.NewWatcher(path, c.logger)
		if err != nil {
			return err
		}
		go func() {
			if err := watcher.Run(ctx, func(cfg config.Config) {
				select {
				case changes <- cfg:
				case <-ctx.Done():
				}
			}); err != nil {
				c.logger.Warn("config watcher stopped", zap.Error(err))
			}
		}()
	}

	c.logger.Info("starting",
		zap.String("program", c.cfg.Program),
		zap.String("backend", c.cfg.Window.Backend),
	)

	var err error
	switch c.cfg.Window.Backend {
	case "glfw":
		err = c.runGLFW(ctx, changes)
	default:
		err = c.runGTK(ctx, changes)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Error("exited with error", zap.Error(err))
		return err
	}
	return nil
}

func (c *cli) runGTK(ctx context.Context, changes <-chan config.Config) error {
	mainContext, mainQuit := context.WithCancelCause(ctx)

	go func() {
		defer CatchPanicToContext(mainQuit)
		mainQuit(gtkMain(mainContext, c.cfg, changes, c.logger))
	}()

	<-mainContext.Done()
	return context.Cause(mainContext)
}
