// Command switcher inspects and simulates post process volume scenes.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/akmonengine/switcher"
	"github.com/akmonengine/switcher/config"
	"github.com/akmonengine/switcher/host"
	"github.com/spf13/cobra"
)

type options struct {
	config      string
	verbose     bool
	veryVerbose bool
	quiet       bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "switcher",
		Short:        "Resolve post process volumes around a camera",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.config, "config", "c", "", "configuration file (.toml, .yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log informational messages")
	root.PersistentFlags().BoolVar(&opts.veryVerbose, "vv", false, "log debug messages")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "only log errors")

	root.AddCommand(
		newInspectCommand(opts),
		newWireframeCommand(opts),
		newSimulateCommand(opts),
		newWatchCommand(opts),
	)

	return root
}

// levelFromFlags maps the verbosity flags to a level, warn by default
func levelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// session is a switcher attached to a scene file
type session struct {
	scene    *host.Scene
	recorder *host.Recorder
	switcher *switcher.Switcher
	config   config.Config
	logger   *slog.Logger
}

func (o *options) load(cmd *cobra.Command, scenePath string, onReport func(float64)) (*session, error) {
	cfg := config.Default()
	if o.config != "" {
		var err error
		if cfg, err = config.Load(o.config); err != nil {
			return nil, err
		}
	}

	// flags win over the configured level
	level := levelFromFlags(o.veryVerbose, o.verbose, o.quiet)
	if !o.veryVerbose && !o.verbose && !o.quiet && o.config != "" {
		level, _ = cfg.Level()
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	scene, err := host.LoadScene(scenePath)
	if err != nil {
		return nil, err
	}

	recorder := &host.Recorder{}
	s, err := switcher.New(cfg, switcher.Hosts{
		Volumes:  scene,
		Observer: scene,
		View:     scene,
		Lines:    recorder,
		Console:  scene,
	}, logger, onReport)
	if err != nil {
		return nil, fmt.Errorf("create switcher: %w", err)
	}

	return &session{
		scene:    scene,
		recorder: recorder,
		switcher: s,
		config:   cfg,
		logger:   logger,
	}, nil
}
