package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/skobkin/signalbars/internal/app"
	"github.com/skobkin/signalbars/internal/domain"
	"github.com/skobkin/signalbars/internal/indicator"
	"github.com/skobkin/signalbars/internal/term"
)

const startupLevel = 3

type launchOptions struct {
	ConfigFile     string
	AttributesFile string
	Background     string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("run terminal host", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	launch, err := parseLaunchOptions(args)
	if err != nil {
		return err
	}
	background, err := indicator.ParseColor(launch.Background)
	if err != nil {
		return fmt.Errorf("parse background: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The screen owns stdout, so logs only go to the log file.
	rt, err := app.Initialize(ctx, app.Options{
		ConfigFile:     launch.ConfigFile,
		AttributesFile: launch.AttributesFile,
		Console:        io.Discard,
	})
	if err != nil {
		return fmt.Errorf("initialize app runtime: %w", err)
	}
	defer func() {
		if err := rt.Close(); err != nil {
			slog.Warn("close app runtime", "error", err)
		}
	}()
	rt.StartNotifications(rt.Ctx, nil, nil)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	restored, ok := rt.LastState()
	cfg := startupConfig(rt.IndicatorConfig(), restored, ok)
	host := term.NewHost(
		screen,
		cfg,
		term.WithPublisher(rt.Bus),
		term.WithHostLogger(rt.LogManager.Logger("term")),
		term.WithBackground(background),
	)

	err = host.Run(rt.Ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func parseLaunchOptions(args []string) (launchOptions, error) {
	var opts launchOptions
	fs := flag.NewFlagSet(app.Name+"-term", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.ConfigFile, "config", "", "path to the app config file")
	fs.StringVar(&opts.AttributesFile, "attrs", "", "path to an indicator attributes file (yaml, json or toml)")
	fs.StringVar(&opts.Background, "background", "gray", "screen background color name or #rrggbb")
	if err := fs.Parse(args); err != nil {
		return launchOptions{}, err
	}
	if fs.NArg() > 0 {
		return launchOptions{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return opts, nil
}

// startupConfig starts disconnected at a few lit bars unless a state was
// restored from history.
func startupConfig(cfg indicator.Config, restored domain.IndicatorState, ok bool) indicator.Config {
	if ok {
		cfg.Level = restored.Level
		cfg.Connected = restored.Connected

		return cfg
	}
	cfg.Level = min(startupLevel, cfg.BarCount)
	cfg.Connected = false

	return cfg
}
