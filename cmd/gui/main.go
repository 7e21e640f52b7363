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
	"sync"
	"syscall"

	"github.com/skobkin/signalbars/internal/app"
	"github.com/skobkin/signalbars/internal/ui"
)

type launchOptions struct {
	StartHidden    bool
	ConfigFile     string
	AttributesFile string
}

func main() {
	launch, err := parseLaunchOptions(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("parse launch options", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := app.Initialize(ctx, app.Options{
		ConfigFile:     launch.ConfigFile,
		AttributesFile: launch.AttributesFile,
	})
	if err != nil {
		slog.Error("initialize app runtime", "error", err)
		os.Exit(1)
	}

	var closeOnce sync.Once
	closeRuntime := func() {
		closeOnce.Do(func() {
			if err := rt.Close(); err != nil {
				slog.Warn("close app runtime", "error", err)
			}
		})
	}
	defer closeRuntime()

	startHidden := launch.StartHidden || rt.Config.UI.StartHidden
	dep := ui.BuildRuntimeDependencies(rt, ui.LaunchOptions{StartHidden: startHidden}, func() {
		stop()
		closeRuntime()
	})
	if err := ui.Run(dep); err != nil {
		slog.Error("run ui", "error", err)
		os.Exit(1)
	}
}

func parseLaunchOptions(args []string) (launchOptions, error) {
	var opts launchOptions
	fs := flag.NewFlagSet(app.Name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&opts.StartHidden, "start-hidden", false, "start with the main window hidden in the tray")
	fs.StringVar(&opts.ConfigFile, "config", "", "path to the app config file")
	fs.StringVar(&opts.AttributesFile, "attrs", "", "path to an indicator attributes file (yaml, json or toml)")
	if err := fs.Parse(args); err != nil {
		return launchOptions{}, err
	}
	if fs.NArg() > 0 {
		return launchOptions{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return opts, nil
}
