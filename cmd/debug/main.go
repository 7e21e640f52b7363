package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/skobkin/signalbars/internal/app"
	"github.com/skobkin/signalbars/internal/config"
	"github.com/skobkin/signalbars/internal/indicator"
	"github.com/skobkin/signalbars/internal/logging"
	"github.com/skobkin/signalbars/internal/persistence"
)

type options struct {
	AttributesFile string
	Width          int
	Height         int
	Level          int
	Disconnected   bool
	History        int
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("run debug tool", "error", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths, err := app.ResolvePaths()
	if err != nil {
		return fmt.Errorf("resolve paths: %w", err)
	}
	cfg, err := config.Load(paths.ConfigFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logMgr := logging.NewManager()
	logMgr.SetConsole(os.Stderr)
	cfg.Logging.LogToFile = false
	if err := logMgr.Configure(cfg.Logging, paths.LogFile); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer func() {
		if closeErr := logMgr.Close(); closeErr != nil {
			slog.Warn("close log manager", "error", closeErr)
		}
	}()
	logger := logMgr.Logger("cli")
	logger.Info("starting debug tool", "version", app.VersionLine())

	indicatorCfg := indicator.DefaultConfig()
	if opts.AttributesFile != "" {
		attrs, err := config.LoadAttributes(opts.AttributesFile)
		if err != nil {
			return err
		}
		indicatorCfg = indicator.ConfigFromAttributes(attrs)
	}
	if opts.Level >= 0 {
		indicatorCfg.Level = opts.Level
	}
	if opts.Disconnected {
		indicatorCfg.Connected = false
	}
	if err := indicatorCfg.Validate(); err != nil {
		return fmt.Errorf("validate indicator config: %w", err)
	}

	if err := dumpDrawOps(out, indicatorCfg, opts.Width, opts.Height); err != nil {
		return err
	}

	if opts.History <= 0 {
		return nil
	}
	db, err := persistence.Open(ctx, paths.DBFile)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Warn("close sqlite", "error", closeErr)
		}
	}()
	states, err := persistence.NewStateRepo(db).ListRecent(ctx, opts.History)
	if err != nil {
		return fmt.Errorf("load state history: %w", err)
	}
	logger.Info("loaded state history", "count", len(states))
	for _, state := range states {
		fmt.Fprintf(out, "history %s %s source=%s\n", state.RecordedAt.Format("2006-01-02T15:04:05Z07:00"), state.Summary(), state.Source)
	}

	return nil
}

func parseOptions(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet(app.Name+"-debug", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.AttributesFile, "attrs", "", "indicator attributes file (yaml, json or toml)")
	fs.IntVar(&opts.Width, "width", indicator.DefaultWidth, "view width")
	fs.IntVar(&opts.Height, "height", indicator.DefaultHeight, "view height")
	fs.IntVar(&opts.Level, "level", -1, "override the signal level")
	fs.BoolVar(&opts.Disconnected, "disconnected", false, "draw the disconnected overlay")
	fs.IntVar(&opts.History, "history", 0, "also print the last N stored states")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return options{}, fmt.Errorf("view size must be positive: %dx%d", opts.Width, opts.Height)
	}

	return opts, nil
}

// dumpDrawOps paints cfg at the given size and prints one line per draw call.
func dumpDrawOps(out io.Writer, cfg indicator.Config, width, height int) error {
	ind := indicator.New(nil, cfg)
	ind.OnSizeChanged(width, height)
	geom := ind.Geometry()
	if _, err := fmt.Fprintf(out, "view %dx%d cell %dx%d bars=%d level=%d connected=%v\n",
		width, height, geom.CellWidth, geom.CellHeight, ind.BarCount(), ind.Level(), ind.Connected()); err != nil {
		return err
	}

	rec := &opRecorder{out: out}
	ind.Paint(rec)

	return rec.err
}

type opRecorder struct {
	out io.Writer
	err error
}

func (r *opRecorder) FillRoundRect(rect indicator.Rect, radius float32, fill color.NRGBA, shadow *indicator.Shadow) {
	r.printf("fill_round_rect min=(%.1f,%.1f) max=(%.1f,%.1f) radius=%.1f fill=%s%s\n",
		rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y, radius, indicator.FormatColor(fill), shadowSuffix(shadow))
}

func (r *opRecorder) StrokeLine(from, to indicator.Point, width float32, stroke color.NRGBA, lineCap indicator.LineCap, shadow *indicator.Shadow) {
	capName := "butt"
	if lineCap == indicator.CapRound {
		capName = "round"
	}
	r.printf("stroke_line from=(%.1f,%.1f) to=(%.1f,%.1f) width=%.1f stroke=%s cap=%s%s\n",
		from.X, from.Y, to.X, to.Y, width, indicator.FormatColor(stroke), capName, shadowSuffix(shadow))
}

func (r *opRecorder) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.out, format, args...)
}

func shadowSuffix(shadow *indicator.Shadow) string {
	if shadow == nil {
		return ""
	}

	return fmt.Sprintf(" shadow=%s offset=%.1f blur=%.1f", indicator.FormatColor(shadow.Color), shadow.Offset, shadow.Blur)
}
