package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/skobkin/signalbars/internal/bus"
	"github.com/skobkin/signalbars/internal/config"
	"github.com/skobkin/signalbars/internal/domain"
	"github.com/skobkin/signalbars/internal/indicator"
	"github.com/skobkin/signalbars/internal/logging"
	"github.com/skobkin/signalbars/internal/notifications"
	"github.com/skobkin/signalbars/internal/persistence"
)

const (
	writerDrainTimeout = 2 * time.Second
	dbOpTimeout        = 5 * time.Second
)

// Options override resolved paths and the log console for one process.
type Options struct {
	ConfigFile     string
	AttributesFile string
	// Console receives log output instead of stdout when set.
	Console io.Writer
}

type Runtime struct {
	mu        sync.RWMutex
	closeOnce sync.Once

	Ctx    context.Context
	cancel context.CancelFunc

	Paths  Paths
	Config config.AppConfig

	LogManager  *logging.Manager
	Bus         *bus.PubSubBus
	DB          *sql.DB
	StateRepo   *persistence.StateRepo
	WriterQueue *persistence.WriterQueue

	indicatorCfg indicator.Config
	lastState    domain.IndicatorState
	hasLastState bool
}

func Initialize(parent context.Context, opts Options) (*Runtime, error) {
	paths, err := ResolvePaths()
	if err != nil {
		return nil, err
	}
	if path := strings.TrimSpace(opts.ConfigFile); path != "" {
		paths.ConfigFile = path
	}
	cfg, err := config.Load(paths.ConfigFile)
	if err != nil {
		return nil, err
	}
	if path := strings.TrimSpace(opts.AttributesFile); path != "" {
		cfg.Indicator.AttributesFile = path
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	ctx, cancel := context.WithCancel(parent)
	rt := &Runtime{
		Ctx:    ctx,
		cancel: cancel,
		Paths:  paths,
		Config: cfg,
	}

	logMgr := logging.NewManager()
	if opts.Console != nil {
		logMgr.SetConsole(opts.Console)
	}
	if err := logMgr.Configure(cfg.Logging, paths.LogFile); err != nil {
		_ = logMgr.Close()
		cancel()

		return nil, fmt.Errorf("configure logging: %w", err)
	}
	rt.LogManager = logMgr
	slog.Info("starting runtime", "version", VersionLine())

	indicatorCfg, err := loadIndicatorConfig(rt.attributesPath())
	if err != nil {
		_ = rt.Close()

		return nil, err
	}
	rt.indicatorCfg = indicatorCfg

	db, err := persistence.Open(ctx, paths.DBFile)
	if err != nil {
		_ = rt.Close()

		return nil, err
	}
	rt.DB = db
	rt.StateRepo = persistence.NewStateRepo(db)

	if cfg.Indicator.RestoreLastState {
		rt.restoreLastState(ctx)
	}

	b := bus.New(logMgr.Logger("bus"))
	rt.Bus = b

	writerQueue := persistence.NewWriterQueue(logMgr.Logger("persistence"), WriterQueueSize)
	writerQueue.Start(ctx, writerDrainTimeout)
	rt.WriterQueue = writerQueue
	domain.StartPersistenceProjection(ctx, b, writerQueue, rt.StateRepo, cfg.Indicator.HistoryLimit)

	return rt, nil
}

// attributesPath prefers the configured file and falls back to the default
// location only when that file exists.
func (r *Runtime) attributesPath() string {
	if path := r.Config.Indicator.AttributesFile; path != "" {
		return path
	}
	if _, err := os.Stat(r.Paths.AttributesFile); err == nil {
		return r.Paths.AttributesFile
	}

	return ""
}

func loadIndicatorConfig(path string) (indicator.Config, error) {
	attrs, err := config.LoadAttributes(path)
	if err != nil {
		return indicator.Config{}, err
	}
	cfg := indicator.ConfigFromAttributes(attrs)
	slog.Info("indicator attributes loaded",
		"path", path,
		"bar_count", cfg.BarCount,
		"shape", cfg.Shape,
		"bar_range", cfg.BarRange,
	)

	return cfg, nil
}

func (r *Runtime) restoreLastState(ctx context.Context) {
	opCtx, cancel := context.WithTimeout(ctx, dbOpTimeout)
	defer cancel()

	state, ok, err := r.StateRepo.Latest(opCtx)
	if err != nil {
		slog.Warn("load last indicator state", "error", err)

		return
	}
	if !ok {
		return
	}
	if state.BarCount != r.indicatorCfg.BarCount {
		slog.Info("skip state restore: bar count changed", "stored", state.BarCount, "configured", r.indicatorCfg.BarCount)

		return
	}
	state.Source = domain.StateSourceRestore
	r.lastState = state
	r.hasLastState = true
	slog.Info("restored indicator state", "signal_level", state.Level, "connected", state.Connected)
}

// IndicatorConfig is the initial indicator configuration from attributes.
func (r *Runtime) IndicatorConfig() indicator.Config {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.indicatorCfg
}

// LastState returns the state restored from history, if any.
func (r *Runtime) LastState() (domain.IndicatorState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.lastState, r.hasLastState
}

func (r *Runtime) CurrentConfig() config.AppConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.Config
}

func (r *Runtime) SaveAndApplyConfig(cfg config.AppConfig) error {
	cfg.FillMissingDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	if err := config.Save(r.Paths.ConfigFile, cfg); err != nil {
		r.mu.Unlock()

		return err
	}
	r.Config = cfg
	r.mu.Unlock()

	return r.LogManager.Configure(cfg.Logging, r.Paths.LogFile)
}

// SaveIndicatorAttributes writes cfg to the active attribute file, or to the
// default location when none is configured.
func (r *Runtime) SaveIndicatorAttributes(cfg indicator.Config) error {
	path := r.attributesPath()
	if path == "" {
		path = r.Paths.AttributesFile
	}
	if err := config.SaveAttributes(path, cfg); err != nil {
		return err
	}

	r.mu.Lock()
	r.indicatorCfg = cfg
	r.mu.Unlock()
	slog.Info("indicator attributes saved", "path", path)

	return nil
}

func (r *Runtime) RecentStates(limit int) ([]domain.IndicatorState, error) {
	if r.StateRepo == nil {
		return nil, errors.New("database is not initialized")
	}
	ctx, cancel := context.WithTimeout(r.Ctx, dbOpTimeout)
	defer cancel()

	return r.StateRepo.ListRecent(ctx, limit)
}

func (r *Runtime) ClearHistory() error {
	ctx, cancel := context.WithTimeout(r.Ctx, dbOpTimeout)
	defer cancel()

	removed, err := persistence.ClearStateHistory(ctx, r.DB)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.lastState = domain.IndicatorState{}
	r.hasLastState = false
	r.mu.Unlock()
	slog.Info("state history cleared", "removed", removed)

	return nil
}

// StartNotifications wires bus events to the sender chosen by the host until ctx ends.
// A nil sender falls back to desktop notifications without an icon.
func (r *Runtime) StartNotifications(ctx context.Context, sender notifications.Sender, isForeground func() bool) {
	if sender == nil {
		sender = r.defaultSender()
	}
	service := NewNotificationService(r.Bus, r.CurrentConfig, isForeground, sender, r.LogManager.Logger("notifications"))
	service.Start(ctx)
}

func (r *Runtime) defaultSender() notifications.Sender {
	if r.CurrentConfig().UI.Notifications.Backend == config.NotificationBackendNone {
		return notifications.Nop{}
	}

	return notifications.NewBeeepSender(Name, nil, r.LogManager.Logger("notifications"))
}

// Close stops background work, flushing queued writes first. It is safe to call more than once.
func (r *Runtime) Close() error {
	r.closeOnce.Do(func() {
		if r.cancel != nil {
			r.cancel()
		}
		if r.WriterQueue != nil {
			r.WriterQueue.Wait()
		}
		if r.Bus != nil {
			r.Bus.Close()
		}
		if r.DB != nil {
			_ = r.DB.Close()
		}
		if r.LogManager != nil {
			_ = r.LogManager.Close()
		}
	})

	return nil
}
