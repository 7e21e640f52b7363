package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/skobkin/signalbars/internal/config"
	"github.com/skobkin/signalbars/internal/connectors"
	"github.com/skobkin/signalbars/internal/domain"
	"github.com/skobkin/signalbars/internal/indicator"
)

func initTestRuntime(t *testing.T, opts Options) *Runtime {
	t.Helper()

	origDefault := slog.Default()
	t.Cleanup(func() { slog.SetDefault(origDefault) })
	opts.Console = io.Discard

	rt, err := Initialize(context.Background(), opts)
	if err != nil {
		t.Fatalf("initialize runtime: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })

	return rt
}

func isolateUserDirs(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "cfg"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(t.TempDir(), "cache"))
}

func writeAttributes(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "indicator.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write attributes: %v", err)
	}

	return path
}

func waitForStates(t *testing.T, rt *Runtime, expected int) []domain.IndicatorState {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		states, err := rt.RecentStates(10)
		if err != nil {
			t.Fatalf("list states: %v", err)
		}
		if len(states) >= expected {
			return states
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d stored states", expected)

	return nil
}

func TestInitializeUsesDefaultsWithoutAttributes(t *testing.T) {
	isolateUserDirs(t)
	rt := initTestRuntime(t, Options{})

	cfg := rt.IndicatorConfig()
	if cfg.BarCount != indicator.DefaultBarCount || cfg.Level != indicator.DefaultLevel {
		t.Fatalf("unexpected default indicator config: %+v", cfg)
	}
	if _, ok := rt.LastState(); ok {
		t.Fatalf("expected no restored state on first start")
	}
}

func TestInitializeReadsAttributesFile(t *testing.T) {
	isolateUserDirs(t)
	path := writeAttributes(t, "signal_maximum: 7\nsignal_level: 4\nshape: line\n")

	rt := initTestRuntime(t, Options{AttributesFile: path})

	cfg := rt.IndicatorConfig()
	if cfg.BarCount != 7 || cfg.Level != 4 || cfg.Shape != indicator.ShapeLine {
		t.Fatalf("unexpected indicator config: %+v", cfg)
	}
}

func TestInitializeRejectsUnsupportedAttributesFile(t *testing.T) {
	isolateUserDirs(t)
	origDefault := slog.Default()
	t.Cleanup(func() { slog.SetDefault(origDefault) })

	_, err := Initialize(context.Background(), Options{AttributesFile: "indicator.ini", Console: io.Discard})
	if err == nil {
		t.Fatalf("expected unsupported attributes file error")
	}
}

func TestRuntimePersistsAndRestoresState(t *testing.T) {
	isolateUserDirs(t)
	origDefault := slog.Default()
	t.Cleanup(func() { slog.SetDefault(origDefault) })

	rt, err := Initialize(context.Background(), Options{Console: io.Discard})
	if err != nil {
		t.Fatalf("initialize runtime: %v", err)
	}
	rt.Bus.Publish(connectors.TopicIndicatorState, domain.IndicatorState{
		Level:      4,
		BarCount:   indicator.DefaultBarCount,
		Connected:  false,
		Source:     domain.StateSourceGUI,
		RecordedAt: time.Now(),
	})
	waitForStates(t, rt, 1)
	if err := rt.Close(); err != nil {
		t.Fatalf("close runtime: %v", err)
	}

	restored := initTestRuntime(t, Options{})
	state, ok := restored.LastState()
	if !ok {
		t.Fatalf("expected restored state")
	}
	if state.Level != 4 || state.Connected || state.Source != domain.StateSourceRestore {
		t.Fatalf("unexpected restored state: %+v", state)
	}
}

func TestRuntimeSkipsRestoreWhenBarCountChanged(t *testing.T) {
	isolateUserDirs(t)
	rt := initTestRuntime(t, Options{})
	rt.Bus.Publish(connectors.TopicIndicatorState, domain.IndicatorState{Level: 2, BarCount: 3, Connected: true, RecordedAt: time.Now()})
	waitForStates(t, rt, 1)
	_ = rt.Close()

	restored := initTestRuntime(t, Options{})
	if _, ok := restored.LastState(); ok {
		t.Fatalf("expected restore to be skipped for a different bar count")
	}
}

func TestRuntimeClearHistory(t *testing.T) {
	isolateUserDirs(t)
	rt := initTestRuntime(t, Options{})
	rt.Bus.Publish(connectors.TopicIndicatorState, domain.IndicatorState{Level: 1, BarCount: 5, Connected: true, RecordedAt: time.Now()})
	waitForStates(t, rt, 1)

	if err := rt.ClearHistory(); err != nil {
		t.Fatalf("clear history: %v", err)
	}
	states, err := rt.RecentStates(10)
	if err != nil {
		t.Fatalf("list states: %v", err)
	}
	if len(states) != 0 {
		t.Fatalf("expected empty history, got %d rows", len(states))
	}
}

func TestRuntimeClearHistoryStopsAfterShutdown(t *testing.T) {
	isolateUserDirs(t)
	rt := initTestRuntime(t, Options{})
	rt.Bus.Publish(connectors.TopicIndicatorState, domain.IndicatorState{Level: 2, BarCount: 5, Connected: true, RecordedAt: time.Now()})
	waitForStates(t, rt, 1)

	rt.cancel()
	if err := rt.ClearHistory(); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled clear, got %v", err)
	}
	states, err := rt.StateRepo.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("list states: %v", err)
	}
	if len(states) != 1 {
		t.Fatalf("expected history to survive a canceled clear, got %d rows", len(states))
	}
}

func TestRuntimeSaveAndApplyConfig(t *testing.T) {
	isolateUserDirs(t)
	rt := initTestRuntime(t, Options{})

	cfg := rt.CurrentConfig()
	cfg.UI.Notifications.Backend = config.NotificationBackendNone
	cfg.Logging.Format = config.LogFormatJSON
	if err := rt.SaveAndApplyConfig(cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}

	loaded, err := config.Load(rt.Paths.ConfigFile)
	if err != nil {
		t.Fatalf("load saved config: %v", err)
	}
	if loaded.UI.Notifications.Backend != config.NotificationBackendNone || loaded.Logging.Format != config.LogFormatJSON {
		t.Fatalf("unexpected saved config: %+v", loaded)
	}
}

func TestRuntimeSaveIndicatorAttributes(t *testing.T) {
	isolateUserDirs(t)
	rt := initTestRuntime(t, Options{})

	cfg := indicator.DefaultConfig()
	cfg.BarCount = 6
	cfg.Level = 2
	if err := rt.SaveIndicatorAttributes(cfg); err != nil {
		t.Fatalf("save attributes: %v", err)
	}
	_ = rt.Close()

	reopened := initTestRuntime(t, Options{})
	if got := reopened.IndicatorConfig(); got.BarCount != 6 || got.Level != 2 {
		t.Fatalf("expected saved attributes to be picked up, got %+v", got)
	}
}
