package ui

import (
	"testing"

	sbapp "github.com/skobkin/signalbars/internal/app"
	"github.com/skobkin/signalbars/internal/config"
)

func TestBuildRuntimeDependencies_MapsRuntimeAndLaunch(t *testing.T) {
	cfg := config.Default()
	cfg.UI.Notifications.Backend = config.NotificationBackendNone

	rt := &sbapp.Runtime{Config: cfg}

	quitCalled := false
	dep := BuildRuntimeDependencies(rt, LaunchOptions{StartHidden: true}, func() {
		quitCalled = true
	})

	if dep.Data.Config.UI.Notifications.Backend != config.NotificationBackendNone {
		t.Fatalf("expected config to be mapped")
	}
	if dep.Data.CurrentConfig == nil {
		t.Fatalf("expected current config provider to be mapped")
	}
	if got := dep.Data.CurrentConfig().UI.Notifications.Backend; got != config.NotificationBackendNone {
		t.Fatalf("expected current config provider to read runtime config, got %q", got)
	}
	if dep.Data.Bus != nil {
		t.Fatalf("expected nil runtime bus to stay a nil interface")
	}
	if dep.Data.LastState == nil {
		t.Fatalf("expected last state provider to be mapped")
	}
	if _, ok := dep.Data.LastState(); ok {
		t.Fatalf("expected no last state for empty runtime")
	}
	if dep.Data.RecentStates == nil {
		t.Fatalf("expected recent states provider to be mapped")
	}
	if dep.Actions.OnSaveAttributes == nil {
		t.Fatalf("expected save attributes action to be mapped")
	}
	if dep.Actions.OnClearHistory == nil {
		t.Fatalf("expected clear history action to be mapped")
	}
	if dep.Actions.StartNotifications == nil {
		t.Fatalf("expected notifications starter to be mapped")
	}
	if !dep.Launch.StartHidden {
		t.Fatalf("expected launch options to be mapped")
	}
	if dep.Actions.OnQuit == nil {
		t.Fatalf("expected quit action to be mapped")
	}

	dep.Actions.OnQuit()
	if !quitCalled {
		t.Fatalf("expected quit callback to be invoked")
	}
}

func TestBuildRuntimeDependencies_NilRuntimeStillMapsLaunchAndQuit(t *testing.T) {
	quitCalled := false
	dep := BuildRuntimeDependencies(nil, LaunchOptions{StartHidden: true}, func() {
		quitCalled = true
	})

	if !dep.Launch.StartHidden {
		t.Fatalf("expected launch options to be preserved")
	}
	if dep.Actions.OnQuit == nil {
		t.Fatalf("expected quit callback to be preserved")
	}
	if dep.Data.LastState != nil {
		t.Fatalf("expected last state provider to stay nil for nil runtime")
	}
	if dep.Actions.StartNotifications != nil {
		t.Fatalf("expected notifications starter to stay nil for nil runtime")
	}

	dep.Actions.OnQuit()
	if !quitCalled {
		t.Fatalf("expected quit callback invocation")
	}
}
