package ui

import (
	"context"

	"fyne.io/fyne/v2"

	"github.com/skobkin/signalbars/internal/bus"
	"github.com/skobkin/signalbars/internal/config"
	"github.com/skobkin/signalbars/internal/domain"
	"github.com/skobkin/signalbars/internal/indicator"
	"github.com/skobkin/signalbars/internal/notifications"
)

type DataDependencies struct {
	Config        config.AppConfig
	Indicator     indicator.Config
	Bus           bus.MessageBus
	CurrentConfig func() config.AppConfig
	LastState     func() (domain.IndicatorState, bool)
	RecentStates  func(limit int) ([]domain.IndicatorState, error)
}

type ActionDependencies struct {
	OnSaveAttributes   func(cfg indicator.Config) error
	OnClearHistory     func() error
	StartNotifications func(ctx context.Context, sender notifications.Sender, isForeground func() bool)
	OnQuit             func()
}

type UIHooks struct {
	ShowErrorDialog func(err error, window fyne.Window)
	ShowInfoDialog  func(title, message string, window fyne.Window)
}

type LaunchOptions struct {
	StartHidden bool
}

type RuntimeDependencies struct {
	Data    DataDependencies
	Actions ActionDependencies
	UIHooks UIHooks
	Launch  LaunchOptions
}
