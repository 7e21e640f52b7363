package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/skobkin/signalbars/internal/domain"
	"github.com/skobkin/signalbars/internal/resources"
)

// trayController keeps the tray icon and status item in sync with the indicator.
// It is a no-op when the app has no system tray.
type trayController struct {
	desk       desktop.App
	menu       *fyne.Menu
	statusItem *fyne.MenuItem
	variant    fyne.ThemeVariant
	state      domain.IndicatorState
}

func configureSystemTray(
	fyApp fyne.App,
	window fyne.Window,
	initialVariant fyne.ThemeVariant,
	initial domain.IndicatorState,
	clearHistory func(),
	quit func(),
) *trayController {
	tray := &trayController{variant: initialVariant, state: initial}

	desk, ok := fyApp.(desktop.App)
	if !ok {
		return tray
	}
	tray.desk = desk

	// Tray tooltips are not portable, so the first item carries the status line.
	tray.statusItem = fyne.NewMenuItem(initial.Summary(), nil)
	tray.statusItem.Disabled = true
	tray.menu = fyne.NewMenu("signalbars",
		tray.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show", func() {
			appLogger.Debug("system tray show action invoked")
			window.Show()
			window.RequestFocus()
		}),
		fyne.NewMenuItem("Clear history", func() {
			appLogger.Debug("system tray clear history action invoked")
			if clearHistory != nil {
				clearHistory()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			appLogger.Debug("system tray quit action invoked")
			if quit != nil {
				quit()
			}
		}),
	)
	desk.SetSystemTrayMenu(tray.menu)
	tray.applyIcon()

	return tray
}

// Available reports whether the app exposes a system tray.
func (t *trayController) Available() bool {
	return t.desk != nil
}

func (t *trayController) SetVariant(variant fyne.ThemeVariant) {
	t.variant = variant
	t.applyIcon()
}

func (t *trayController) SetState(state domain.IndicatorState) {
	t.state = state
	if t.desk == nil {
		return
	}
	t.statusItem.Label = state.Summary()
	t.menu.Refresh()
	t.applyIcon()
}

func (t *trayController) applyIcon() {
	if t.desk == nil {
		return
	}
	t.desk.SetSystemTrayIcon(resources.LinkIcon(t.state.Connected, t.variant))
}
