package ui

import (
	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	sbapp "github.com/skobkin/signalbars/internal/app"
	"github.com/skobkin/signalbars/internal/domain"
	"github.com/skobkin/signalbars/internal/resources"
)

var newFyneApp = func() fyne.App {
	return fyneapp.NewWithID("io.github.skobkin." + sbapp.Name)
}

func runWithApp(dep RuntimeDependencies, fyApp fyne.App) error {
	initialVariant := fyApp.Settings().ThemeVariant()
	fyApp.SetIcon(resources.AppIconResource())
	appLogger.Info(
		"starting UI runtime",
		"start_hidden", dep.Launch.StartHidden,
		"initial_theme", initialVariant,
	)

	window := fyApp.NewWindow("")
	window.Resize(fyne.NewSize(480, 360))

	showError := func(err error) {
		showErrorDialog(dep, err, window)
	}
	screen := newIndicatorScreen(dep.Data.Indicator, restoredState(dep), dep.Data.Bus, showError)

	initial := screen.State()
	statusLabel := widget.NewLabel("")
	presenter := newStatusPresenter(window, statusLabel, initial, initialVariant)

	uiRuntime := newUIRuntime(fyApp, window, nil, nil, dep.Actions.OnQuit)
	tray := configureSystemTray(fyApp, window, initialVariant, initial, func() {
		clearHistory(dep, window)
	}, uiRuntime.Quit)

	themeRuntime := newThemeRuntime(fyApp, presenter)
	themeRuntime.SetTrayVariantSetter(tray.SetVariant)
	themeRuntime.BindSettings()

	uiRuntime.stopNotifications = startNotificationService(dep, fyApp, dep.Launch.StartHidden)
	uiRuntime.stopUIListeners = startUIEventListeners(dep.Data.Bus, func(state domain.IndicatorState) {
		fyne.Do(func() {
			presenter.Set(state, fyApp.Settings().ThemeVariant())
			tray.SetState(state)
		})
	})

	toolbar := newMainToolbar(dep, fyApp, window, screen)
	status := container.NewHBox(presenter.LinkIcon(), statusLabel)
	window.SetContent(container.NewBorder(toolbar, status, nil, nil, screen.Content()))

	uiRuntime.BindCloseIntercept(tray.Available())
	themeRuntime.Apply(initialVariant)

	uiRuntime.Run(dep.Launch.StartHidden)

	return nil
}

func restoredState(dep RuntimeDependencies) *domain.IndicatorState {
	if dep.Data.LastState == nil {
		return nil
	}
	state, ok := dep.Data.LastState()
	if !ok {
		return nil
	}
	appLogger.Info("restoring indicator state", "signal_level", state.Level, "connected", state.Connected)

	return &state
}

func newMainToolbar(dep RuntimeDependencies, fyApp fyne.App, window fyne.Window, screen *indicatorScreen) fyne.CanvasObject {
	variant := fyApp.Settings().ThemeVariant()
	historyButton := widget.NewButtonWithIcon("History", resources.UIIconResource(resources.UIIconHistory, variant), func() {
		showHistoryDialog(dep, window)
	})
	screen.resetButton.SetIcon(resources.UIIconResource(resources.UIIconReset, variant))
	saveButton := widget.NewButtonWithIcon("Save style", theme.DocumentSaveIcon(), func() {
		if dep.Actions.OnSaveAttributes == nil {
			return
		}
		if err := dep.Actions.OnSaveAttributes(screen.indicator.Config()); err != nil {
			appLogger.Warn("save indicator attributes", "error", err)
			showErrorDialog(dep, err, window)

			return
		}
		showInfoDialog(dep, "Style saved", "Indicator attributes were written.", window)
	})
	if dep.Actions.OnSaveAttributes == nil {
		saveButton.Disable()
	}
	if dep.Data.RecentStates == nil {
		historyButton.Disable()
	}

	return container.NewHBox(historyButton, saveButton)
}

func clearHistory(dep RuntimeDependencies, window fyne.Window) {
	if dep.Actions.OnClearHistory == nil {
		return
	}
	if err := dep.Actions.OnClearHistory(); err != nil {
		appLogger.Warn("clear indicator history", "error", err)
		showErrorDialog(dep, err, window)

		return
	}
	showInfoDialog(dep, "History cleared", "Stored indicator states were removed.", window)
}

func showErrorDialog(dep RuntimeDependencies, err error, window fyne.Window) {
	if dep.UIHooks.ShowErrorDialog != nil {
		dep.UIHooks.ShowErrorDialog(err, window)

		return
	}
	dialog.ShowError(err, window)
}

func showInfoDialog(dep RuntimeDependencies, title, message string, window fyne.Window) {
	if dep.UIHooks.ShowInfoDialog != nil {
		dep.UIHooks.ShowInfoDialog(title, message, window)

		return
	}
	dialog.ShowInformation(title, message, window)
}
