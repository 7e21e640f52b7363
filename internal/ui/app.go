// Package ui hosts the signal indicator in a Fyne window with a tray menu.
package ui

import "log/slog"

var appLogger = slog.With("component", "ui")

func Run(dep RuntimeDependencies) error {
	return runWithApp(dep, newFyneApp())
}
