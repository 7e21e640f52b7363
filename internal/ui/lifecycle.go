package ui

import (
	"context"
	"sync/atomic"

	"fyne.io/fyne/v2"
)

func startNotificationService(dep RuntimeDependencies, fyApp fyne.App, startHidden bool) func() {
	var appForeground atomic.Bool
	appForeground.Store(!startHidden)
	fyApp.Lifecycle().SetOnEnteredForeground(func() {
		appForeground.Store(true)
	})
	fyApp.Lifecycle().SetOnExitedForeground(func() {
		appForeground.Store(false)
	})

	notificationsCtx, stopNotifications := context.WithCancel(context.Background())
	if dep.Actions.StartNotifications != nil {
		backend := dep.Data.Config.UI.Notifications.Backend
		if dep.Data.CurrentConfig != nil {
			backend = dep.Data.CurrentConfig().UI.Notifications.Backend
		}
		dep.Actions.StartNotifications(notificationsCtx, newNotificationSender(backend, fyApp), appForeground.Load)
	}

	return stopNotifications
}
