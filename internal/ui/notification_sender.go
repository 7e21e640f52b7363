package ui

import (
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"

	sbapp "github.com/skobkin/signalbars/internal/app"
	"github.com/skobkin/signalbars/internal/config"
	"github.com/skobkin/signalbars/internal/notifications"
	"github.com/skobkin/signalbars/internal/resources"
)

// FyneNotificationSender bridges app notifications to native Fyne notifications.
type FyneNotificationSender struct {
	app fyne.App
}

func NewFyneNotificationSender(app fyne.App) *FyneNotificationSender {
	return &FyneNotificationSender{app: app}
}

func (s *FyneNotificationSender) Send(notification notifications.Payload) {
	if s == nil || s.app == nil {
		return
	}

	title := strings.TrimSpace(notification.Title)
	content := strings.TrimSpace(notification.Content)
	if title == "" && content == "" {
		return
	}

	fyne.Do(func() {
		s.app.SendNotification(fyne.NewNotification(title, content))
	})
}

// newNotificationSender picks the sender for the configured backend.
func newNotificationSender(backend config.NotificationBackend, fyApp fyne.App) notifications.Sender {
	switch backend {
	case config.NotificationBackendFyne:
		return NewFyneNotificationSender(fyApp)
	case config.NotificationBackendNone:
		return notifications.Nop{}
	default:
		return notifications.NewBeeepSender(sbapp.Name, resources.AppIconBytes(), slog.With("component", "ui.notifications"))
	}
}
