package notifications

import (
	"log/slog"
	"strings"

	"github.com/gen2brain/beeep"
)

// BeeepSender shows desktop notifications through the OS notification service.
type BeeepSender struct {
	appName string
	icon    []byte
	notify  func(title, message string, icon any) error
	logger  *slog.Logger
}

func NewBeeepSender(appName string, icon []byte, logger *slog.Logger) *BeeepSender {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(appName) != "" {
		beeep.AppName = appName
	}

	return &BeeepSender{
		appName: appName,
		icon:    icon,
		notify:  beeep.Notify,
		logger:  logger,
	}
}

func (s *BeeepSender) Send(payload Payload) {
	if s == nil || s.notify == nil {
		return
	}
	payload.Title = strings.TrimSpace(payload.Title)
	payload.Content = strings.TrimSpace(payload.Content)
	if payload.Empty() {
		return
	}

	var icon any = ""
	if len(s.icon) > 0 {
		icon = s.icon
	}
	if err := s.notify(payload.Title, payload.Content, icon); err != nil {
		s.logger.Warn("send desktop notification", "title", payload.Title, "error", err)
	}
}
