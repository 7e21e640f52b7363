package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/skobkin/signalbars/internal/bus"
	"github.com/skobkin/signalbars/internal/config"
	"github.com/skobkin/signalbars/internal/connectors"
	"github.com/skobkin/signalbars/internal/domain"
	"github.com/skobkin/signalbars/internal/notifications"
)

const (
	notificationTitleInvalidLevel = "Invalid signal level"
	notificationTitleLinkUp       = "Link restored"
	notificationTitleLinkDown     = "Link lost"
)

// NotificationService listens to bus events and emits user-facing notifications.
type NotificationService struct {
	bus           bus.MessageBus
	currentConfig func() config.AppConfig
	isForeground  func() bool
	sender        notifications.Sender
	logger        *slog.Logger

	linkMu     sync.Mutex
	lastLink   bool
	lastLinkOK bool
}

func NewNotificationService(
	messageBus bus.MessageBus,
	currentConfig func() config.AppConfig,
	isForeground func() bool,
	sender notifications.Sender,
	logger *slog.Logger,
) *NotificationService {
	if logger == nil {
		logger = slog.Default().With("component", "app.notifications")
	}

	return &NotificationService{
		bus:           messageBus,
		currentConfig: currentConfig,
		isForeground:  isForeground,
		sender:        sender,
		logger:        logger,
	}
}

func (s *NotificationService) Start(ctx context.Context) {
	if s == nil || s.bus == nil || s.sender == nil {
		return
	}

	invalidSub := s.bus.Subscribe(connectors.TopicInvalidLevel)
	stateSub := s.bus.Subscribe(connectors.TopicIndicatorState)

	go func() {
		defer s.bus.Unsubscribe(invalidSub, connectors.TopicInvalidLevel)
		defer s.bus.Unsubscribe(stateSub, connectors.TopicIndicatorState)

		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-invalidSub:
				if !ok {
					return
				}
				event, ok := raw.(domain.InvalidLevelEvent)
				if !ok {
					continue
				}
				s.handleInvalidLevel(event)
			case raw, ok := <-stateSub:
				if !ok {
					return
				}
				state, ok := raw.(domain.IndicatorState)
				if !ok {
					continue
				}
				s.handleState(state)
			}
		}
	}()
}

func (s *NotificationService) handleInvalidLevel(event domain.InvalidLevelEvent) {
	prefs := s.notificationPrefs()
	if !s.shouldNotify(prefs, prefs.InvalidLevel) {
		return
	}

	content := strings.TrimSpace(event.Err)
	if content == "" {
		content = fmt.Sprintf("level %d is outside 0..%d", event.Requested, event.BarCount)
	}
	s.send(notifications.Payload{
		Title:   notificationTitleInvalidLevel,
		Content: content,
	})
}

// handleState notifies only on link transitions. The first state seen is
// recorded without a notification.
func (s *NotificationService) handleState(state domain.IndicatorState) {
	s.linkMu.Lock()
	changed := s.lastLinkOK && s.lastLink != state.Connected
	s.lastLink = state.Connected
	s.lastLinkOK = true
	s.linkMu.Unlock()
	if !changed {
		return
	}

	prefs := s.notificationPrefs()
	if !s.shouldNotify(prefs, prefs.ConnectionStatus) {
		return
	}
	title := notificationTitleLinkDown
	if state.Connected {
		title = notificationTitleLinkUp
	}
	s.send(notifications.Payload{
		Title:   title,
		Content: state.Summary(),
	})
}

func (s *NotificationService) shouldNotify(prefs config.NotificationConfig, kindEnabled bool) bool {
	if !kindEnabled || prefs.Backend == config.NotificationBackendNone {
		return false
	}
	if prefs.NotifyWhenFocused {
		return true
	}
	if s.isForeground == nil {
		return true
	}

	return !s.isForeground()
}

func (s *NotificationService) notificationPrefs() config.NotificationConfig {
	cfg := config.Default()
	if s.currentConfig != nil {
		cfg = s.currentConfig()
		cfg.FillMissingDefaults()
	}

	return cfg.UI.Notifications
}

func (s *NotificationService) send(notification notifications.Payload) {
	title := strings.TrimSpace(notification.Title)
	content := strings.TrimSpace(notification.Content)
	if title == "" && content == "" {
		return
	}
	s.logger.Debug("sending notification", "title", title)
	s.sender.Send(notifications.Payload{
		Title:   title,
		Content: content,
	})
}
