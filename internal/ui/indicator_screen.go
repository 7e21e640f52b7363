package ui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/skobkin/signalbars/internal/bus"
	"github.com/skobkin/signalbars/internal/connectors"
	"github.com/skobkin/signalbars/internal/domain"
	"github.com/skobkin/signalbars/internal/indicator"
)

const startupLevel = 3

// indicatorScreen is the sample host: a connected switch, a level entry and a
// reset button driving one SignalIndicator.
type indicatorScreen struct {
	indicator   *SignalIndicator
	connected   *widget.Check
	levelEntry  *widget.Entry
	resetButton *widget.Button

	publisher bus.Publisher
	showError func(error)
	now       func() time.Time

	lastParsed int
}

func newIndicatorScreen(
	cfg indicator.Config,
	restored *domain.IndicatorState,
	publisher bus.Publisher,
	showError func(error),
) *indicatorScreen {
	s := &indicatorScreen{
		indicator: NewSignalIndicator(cfg),
		publisher: publisher,
		showError: showError,
		now:       time.Now,
	}
	s.startup(restored)

	s.connected = widget.NewCheck("Connected", func(on bool) {
		s.indicator.SetConnected(on)
	})
	s.connected.SetChecked(s.indicator.Config().Connected)

	s.levelEntry = widget.NewEntry()
	s.levelEntry.SetPlaceHolder("Signal level")
	s.levelEntry.OnChanged = s.rememberLevel
	s.levelEntry.OnSubmitted = func(text string) {
		s.rememberLevel(text)
		s.reset()
	}

	s.resetButton = widget.NewButton("Reset", s.reset)

	// Register after startup so only user changes are published.
	s.indicator.OnStateChanged(func(indicator.Config) {
		s.publishState()
	})

	return s
}

// startup puts the widget into a known state, then applies the initial level
// in one batch: the restored state when there is one.
func (s *indicatorScreen) startup(restored *domain.IndicatorState) {
	s.indicator.SetConnected(false)
	if err := s.indicator.SetLevel(0); err != nil {
		appLogger.Warn("reset indicator level", "error", err)
	}

	b := s.indicator.Builder()
	if restored != nil {
		b.Level(restored.Level).Connected(restored.Connected)
	} else {
		b.Level(min(startupLevel, s.indicator.Config().BarCount))
	}
	if err := b.Commit(); err != nil {
		appLogger.Warn("apply startup indicator state", "error", err)
	}
	s.lastParsed = s.indicator.Config().Level
}

func (s *indicatorScreen) Content() fyne.CanvasObject {
	controls := container.NewHBox(s.connected, s.resetButton)

	return container.NewBorder(
		nil,
		container.NewVBox(s.levelEntry, controls),
		nil,
		nil,
		container.NewCenter(s.indicator),
	)
}

// rememberLevel keeps the last parsable level. Other text leaves it unchanged.
func (s *indicatorScreen) rememberLevel(text string) {
	level, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return
	}
	s.lastParsed = level
}

func (s *indicatorScreen) reset() {
	level := s.lastParsed
	if err := s.indicator.SetLevel(level); err != nil {
		s.reportError(level, err)
	}
}

func (s *indicatorScreen) reportError(level int, err error) {
	appLogger.Warn("reject signal level", "signal_level", level, "error", err)
	if s.showError != nil {
		s.showError(err)
	}
	if !errors.Is(err, indicator.ErrInvalidLevel) || s.publisher == nil {
		return
	}
	s.publisher.Publish(connectors.TopicInvalidLevel, domain.InvalidLevelEvent{
		Requested: level,
		BarCount:  s.indicator.Config().BarCount,
		Err:       err.Error(),
		Source:    domain.StateSourceGUI,
		At:        s.now(),
	})
}

func (s *indicatorScreen) State() domain.IndicatorState {
	cfg := s.indicator.Config()

	return domain.IndicatorState{
		Level:      cfg.Level,
		BarCount:   cfg.BarCount,
		Connected:  cfg.Connected,
		Source:     domain.StateSourceGUI,
		RecordedAt: s.now(),
	}
}

func (s *indicatorScreen) publishState() {
	if s.publisher != nil {
		s.publisher.Publish(connectors.TopicIndicatorState, s.State())
	}
}
