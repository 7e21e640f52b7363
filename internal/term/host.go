// Package term hosts a signal indicator in a terminal using tcell.
package term

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/skobkin/signalbars/internal/bus"
	"github.com/skobkin/signalbars/internal/connectors"
	"github.com/skobkin/signalbars/internal/domain"
	"github.com/skobkin/signalbars/internal/indicator"
)

const (
	statusRows     = 2
	maxInputDigits = 4
	eventBuffer    = 32
)

var defaultBackground = indicator.ColorGray

type HostOption func(*Host)

func WithPublisher(p bus.Publisher) HostOption {
	return func(h *Host) {
		h.publisher = p
	}
}

func WithHostLogger(logger *slog.Logger) HostOption {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

func WithBackground(c color.NRGBA) HostOption {
	return func(h *Host) {
		h.background = c
	}
}

// Host owns a tcell screen and drives one indicator from keyboard input.
// All indicator calls happen on the goroutine running Run.
type Host struct {
	screen     tcell.Screen
	ind        *indicator.Indicator
	surface    *CellSurface
	publisher  bus.Publisher
	logger     *slog.Logger
	background color.NRGBA
	now        func() time.Time

	input     string
	lastTyped int
	status    string
	dirty     bool
}

// NewHost binds an initialized screen to a new indicator built from cfg.
func NewHost(screen tcell.Screen, cfg indicator.Config, opts ...HostOption) *Host {
	h := &Host{
		screen:     screen,
		logger:     slog.With("component", "term"),
		background: defaultBackground,
		now:        time.Now,
		lastTyped:  cfg.Level,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.ind = indicator.New(h, cfg, indicator.WithLogger(h.logger.With("view", "indicator")))
	h.surface = NewCellSurface(screen, h.background)
	screen.SetStyle(tcell.StyleDefault.Background(toTCell(h.background)).Foreground(tcell.ColorBlack))
	h.resize()

	return h
}

func (h *Host) Indicator() *indicator.Indicator {
	return h.ind
}

// Status returns the message shown on the last screen row.
func (h *Host) Status() string {
	return h.status
}

func (h *Host) RequestRepaint() {
	h.dirty = true
}

// Run processes screen events until ctx is done or the user quits.
func (h *Host) Run(ctx context.Context) error {
	events := make(chan tcell.Event, eventBuffer)
	quit := make(chan struct{})
	defer close(quit)
	go h.screen.ChannelEvents(events, quit)

	h.Draw()
	h.logger.Info("terminal host started", "level", h.ind.Level(), "bar_count", h.ind.BarCount())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !h.HandleEvent(ev) {
				h.logger.Info("terminal host stopped")

				return nil
			}
			if h.dirty {
				h.Draw()
			}
		}
	}
}

// HandleEvent applies one screen event. It returns false when the host should stop.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
		h.resize()
		h.dirty = true
	case *tcell.EventKey:
		return h.handleKey(ev)
	}

	return true
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		h.submitInput()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if h.input != "" {
			h.input = h.input[:len(h.input)-1]
			h.dirty = true
		}
	case tcell.KeyRune:
		return h.handleRune(ev.Rune())
	}

	return true
}

func (h *Host) handleRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		if len(h.input) < maxInputDigits {
			h.input += string(r)
			h.status = ""
			h.dirty = true
		}
	case r == 'q':
		return false
	case r == 'c':
		h.ind.SetConnected(!h.ind.Connected())
		h.publishState()
	case r == 'r':
		h.setLevel(h.lastTyped)
	case r == '+', r == '=':
		h.setLevel(h.ind.Level() + 1)
	case r == '-':
		h.setLevel(h.ind.Level() - 1)
	}

	return true
}

func (h *Host) submitInput() {
	if h.input == "" {
		return
	}
	level, err := strconv.Atoi(h.input)
	h.input = ""
	h.dirty = true
	if err != nil {
		h.status = fmt.Sprintf("not a number: %v", err)

		return
	}
	h.lastTyped = level
	h.setLevel(level)
}

func (h *Host) setLevel(level int) {
	before := h.ind.Level()
	if err := h.ind.SetLevel(level); err != nil {
		h.reportError(level, err)

		return
	}
	h.status = ""
	h.dirty = true
	if h.ind.Level() != before {
		h.publishState()
	}
}

func (h *Host) reportError(level int, err error) {
	h.status = err.Error()
	h.dirty = true
	h.logger.Warn("reject signal level", "signal_level", level, "error", err)
	if !errors.Is(err, indicator.ErrInvalidLevel) {
		return
	}
	if h.publisher != nil {
		h.publisher.Publish(connectors.TopicInvalidLevel, domain.InvalidLevelEvent{
			Requested: level,
			BarCount:  h.ind.BarCount(),
			Err:       err.Error(),
			Source:    domain.StateSourceTerminal,
			At:        h.now(),
		})
	}
}

func (h *Host) publishState() {
	if h.publisher == nil {
		return
	}
	h.publisher.Publish(connectors.TopicIndicatorState, h.State())
}

// State snapshots the indicator for the bus.
func (h *Host) State() domain.IndicatorState {
	return domain.IndicatorState{
		Level:      h.ind.Level(),
		BarCount:   h.ind.BarCount(),
		Connected:  h.ind.Connected(),
		Source:     domain.StateSourceTerminal,
		RecordedAt: h.now(),
	}
}

func (h *Host) resize() {
	w, height := h.screen.Size()
	h.ind.OnSizeChanged(w, max(height-statusRows, 0))
}

// Draw repaints the whole screen.
func (h *Host) Draw() {
	h.dirty = false
	h.screen.Clear()
	h.ind.Paint(h.surface)

	w, height := h.screen.Size()
	if height >= statusRows {
		h.drawText(0, height-2, w, h.State().Summary()+"  [0-9 Enter] level [c] link [r] reset [+/-] step [q] quit")
		prompt := "level> " + h.input
		if h.status != "" {
			prompt += "  " + h.status
		}
		h.drawText(0, height-1, w, prompt)
	}
	h.screen.Show()
}

func (h *Host) drawText(x, y, width int, text string) {
	style := tcell.StyleDefault.Background(toTCell(h.background)).Foreground(tcell.ColorBlack)
	for _, r := range text {
		if x >= width {
			return
		}
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
