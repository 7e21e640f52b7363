package ui

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	sbapp "github.com/skobkin/signalbars/internal/app"
	"github.com/skobkin/signalbars/internal/domain"
	"github.com/skobkin/signalbars/internal/resources"
)

// statusPresenter mirrors the indicator state into the window title, the
// status label and the link icon.
type statusPresenter struct {
	window      fyne.Window
	statusLabel *widget.Label
	linkIcon    *widget.Icon

	mu      sync.RWMutex
	current domain.IndicatorState
}

func newStatusPresenter(
	window fyne.Window,
	statusLabel *widget.Label,
	initial domain.IndicatorState,
	initialVariant fyne.ThemeVariant,
) *statusPresenter {
	presenter := &statusPresenter{
		window:      window,
		statusLabel: statusLabel,
		linkIcon:    widget.NewIcon(resources.LinkIcon(initial.Connected, initialVariant)),
		current:     initial,
	}
	presenter.applyUI(initial, initialVariant)

	return presenter
}

func (p *statusPresenter) LinkIcon() *widget.Icon {
	return p.linkIcon
}

func (p *statusPresenter) Set(state domain.IndicatorState, variant fyne.ThemeVariant) {
	p.mu.Lock()
	p.current = state
	p.mu.Unlock()
	p.applyUI(state, variant)
}

func (p *statusPresenter) ApplyTheme(variant fyne.ThemeVariant) {
	p.mu.RLock()
	state := p.current
	p.mu.RUnlock()
	if p.linkIcon != nil {
		p.linkIcon.SetResource(resources.LinkIcon(state.Connected, variant))
	}
}

func (p *statusPresenter) Current() domain.IndicatorState {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.current
}

func (p *statusPresenter) applyUI(state domain.IndicatorState, variant fyne.ThemeVariant) {
	if p.window != nil {
		p.window.SetTitle(formatWindowTitle(state))
	}
	if p.statusLabel != nil {
		p.statusLabel.Importance = importanceForQuality(state.Quality())
		p.statusLabel.SetText(state.Summary())
	}
	if p.linkIcon != nil {
		p.linkIcon.SetResource(resources.LinkIcon(state.Connected, variant))
	}
}

func formatWindowTitle(state domain.IndicatorState) string {
	return fmt.Sprintf("SignalBars %s - %s", sbapp.BuildVersion(), state.Summary())
}

func importanceForQuality(quality domain.SignalQuality) widget.Importance {
	switch quality {
	case domain.SignalGood:
		return widget.SuccessImportance
	case domain.SignalFair:
		return widget.WarningImportance
	case domain.SignalBad:
		return widget.DangerImportance
	default:
		return widget.MediumImportance
	}
}
