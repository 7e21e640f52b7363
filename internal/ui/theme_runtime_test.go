package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	fynetest "fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/skobkin/signalbars/internal/domain"
	"github.com/skobkin/signalbars/internal/resources"
)

func TestThemeRuntimeApplyInvokesThemeTargets(t *testing.T) {
	app := fynetest.NewApp()
	t.Cleanup(app.Quit)

	var trayVariants []fyne.ThemeVariant
	presenter := newStatusPresenter(nil, widget.NewLabel(""), domain.IndicatorState{Connected: true}, theme.VariantLight)

	runtime := newThemeRuntime(app, presenter)
	runtime.SetTrayVariantSetter(func(variant fyne.ThemeVariant) {
		trayVariants = append(trayVariants, variant)
	})
	runtime.BindSettings()
	runtime.Apply(theme.VariantDark)

	if len(trayVariants) != 1 || trayVariants[0] != theme.VariantDark {
		t.Fatalf("expected tray variant callback once with dark, got %v", trayVariants)
	}
	if presenter.LinkIcon().Resource != resources.LinkIcon(true, theme.VariantDark) {
		t.Fatalf("expected status icon to follow the dark theme")
	}
}

func TestThemeRuntimeSetTrayVariantSetterNilUsesNoop(t *testing.T) {
	app := fynetest.NewApp()
	t.Cleanup(app.Quit)

	runtime := newThemeRuntime(app, nil)
	runtime.SetTrayVariantSetter(nil)
	runtime.Apply(theme.VariantLight)
}
