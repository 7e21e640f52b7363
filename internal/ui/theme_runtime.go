package ui

import (
	"fyne.io/fyne/v2"

	"github.com/skobkin/signalbars/internal/resources"
)

type themeRuntime struct {
	fyApp           fyne.App
	statusPresenter *statusPresenter
	setTrayVariant  func(fyne.ThemeVariant)
}

func newThemeRuntime(fyApp fyne.App, statusPresenter *statusPresenter) *themeRuntime {
	return &themeRuntime{
		fyApp:           fyApp,
		statusPresenter: statusPresenter,
		setTrayVariant:  func(fyne.ThemeVariant) {},
	}
}

func (r *themeRuntime) SetTrayVariantSetter(setter func(fyne.ThemeVariant)) {
	if setter == nil {
		r.setTrayVariant = func(fyne.ThemeVariant) {}

		return
	}
	r.setTrayVariant = setter
}

func (r *themeRuntime) BindSettings() {
	r.fyApp.Settings().AddListener(func(_ fyne.Settings) {
		appLogger.Debug("theme settings changed")
		r.Apply(r.fyApp.Settings().ThemeVariant())
	})
}

func (r *themeRuntime) Apply(variant fyne.ThemeVariant) {
	appLogger.Debug("applying theme resources", "theme", variant)
	r.fyApp.SetIcon(resources.AppIconResource())
	r.setTrayVariant(variant)
	if r.statusPresenter != nil {
		r.statusPresenter.ApplyTheme(variant)
	}
}
