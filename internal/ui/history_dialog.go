package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	sbapp "github.com/skobkin/signalbars/internal/app"
	"github.com/skobkin/signalbars/internal/domain"
)

const historyTimeLayout = "2006-01-02 15:04:05"

func showHistoryDialog(dep RuntimeDependencies, window fyne.Window) {
	if dep.Data.RecentStates == nil {
		return
	}
	states, err := dep.Data.RecentStates(sbapp.StateHistoryLoad)
	if err != nil {
		appLogger.Warn("load indicator history", "error", err)
		showErrorDialog(dep, err, window)

		return
	}

	history := dialog.NewCustom("History", "Close", newHistoryList(states), window)
	history.Resize(fyne.NewSize(420, 320))
	history.Show()
}

func newHistoryList(states []domain.IndicatorState) fyne.CanvasObject {
	if len(states) == 0 {
		return widget.NewLabel("No recorded states yet.")
	}

	return widget.NewList(
		func() int { return len(states) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			item.(*widget.Label).SetText(formatHistoryRow(states[id]))
		},
	)
}

func formatHistoryRow(state domain.IndicatorState) string {
	return fmt.Sprintf("%s  %s  [%s]", state.RecordedAt.Local().Format(historyTimeLayout), state.Summary(), state.Source)
}
