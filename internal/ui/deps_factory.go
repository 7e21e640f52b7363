package ui

import (
	sbapp "github.com/skobkin/signalbars/internal/app"
)

func BuildRuntimeDependencies(rt *sbapp.Runtime, launch LaunchOptions, onQuit func()) RuntimeDependencies {
	dep := RuntimeDependencies{
		Launch: launch,
		Actions: ActionDependencies{
			OnQuit: onQuit,
		},
	}

	if rt == nil {
		return dep
	}

	dep.Data = DataDependencies{
		Config:        rt.Config,
		Indicator:     rt.IndicatorConfig(),
		CurrentConfig: rt.CurrentConfig,
		LastState:     rt.LastState,
		RecentStates:  rt.RecentStates,
	}

	if rt.Bus != nil {
		dep.Data.Bus = rt.Bus
	}

	dep.Actions.OnSaveAttributes = rt.SaveIndicatorAttributes
	dep.Actions.OnClearHistory = rt.ClearHistory
	dep.Actions.StartNotifications = rt.StartNotifications

	return dep
}
