// Package resources exposes embedded icons as fyne resources.
package resources

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

type UIIcon string

const (
	UIIconConnected    UIIcon = "connected"
	UIIconDisconnected UIIcon = "disconnected"
	UIIconReset        UIIcon = "reset"
	UIIconHistory      UIIcon = "history"
)

var uiDarkIconResources = map[UIIcon]fyne.Resource{
	UIIconConnected:    fyne.NewStaticResource("resources/ui/dark/connected.svg", uiDarkConnected),
	UIIconDisconnected: fyne.NewStaticResource("resources/ui/dark/disconnected.svg", uiDarkDisconnected),
	UIIconReset:        fyne.NewStaticResource("resources/ui/dark/reset.svg", uiDarkReset),
	UIIconHistory:      fyne.NewStaticResource("resources/ui/dark/history.svg", uiDarkHistory),
}

var uiLightIconResources = map[UIIcon]fyne.Resource{
	UIIconConnected:    fyne.NewStaticResource("resources/ui/light/connected.svg", uiLightConnected),
	UIIconDisconnected: fyne.NewStaticResource("resources/ui/light/disconnected.svg", uiLightDisconnected),
	UIIconReset:        fyne.NewStaticResource("resources/ui/light/reset.svg", uiLightReset),
	UIIconHistory:      fyne.NewStaticResource("resources/ui/light/history.svg", uiLightHistory),
}

var appIconResource = fyne.NewStaticResource("resources/logo/icon.svg", appIcon)

func UIIconResource(icon UIIcon, variant fyne.ThemeVariant) fyne.Resource {
	if variant == theme.VariantLight {
		if res, ok := uiLightIconResources[icon]; ok {
			return res
		}
	}
	if res, ok := uiDarkIconResources[icon]; ok {
		return res
	}

	return nil
}

// LinkIcon picks the connected or disconnected icon for the variant.
func LinkIcon(connected bool, variant fyne.ThemeVariant) fyne.Resource {
	if connected {
		return UIIconResource(UIIconConnected, variant)
	}

	return UIIconResource(UIIconDisconnected, variant)
}

func AppIconResource() fyne.Resource {
	return appIconResource
}

// AppIconBytes returns the raw app icon for notification backends outside fyne.
func AppIconBytes() []byte {
	return appIcon
}
