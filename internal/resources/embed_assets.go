package resources

import _ "embed"

//go:embed logo/icon.svg
var appIcon []byte

//go:embed ui/dark/connected.svg
var uiDarkConnected []byte

//go:embed ui/dark/disconnected.svg
var uiDarkDisconnected []byte

//go:embed ui/dark/reset.svg
var uiDarkReset []byte

//go:embed ui/dark/history.svg
var uiDarkHistory []byte

//go:embed ui/light/connected.svg
var uiLightConnected []byte

//go:embed ui/light/disconnected.svg
var uiLightDisconnected []byte

//go:embed ui/light/reset.svg
var uiLightReset []byte

//go:embed ui/light/history.svg
var uiLightHistory []byte
