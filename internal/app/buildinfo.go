package app

import (
	"runtime/debug"
	"strings"
	"time"
)

const buildDateLayout = "2006-01-02"

var (
	// Version is filled by ldflags in release builds.
	Version = ""
	// BuildDate is filled by ldflags in release builds.
	BuildDate = ""

	readBuildInfo = debug.ReadBuildInfo
)

// BuildVersion prefers the ldflags value, then the module version stamped by go install.
func BuildVersion() string {
	if version := strings.TrimSpace(Version); version != "" {
		return version
	}
	if info, ok := readBuildInfo(); ok && info != nil {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}

	return "dev"
}

// BuildDateYMD falls back to the VCS commit time when no build date was injected.
func BuildDateYMD() string {
	raw := strings.TrimSpace(BuildDate)
	if raw == "" {
		raw = buildSetting("vcs.time")
	}
	if raw == "" {
		return ""
	}

	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.UTC().Format(buildDateLayout)
	}
	if len(raw) >= len(buildDateLayout) {
		date := raw[:len(buildDateLayout)]
		if _, err := time.Parse(buildDateLayout, date); err == nil {
			return date
		}
	}

	return raw
}

// VersionLine is the one-line identification printed in logs, e.g. "signalbars 0.2.0 (2026-01-30)".
func VersionLine() string {
	line := Name + " " + BuildVersion()
	if date := BuildDateYMD(); date != "" {
		line += " (" + date + ")"
	}

	return line
}

func buildSetting(key string) string {
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}

	return ""
}
