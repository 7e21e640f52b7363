package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LogFormat selects the slog handler used for app logs.
type LogFormat string

// NotificationBackend selects how user-facing notifications are delivered.
type NotificationBackend string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"

	NotificationBackendDesktop NotificationBackend = "desktop"
	NotificationBackendFyne    NotificationBackend = "fyne"
	NotificationBackendNone    NotificationBackend = "none"

	DefaultHistoryLimit = 500
)

// LoggingConfig defines runtime logging behavior.
type LoggingConfig struct {
	Level     string    `json:"level"`
	Format    LogFormat `json:"format"`
	LogToFile bool      `json:"log_to_file"`
}

// IndicatorConfig points at the declarative attribute file and controls state restore.
type IndicatorConfig struct {
	AttributesFile   string `json:"attributes_file"`
	RestoreLastState bool   `json:"restore_last_state"`
	HistoryLimit     int    `json:"history_limit"`
}

// UIConfig stores persistent UI preferences.
type UIConfig struct {
	StartHidden   bool               `json:"start_hidden"`
	Notifications NotificationConfig `json:"notifications"`
}

// NotificationConfig stores notification preferences.
type NotificationConfig struct {
	Backend           NotificationBackend `json:"backend"`
	NotifyWhenFocused bool                `json:"notify_when_focused"`
	InvalidLevel      bool                `json:"invalid_level"`
	ConnectionStatus  bool                `json:"connection_status"`
}

// AppConfig is the root persisted application configuration.
type AppConfig struct {
	Logging   LoggingConfig   `json:"logging"`
	Indicator IndicatorConfig `json:"indicator"`
	UI        UIConfig        `json:"ui"`
}

func Default() AppConfig {
	return AppConfig{
		Logging: LoggingConfig{
			Level:     "info",
			Format:    LogFormatText,
			LogToFile: false,
		},
		Indicator: IndicatorConfig{
			AttributesFile:   "",
			RestoreLastState: true,
			HistoryLimit:     DefaultHistoryLimit,
		},
		UI: UIConfig{
			StartHidden: false,
			Notifications: NotificationConfig{
				Backend:           NotificationBackendDesktop,
				NotifyWhenFocused: true,
				InvalidLevel:      true,
				ConnectionStatus:  false,
			},
		},
	}
}

func Load(path string) (AppConfig, error) {
	cfg := Default()
	cleanPath := filepath.Clean(path)
	// #nosec G304 -- path is resolved by app runtime and points to user config dir.
	raw, err := os.ReadFile(cleanPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return AppConfig{}, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(raw, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("decode config json: %w", err)
	}

	cfg.FillMissingDefaults()

	return cfg, nil
}

func (c *AppConfig) FillMissingDefaults() {
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = "info"
	}
	c.Logging.Format = normalizeLogFormat(c.Logging.Format)
	if c.Indicator.HistoryLimit <= 0 {
		c.Indicator.HistoryLimit = DefaultHistoryLimit
	}
	c.Indicator.AttributesFile = strings.TrimSpace(c.Indicator.AttributesFile)
	c.UI.Notifications.Backend = normalizeNotificationBackend(c.UI.Notifications.Backend)
}

func normalizeLogFormat(format LogFormat) LogFormat {
	switch LogFormat(strings.ToLower(string(format))) {
	case LogFormatJSON:
		return LogFormatJSON
	default:
		return LogFormatText
	}
}

func normalizeNotificationBackend(backend NotificationBackend) NotificationBackend {
	switch NotificationBackend(strings.ToLower(string(backend))) {
	case NotificationBackendFyne:
		return NotificationBackendFyne
	case NotificationBackendNone:
		return NotificationBackendNone
	default:
		return NotificationBackendDesktop
	}
}

func (c AppConfig) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log level: %q", c.Logging.Level)
	}
	if c.Indicator.HistoryLimit < 0 {
		return errors.New("history limit must not be negative")
	}
	if path := c.Indicator.AttributesFile; path != "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml", ".toml", ".json":
		default:
			return fmt.Errorf("unsupported attributes file type: %q", path)
		}
	}

	return nil
}

func Save(path string, cfg AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, raw, 0o600); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp config: %w", err)
	}

	return nil
}
