package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/skobkin/signalbars/internal/indicator"
)

// AttributesEnvPrefix prefixes environment overrides of indicator attributes,
// e.g. SIGNALBARS_SIGNAL_MAXIMUM=7.
const AttributesEnvPrefix = "SIGNALBARS"

// LoadAttributes reads an indicator attribute file (YAML, TOML or JSON).
// An empty path yields a bag backed only by environment overrides.
// The returned value satisfies indicator.Attributes.
func LoadAttributes(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(AttributesEnvPrefix)
	for _, key := range attributeKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind attribute env %s: %w", key, err)
		}
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return v, nil
	}

	v.SetConfigFile(filepath.Clean(path))
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read attributes file: %w", err)
	}

	return v, nil
}

var attributeKeys = []string{
	indicator.AttrSignalMaximum,
	indicator.AttrSignalLevel,
	indicator.AttrPrimaryColor,
	indicator.AttrLevelColor,
	indicator.AttrSpacing,
	indicator.AttrUnitWidth,
	indicator.AttrCornerRadius,
	indicator.AttrConnected,
	indicator.AttrShadowColor,
	indicator.AttrShadowOpen,
	indicator.AttrShape,
	indicator.AttrBarRange,
}

// SaveAttributes writes cfg as an attribute file. The format follows the extension.
func SaveAttributes(path string, cfg indicator.Config) error {
	v := viper.New()
	for key, value := range cfg.Attributes() {
		v.Set(key, value)
	}
	if err := v.WriteConfigAs(filepath.Clean(path)); err != nil {
		return fmt.Errorf("write attributes file: %w", err)
	}

	return nil
}
