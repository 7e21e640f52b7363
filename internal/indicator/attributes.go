package indicator

import (
	"image/color"

	"github.com/spf13/cast"
)

// Attribute names of the declarative configuration surface.
const (
	AttrSignalMaximum = "signal_maximum"
	AttrSignalLevel   = "signal_level"
	AttrPrimaryColor  = "primary_color"
	AttrLevelColor    = "level_color"
	AttrSpacing       = "spacing"
	AttrUnitWidth     = "unit_width"
	AttrCornerRadius  = "corner_radius"
	AttrConnected     = "connected"
	AttrShadowColor   = "shadow_color"
	AttrShadowOpen    = "shadow_open"
	AttrShape         = "shape"
	AttrBarRange      = "bar_range"
)

// Attributes is a read-only attribute bag. *viper.Viper satisfies it.
type Attributes interface {
	IsSet(key string) bool
	Get(key string) any
}

// ConfigFromAttributes builds a config from attrs. It never fails: missing or
// malformed attributes keep their defaults, a bar count below one falls back to
// the default and the level is clamped into [0, bar count].
func ConfigFromAttributes(attrs Attributes) Config {
	cfg := DefaultConfig()
	if attrs == nil {
		return cfg
	}

	if v, ok := lookup(attrs, AttrSignalMaximum, cast.ToIntE); ok && v >= 1 {
		cfg.BarCount = v
	}
	if v, ok := lookup(attrs, AttrSignalLevel, cast.ToIntE); ok {
		cfg.Level = clampInt(v, 0, cfg.BarCount)
	}
	readColor(attrs, AttrPrimaryColor, &cfg.PrimaryColor)
	readColor(attrs, AttrLevelColor, &cfg.LevelColor)
	readColor(attrs, AttrShadowColor, &cfg.ShadowColor)
	readInto(attrs, AttrSpacing, cast.ToIntE, &cfg.Spacing)
	readInto(attrs, AttrUnitWidth, cast.ToIntE, &cfg.BarWidth)
	if v, ok := lookup(attrs, AttrCornerRadius, cast.ToFloat64E); ok {
		cfg.CornerRadius = float32(v)
	}
	readInto(attrs, AttrConnected, cast.ToBoolE, &cfg.Connected)
	readInto(attrs, AttrShadowOpen, cast.ToBoolE, &cfg.ShadowEnabled)
	readInto(attrs, AttrShape, parseShapeValue, &cfg.Shape)
	readInto(attrs, AttrBarRange, parseBarRangeValue, &cfg.BarRange)

	return cfg
}

// lookup converts the raw value under key. ok is false when the key is unset
// or the value does not convert.
func lookup[T any](attrs Attributes, key string, conv func(any) (T, error)) (T, bool) {
	var zero T
	if !attrs.IsSet(key) {
		return zero, false
	}
	v, err := conv(attrs.Get(key))
	if err != nil {
		return zero, false
	}

	return v, true
}

func readInto[T any](attrs Attributes, key string, conv func(any) (T, error), dst *T) {
	if v, ok := lookup(attrs, key, conv); ok {
		*dst = v
	}
}

func readColor(attrs Attributes, key string, dst *color.NRGBA) {
	readInto(attrs, key, func(raw any) (color.NRGBA, error) {
		s, err := cast.ToStringE(raw)
		if err != nil {
			return color.NRGBA{}, err
		}

		return ParseColor(s)
	}, dst)
}

func parseShapeValue(raw any) (Shape, error) {
	s, err := cast.ToStringE(raw)
	if err != nil {
		return "", err
	}

	return ParseShape(s)
}

func parseBarRangeValue(raw any) (BarRange, error) {
	s, err := cast.ToStringE(raw)
	if err != nil {
		return "", err
	}

	return ParseBarRange(s)
}

// MapAttributes is an in-memory attribute bag. Values may be typed or strings.
type MapAttributes map[string]any

func (m MapAttributes) IsSet(key string) bool {
	_, ok := m[key]

	return ok
}

func (m MapAttributes) Get(key string) any {
	return m[key]
}

// Attributes renders cfg back into an attribute bag.
func (c Config) Attributes() MapAttributes {
	return MapAttributes{
		AttrSignalMaximum: c.BarCount,
		AttrSignalLevel:   c.Level,
		AttrPrimaryColor:  FormatColor(c.PrimaryColor),
		AttrLevelColor:    FormatColor(c.LevelColor),
		AttrSpacing:       c.Spacing,
		AttrUnitWidth:     c.BarWidth,
		AttrCornerRadius:  float64(c.CornerRadius),
		AttrConnected:     c.Connected,
		AttrShadowColor:   FormatColor(c.ShadowColor),
		AttrShadowOpen:    c.ShadowEnabled,
		AttrShape:         string(c.Shape),
		AttrBarRange:      string(c.BarRange),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
