package indicator

import (
	"fmt"
	"image/color"
	"strings"
)

const (
	DefaultBarCount     = 5
	DefaultLevel        = 0
	DefaultSpacing      = 5
	DefaultBarWidth     = 5
	DefaultCornerRadius = float32(5)
)

var (
	ColorBlack = color.NRGBA{A: 0xff}
	ColorWhite = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ColorGray  = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
)

// Shape selects the drawing primitive used for bars.
type Shape string

const (
	ShapeRoundedRect Shape = "rounded_rect"
	ShapeLine        Shape = "line"
)

func ParseShape(raw string) (Shape, error) {
	switch Shape(strings.ToLower(strings.TrimSpace(raw))) {
	case ShapeRoundedRect, "":
		return ShapeRoundedRect, nil
	case ShapeLine:
		return ShapeLine, nil
	default:
		return "", fmt.Errorf("unknown bar shape: %q", raw)
	}
}

// BarRange selects how many bars the paint loop visits.
// Inclusive visits indices 0..BarCount (BarCount+1 bars) and is the default.
type BarRange string

const (
	BarRangeInclusive BarRange = "inclusive"
	BarRangeExclusive BarRange = "exclusive"
)

func ParseBarRange(raw string) (BarRange, error) {
	switch BarRange(strings.ToLower(strings.TrimSpace(raw))) {
	case BarRangeInclusive, "":
		return BarRangeInclusive, nil
	case BarRangeExclusive:
		return BarRangeExclusive, nil
	default:
		return "", fmt.Errorf("unknown bar range: %q", raw)
	}
}

// Config is the full visual and state configuration of an indicator.
type Config struct {
	BarCount      int
	Level         int
	PrimaryColor  color.NRGBA
	LevelColor    color.NRGBA
	Spacing       int
	BarWidth      int
	CornerRadius  float32
	Connected     bool
	ShadowColor   color.NRGBA
	ShadowEnabled bool
	Shape         Shape
	BarRange      BarRange
}

func DefaultConfig() Config {
	return Config{
		BarCount:      DefaultBarCount,
		Level:         DefaultLevel,
		PrimaryColor:  ColorBlack,
		LevelColor:    ColorWhite,
		Spacing:       DefaultSpacing,
		BarWidth:      DefaultBarWidth,
		CornerRadius:  DefaultCornerRadius,
		Connected:     true,
		ShadowColor:   ColorGray,
		ShadowEnabled: false,
		Shape:         ShapeRoundedRect,
		BarRange:      BarRangeInclusive,
	}
}

// Validate checks the invariants a committed config must hold.
func (c Config) Validate() error {
	if c.BarCount < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidBarCount, c.BarCount)
	}

	return checkLevel(c.Level, c.BarCount)
}

// PaintedBars is the number of bars the paint loop draws.
func (c Config) PaintedBars() int {
	if c.BarRange == BarRangeExclusive {
		return c.BarCount
	}

	return c.BarCount + 1
}

// Update is a sparse set of overrides. Nil fields keep the current value.
type Update struct {
	BarCount      *int
	Level         *int
	PrimaryColor  *color.NRGBA
	LevelColor    *color.NRGBA
	Spacing       *int
	BarWidth      *int
	CornerRadius  *float32
	Connected     *bool
	ShadowColor   *color.NRGBA
	ShadowEnabled *bool
	Shape         *Shape
	BarRange      *BarRange
}

func (u Update) IsEmpty() bool {
	return u == Update{}
}

// Merge returns c with every present override of u applied.
func (c Config) Merge(u Update) Config {
	if u.BarCount != nil {
		c.BarCount = *u.BarCount
	}
	if u.Level != nil {
		c.Level = *u.Level
	}
	if u.PrimaryColor != nil {
		c.PrimaryColor = *u.PrimaryColor
	}
	if u.LevelColor != nil {
		c.LevelColor = *u.LevelColor
	}
	if u.Spacing != nil {
		c.Spacing = *u.Spacing
	}
	if u.BarWidth != nil {
		c.BarWidth = *u.BarWidth
	}
	if u.CornerRadius != nil {
		c.CornerRadius = *u.CornerRadius
	}
	if u.Connected != nil {
		c.Connected = *u.Connected
	}
	if u.ShadowColor != nil {
		c.ShadowColor = *u.ShadowColor
	}
	if u.ShadowEnabled != nil {
		c.ShadowEnabled = *u.ShadowEnabled
	}
	if u.Shape != nil {
		c.Shape = *u.Shape
	}
	if u.BarRange != nil {
		c.BarRange = *u.BarRange
	}

	return c
}

// Builder collects overrides fluently and commits them to an indicator in one step.
type Builder struct {
	target *Indicator
	update Update
}

func (b *Builder) BarCount(v int) *Builder {
	b.update.BarCount = &v

	return b
}

func (b *Builder) Level(v int) *Builder {
	b.update.Level = &v

	return b
}

func (b *Builder) PrimaryColor(v color.NRGBA) *Builder {
	b.update.PrimaryColor = &v

	return b
}

func (b *Builder) LevelColor(v color.NRGBA) *Builder {
	b.update.LevelColor = &v

	return b
}

func (b *Builder) Spacing(v int) *Builder {
	b.update.Spacing = &v

	return b
}

func (b *Builder) BarWidth(v int) *Builder {
	b.update.BarWidth = &v

	return b
}

func (b *Builder) CornerRadius(v float32) *Builder {
	b.update.CornerRadius = &v

	return b
}

func (b *Builder) Connected(v bool) *Builder {
	b.update.Connected = &v

	return b
}

func (b *Builder) ShadowColor(v color.NRGBA) *Builder {
	b.update.ShadowColor = &v

	return b
}

func (b *Builder) ShadowEnabled(v bool) *Builder {
	b.update.ShadowEnabled = &v

	return b
}

func (b *Builder) Shape(v Shape) *Builder {
	b.update.Shape = &v

	return b
}

func (b *Builder) BarRange(v BarRange) *Builder {
	b.update.BarRange = &v

	return b
}

// Update returns the collected overrides without committing them.
func (b *Builder) Update() Update {
	return b.update
}

// Commit applies the collected overrides with a single repaint.
func (b *Builder) Commit() error {
	return b.target.Apply(b.update)
}
