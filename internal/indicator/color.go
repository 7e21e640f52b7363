package indicator

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]color.NRGBA{
	"black":       ColorBlack,
	"white":       ColorWhite,
	"gray":        ColorGray,
	"grey":        ColorGray,
	"transparent": {},
}

// ParseColor accepts #RRGGBB, #AARRGGBB and a few color names.
func ParseColor(raw string) (color.NRGBA, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if named, ok := namedColors[s]; ok {
		return named, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("parse color %q: missing # prefix", raw)
	}

	alpha := uint8(0xff)
	switch len(s) {
	case len("#rrggbb"):
	case len("#aarrggbb"):
		a, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parse color %q alpha: %w", raw, err)
		}
		alpha = uint8(a)
		s = "#" + s[3:]
	default:
		return color.NRGBA{}, fmt.Errorf("parse color %q: unsupported length", raw)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", raw, err)
	}
	r, g, b := c.RGB255()

	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// FormatColor renders c as #AARRGGBB.
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}
