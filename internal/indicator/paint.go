package indicator

import "image/color"

// LineCap is the end style of stroked lines.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
)

// Shadow describes a drop shadow a surface should render behind a shape.
type Shadow struct {
	Color  color.NRGBA
	Offset float32
	Blur   float32
}

// Surface receives draw calls from Paint. Implementations own the pixels.
type Surface interface {
	FillRoundRect(r Rect, radius float32, fill color.NRGBA, shadow *Shadow)
	StrokeLine(from, to Point, width float32, stroke color.NRGBA, lineCap LineCap, shadow *Shadow)
}

// Paint draws the current state onto s. It does not mutate the indicator.
func (ind *Indicator) Paint(s Surface) {
	if s == nil {
		return
	}
	ind.logger.Debug("paint", "cell_width", ind.geom.CellWidth, "cell_height", ind.geom.CellHeight)

	shadow := ind.shadow()
	for _, bar := range barLayout(ind.cfg, ind.geom, ind.height) {
		switch ind.cfg.Shape {
		case ShapeLine:
			x := bar.Rect.Min.X + float32(ind.cfg.BarWidth)/2
			s.StrokeLine(
				Point{X: x, Y: bar.Rect.Min.Y},
				Point{X: x, Y: bar.Rect.Max.Y},
				float32(ind.cfg.BarWidth),
				bar.Color,
				CapRound,
				shadow,
			)
		default:
			s.FillRoundRect(bar.Rect, ind.cfg.CornerRadius, bar.Color, shadow)
		}
	}

	if ind.cfg.Connected {
		return
	}
	from, to := overlayLine(ind.width, ind.height)
	s.StrokeLine(from, to, float32(ind.cfg.BarWidth), ind.cfg.PrimaryColor, CapRound, shadow)
}

func (ind *Indicator) shadow() *Shadow {
	if !ind.cfg.ShadowEnabled {
		return nil
	}

	return &Shadow{
		Color:  ind.cfg.ShadowColor,
		Offset: float32(ind.cfg.BarWidth) * shadowOffsetFactor,
		Blur:   shadowBlur,
	}
}
