package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/skobkin/signalbars/internal/indicator"
)

const (
	fillRune   = '█'
	shadowRune = '░'
)

// CellSurface paints indicator draw calls onto a tcell screen.
// One view unit maps to one terminal cell.
type CellSurface struct {
	screen     tcell.Screen
	background color.NRGBA
}

func NewCellSurface(screen tcell.Screen, background color.NRGBA) *CellSurface {
	return &CellSurface{screen: screen, background: background}
}

func (s *CellSurface) FillRoundRect(r indicator.Rect, _ float32, fill color.NRGBA, shadow *indicator.Shadow) {
	if shadow != nil {
		s.fill(offsetRect(r, shadow.Offset), shadowRune, shadow.Color)
	}
	s.fill(r, fillRune, fill)
}

func (s *CellSurface) StrokeLine(from, to indicator.Point, width float32, stroke color.NRGBA, _ indicator.LineCap, shadow *indicator.Shadow) {
	if from.X == to.X {
		// Vertical strokes are bars: keep their width.
		half := width / 2
		r := indicator.Rect{
			Min: indicator.Point{X: from.X - half, Y: min(from.Y, to.Y)},
			Max: indicator.Point{X: from.X + half, Y: max(from.Y, to.Y)},
		}
		s.FillRoundRect(r, 0, stroke, shadow)

		return
	}

	if shadow != nil {
		s.line(offsetPoint(from, shadow.Offset), offsetPoint(to, shadow.Offset), shadowRune, shadow.Color)
	}
	s.line(from, to, slantRune(from, to), stroke)
}

func (s *CellSurface) fill(r indicator.Rect, ch rune, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	w, h := s.screen.Size()
	x0 := clamp(int(math.Floor(float64(r.Min.X))), 0, w)
	x1 := clamp(int(math.Ceil(float64(r.Max.X))), 0, w)
	y0 := clamp(int(math.Floor(float64(r.Min.Y))), 0, h)
	y1 := clamp(int(math.Ceil(float64(r.Max.Y))), 0, h)
	style := s.style(c)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

// line rasterizes a segment with Bresenham's algorithm.
func (s *CellSurface) line(from, to indicator.Point, ch rune, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	w, h := s.screen.Size()
	style := s.style(c)

	x0, y0 := round(from.X), round(from.Y)
	x1, y1 := round(to.X), round(to.Y)
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if x0 >= 0 && x0 < w && y0 >= 0 && y0 < h {
			s.screen.SetContent(x0, y0, ch, nil, style)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// style blends translucent colors over the background since cells have no alpha.
func (s *CellSurface) style(c color.NRGBA) tcell.Style {
	bg := toTCell(s.background)
	if c.A == 0xff {
		return tcell.StyleDefault.Foreground(toTCell(c)).Background(bg)
	}

	fg, okFg := colorful.MakeColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	base, okBg := colorful.MakeColor(s.background)
	if !okFg || !okBg {
		return tcell.StyleDefault.Foreground(toTCell(c)).Background(bg)
	}
	r, g, b := base.BlendRgb(fg, float64(c.A)/0xff).RGB255()

	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b))).Background(bg)
}

func toTCell(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func slantRune(from, to indicator.Point) rune {
	switch {
	case from.Y == to.Y:
		return '─'
	case (to.X-from.X)*(to.Y-from.Y) > 0:
		return '╲'
	default:
		return '╱'
	}
}

func offsetRect(r indicator.Rect, d float32) indicator.Rect {
	return indicator.Rect{Min: offsetPoint(r.Min, d), Max: offsetPoint(r.Max, d)}
}

func offsetPoint(p indicator.Point, d float32) indicator.Point {
	return indicator.Point{X: p.X + d, Y: p.Y + d}
}

func round(v float32) int {
	return int(math.Round(float64(v)))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
