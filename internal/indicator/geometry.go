package indicator

import "image/color"

// Point is a position in view units.
type Point struct {
	X, Y float32
}

// Rect is an axis-aligned rectangle in view units.
type Rect struct {
	Min, Max Point
}

func (r Rect) Width() float32 {
	return r.Max.X - r.Min.X
}

func (r Rect) Height() float32 {
	return r.Max.Y - r.Min.Y
}

// Geometry is the per-cell layout cached between size changes.
type Geometry struct {
	CellWidth  int
	CellHeight int
}

func computeGeometry(width, height, barCount int) Geometry {
	g := Geometry{CellHeight: height}
	if barCount > 0 {
		g.CellWidth = width / barCount
	}

	return g
}

const (
	barCenterFactor = 0.5
	barTopFactor    = 0.1
	barBottomFactor = 0.8

	overlayInsetX = 0.2
	overlayInsetY = 0.1

	shadowOffsetFactor = 0.2
	shadowBlur         = 5
)

// Bar is the resolved layout of one signal pole.
type Bar struct {
	Index int
	Lit   bool
	Color color.NRGBA
	Rect  Rect
}

// barLayout computes bars from cfg, cached geometry and the current view height.
func barLayout(cfg Config, geom Geometry, viewHeight int) []Bar {
	n := cfg.PaintedBars()
	bottom := float32(viewHeight) * barBottomFactor
	bars := make([]Bar, 0, n)
	for i := 0; i < n; i++ {
		x := float32(geom.CellWidth)*(float32(i)+barCenterFactor) + float32(cfg.Spacing)
		top := float32(geom.CellHeight) * float32(cfg.BarCount-i) * barTopFactor
		lit := i < cfg.Level
		c := cfg.PrimaryColor
		if lit {
			c = cfg.LevelColor
		}
		bars = append(bars, Bar{
			Index: i,
			Lit:   lit,
			Color: c,
			Rect: Rect{
				Min: Point{X: x, Y: top},
				Max: Point{X: x + float32(cfg.BarWidth), Y: bottom},
			},
		})
	}

	return bars
}

func overlayLine(width, height int) (Point, Point) {
	w := float32(width)
	h := float32(height)

	return Point{X: w * overlayInsetX, Y: h * overlayInsetY},
		Point{X: w * (1 - overlayInsetX), Y: h * (1 - overlayInsetY)}
}
