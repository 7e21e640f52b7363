package ui

import (
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/skobkin/signalbars/internal/indicator"
)

// SignalIndicator renders an indicator.Indicator with fyne canvas primitives.
// Call it from the fyne goroutine only.
type SignalIndicator struct {
	widget.BaseWidget

	ind            *indicator.Indicator
	onStateChanged func(indicator.Config)
}

func NewSignalIndicator(cfg indicator.Config) *SignalIndicator {
	s := &SignalIndicator{}
	s.ind = indicator.New(s, cfg, indicator.WithLogger(slog.With("component", "ui.indicator")))
	s.ExtendBaseWidget(s)

	return s
}

// NewSignalIndicatorFromAttributes builds the widget from a declarative attribute bag.
func NewSignalIndicatorFromAttributes(attrs indicator.Attributes) *SignalIndicator {
	return NewSignalIndicator(indicator.ConfigFromAttributes(attrs))
}

// OnStateChanged registers fn to run after every committed change.
func (s *SignalIndicator) OnStateChanged(fn func(indicator.Config)) {
	s.onStateChanged = fn
}

func (s *SignalIndicator) SetLevel(level int) error {
	return s.ind.SetLevel(level)
}

func (s *SignalIndicator) SetConnected(connected bool) {
	s.ind.SetConnected(connected)
}

func (s *SignalIndicator) Apply(u indicator.Update) error {
	return s.ind.Apply(u)
}

// Builder batches overrides; Commit repaints once.
func (s *SignalIndicator) Builder() *indicator.Builder {
	return s.ind.Builder()
}

func (s *SignalIndicator) Config() indicator.Config {
	return s.ind.Config()
}

func (s *SignalIndicator) RequestRepaint() {
	s.Refresh()
	if s.onStateChanged != nil {
		s.onStateChanged(s.ind.Config())
	}
}

func (s *SignalIndicator) MinSize() fyne.Size {
	w, h := indicator.MeasureSize(indicator.Unspecified(), indicator.Unspecified())

	return fyne.NewSize(float32(w), float32(h))
}

func (s *SignalIndicator) CreateRenderer() fyne.WidgetRenderer {
	r := &signalIndicatorRenderer{indicator: s, surface: &canvasSurface{}}
	r.repaint()

	return r
}

type signalIndicatorRenderer struct {
	indicator *SignalIndicator
	surface   *canvasSurface
	objects   []fyne.CanvasObject
}

func (r *signalIndicatorRenderer) Layout(size fyne.Size) {
	r.indicator.ind.OnSizeChanged(int(size.Width), int(size.Height))
	r.repaint()
}

func (r *signalIndicatorRenderer) MinSize() fyne.Size {
	return r.indicator.MinSize()
}

func (r *signalIndicatorRenderer) Refresh() {
	r.repaint()
	canvas.Refresh(r.indicator)
}

func (r *signalIndicatorRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *signalIndicatorRenderer) Destroy() {}

func (r *signalIndicatorRenderer) repaint() {
	r.surface.objects = nil
	r.indicator.ind.Paint(r.surface)
	r.objects = r.surface.objects
}

// canvasSurface turns draw calls into fyne canvas objects. Shadows are an
// offset copy behind the shape since canvas primitives have no blur.
type canvasSurface struct {
	objects []fyne.CanvasObject
}

func (s *canvasSurface) FillRoundRect(r indicator.Rect, radius float32, fill color.NRGBA, shadow *indicator.Shadow) {
	if shadow != nil {
		s.addRect(offsetRect(r, shadow.Offset), radius, shadow.Color)
	}
	s.addRect(r, radius, fill)
}

func (s *canvasSurface) StrokeLine(from, to indicator.Point, width float32, stroke color.NRGBA, lineCap indicator.LineCap, shadow *indicator.Shadow) {
	if shadow != nil {
		s.addLine(offsetPoint(from, shadow.Offset), offsetPoint(to, shadow.Offset), width, shadow.Color, lineCap)
	}
	s.addLine(from, to, width, stroke, lineCap)
}

func (s *canvasSurface) addRect(r indicator.Rect, radius float32, c color.NRGBA) {
	rect := canvas.NewRectangle(c)
	rect.CornerRadius = radius
	rect.Move(fyne.NewPos(r.Min.X, r.Min.Y))
	rect.Resize(fyne.NewSize(r.Width(), r.Height()))
	s.objects = append(s.objects, rect)
}

func (s *canvasSurface) addLine(from, to indicator.Point, width float32, c color.NRGBA, lineCap indicator.LineCap) {
	line := canvas.NewLine(c)
	line.StrokeWidth = width
	line.Position1 = fyne.NewPos(from.X, from.Y)
	line.Position2 = fyne.NewPos(to.X, to.Y)
	s.objects = append(s.objects, line)
	if lineCap != indicator.CapRound || width <= 0 {
		return
	}
	s.addCap(from, width, c)
	s.addCap(to, width, c)
}

func (s *canvasSurface) addCap(p indicator.Point, width float32, c color.NRGBA) {
	dot := canvas.NewCircle(c)
	half := width / 2
	dot.Move(fyne.NewPos(p.X-half, p.Y-half))
	dot.Resize(fyne.NewSquareSize(width))
	s.objects = append(s.objects, dot)
}

func offsetRect(r indicator.Rect, d float32) indicator.Rect {
	return indicator.Rect{Min: offsetPoint(r.Min, d), Max: offsetPoint(r.Max, d)}
}

func offsetPoint(p indicator.Point, d float32) indicator.Point {
	return indicator.Point{X: p.X + d, Y: p.Y + d}
}
