package indicator

import (
	"errors"
	"image/color"
	"testing"
)

type repaintCounter struct {
	calls int
}

func (h *repaintCounter) RequestRepaint() {
	h.calls++
}

type drawOp struct {
	kind   string
	rect   Rect
	from   Point
	to     Point
	width  float32
	radius float32
	color  color.NRGBA
	cap    LineCap
	shadow *Shadow
}

type recordingSurface struct {
	ops []drawOp
}

func (s *recordingSurface) FillRoundRect(r Rect, radius float32, fill color.NRGBA, shadow *Shadow) {
	s.ops = append(s.ops, drawOp{kind: "rect", rect: r, radius: radius, color: fill, shadow: shadow})
}

func (s *recordingSurface) StrokeLine(from, to Point, width float32, stroke color.NRGBA, lineCap LineCap, shadow *Shadow) {
	s.ops = append(s.ops, drawOp{kind: "line", from: from, to: to, width: width, color: stroke, cap: lineCap, shadow: shadow})
}

func (s *recordingSurface) countColor(c color.NRGBA) int {
	n := 0
	for _, op := range s.ops {
		if op.kind == "rect" && op.color == c {
			n++
		}
	}

	return n
}

func newSized(t *testing.T, cfg Config) (*Indicator, *repaintCounter) {
	t.Helper()
	host := &repaintCounter{}
	ind := New(host, cfg)
	ind.OnSizeChanged(100, 50)

	return ind, host
}

func TestSetLevelLightsExactlyLevelBars(t *testing.T) {
	for barCount := 1; barCount <= 6; barCount++ {
		for level := 0; level <= barCount; level++ {
			cfg := DefaultConfig()
			cfg.BarCount = barCount
			ind, _ := newSized(t, cfg)

			if err := ind.SetLevel(level); err != nil {
				t.Fatalf("bars=%d level=%d: unexpected error: %v", barCount, level, err)
			}
			s := &recordingSurface{}
			ind.Paint(s)

			if got := s.countColor(cfg.LevelColor); got != level {
				t.Fatalf("bars=%d level=%d: expected %d lit bars, got %d", barCount, level, level, got)
			}
			// Inclusive range paints one extra unlit bar.
			if got, want := s.countColor(cfg.PrimaryColor), barCount+1-level; got != want {
				t.Fatalf("bars=%d level=%d: expected %d unlit bars, got %d", barCount, level, want, got)
			}
		}
	}
}

func TestSetLevelExclusiveRangePaintsBarCountBars(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BarRange = BarRangeExclusive
	ind, _ := newSized(t, cfg)
	if err := ind.SetLevel(2); err != nil {
		t.Fatalf("set level: %v", err)
	}

	s := &recordingSurface{}
	ind.Paint(s)
	if len(s.ops) != 5 {
		t.Fatalf("expected 5 bars, got %d ops", len(s.ops))
	}
	if got := s.countColor(cfg.PrimaryColor); got != 3 {
		t.Fatalf("expected 3 unlit bars, got %d", got)
	}
}

func TestSetLevelAboveBarCountFailsWithoutMutation(t *testing.T) {
	ind, host := newSized(t, DefaultConfig())
	if err := ind.SetLevel(2); err != nil {
		t.Fatalf("set level: %v", err)
	}
	callsBefore := host.calls
	geomBefore := ind.Geometry()

	err := ind.SetLevel(9)
	if !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
	if ind.Level() != 2 {
		t.Fatalf("expected level to stay 2, got %d", ind.Level())
	}
	if host.calls != callsBefore {
		t.Fatalf("expected no repaint on error, got %d extra", host.calls-callsBefore)
	}
	if ind.Geometry() != geomBefore {
		t.Fatalf("expected geometry unchanged, got %+v", ind.Geometry())
	}
	if err.Error() != "invalid signal level: level 9 exceeds bar count 5" {
		t.Fatalf("unexpected error text: %q", err.Error())
	}
}

func TestSetLevelNegativeIsRejected(t *testing.T) {
	ind, host := newSized(t, DefaultConfig())

	if err := ind.SetLevel(-1); !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
	if ind.Level() != 0 || host.calls != 0 {
		t.Fatalf("expected untouched indicator, level=%d repaints=%d", ind.Level(), host.calls)
	}
}

func TestSetLevelEqualValueIsNoop(t *testing.T) {
	ind, host := newSized(t, DefaultConfig())

	if err := ind.SetLevel(3); err != nil {
		t.Fatalf("set level: %v", err)
	}
	if err := ind.SetLevel(3); err != nil {
		t.Fatalf("set level again: %v", err)
	}
	if host.calls != 1 {
		t.Fatalf("expected one repaint, got %d", host.calls)
	}
}

func TestSetConnected(t *testing.T) {
	ind, host := newSized(t, DefaultConfig())

	ind.SetConnected(true)
	if host.calls != 0 {
		t.Fatalf("expected no repaint for unchanged state, got %d", host.calls)
	}

	s := &recordingSurface{}
	ind.Paint(s)
	for _, op := range s.ops {
		if op.kind == "line" {
			t.Fatalf("expected no overlay while connected")
		}
	}

	ind.SetConnected(false)
	if host.calls != 1 {
		t.Fatalf("expected one repaint, got %d", host.calls)
	}

	s = &recordingSurface{}
	ind.Paint(s)
	last := s.ops[len(s.ops)-1]
	if last.kind != "line" {
		t.Fatalf("expected overlay drawn last, got %q", last.kind)
	}
	if last.from != (Point{X: 20, Y: 5}) || last.to != (Point{X: 80, Y: 45}) {
		t.Fatalf("unexpected overlay endpoints: %+v -> %+v", last.from, last.to)
	}
	if last.color != ind.Config().PrimaryColor || last.cap != CapRound || last.width != 5 {
		t.Fatalf("unexpected overlay style: %+v", last)
	}
}

func TestMeasure(t *testing.T) {
	ind := New(nil, DefaultConfig())

	tests := []struct {
		name  string
		spec  MeasureSpec
		wantW int
	}{
		{name: "exact", spec: Exactly(200), wantW: 200},
		{name: "at most below default", spec: AtMost(40), wantW: 40},
		{name: "at most above default", spec: AtMost(400), wantW: 80},
		{name: "unspecified", spec: Unspecified(), wantW: 80},
	}

	for _, tt := range tests {
		w, h := ind.Measure(tt.spec, Unspecified())
		if w != tt.wantW || h != 50 {
			t.Fatalf("%s: expected %dx50, got %dx%d", tt.name, tt.wantW, w, h)
		}
	}

	if _, h := ind.Measure(Unspecified(), Exactly(120)); ind.Geometry().CellHeight != h {
		t.Fatalf("expected measured height to be cached, got %d", ind.Geometry().CellHeight)
	}
}

func TestOnSizeChangedGeometryAndBarLayout(t *testing.T) {
	ind, _ := newSized(t, DefaultConfig())

	if g := ind.Geometry(); g.CellWidth != 20 || g.CellHeight != 50 {
		t.Fatalf("unexpected geometry: %+v", g)
	}

	bars := ind.Bars()
	if len(bars) != 6 {
		t.Fatalf("expected 6 bars for inclusive range, got %d", len(bars))
	}
	first := bars[0].Rect
	if first.Min.X != 15 || first.Max.X != 20 || first.Min.Y != 25 || first.Max.Y != 40 {
		t.Fatalf("unexpected first bar: %+v", first)
	}
	for i := 1; i < len(bars); i++ {
		if bars[i].Rect.Min.Y >= bars[i-1].Rect.Min.Y {
			t.Fatalf("expected bar %d taller than bar %d", i, i-1)
		}
	}
}

func TestOnSizeChangedNarrowView(t *testing.T) {
	ind, _ := newSized(t, DefaultConfig())
	ind.OnSizeChanged(3, 10)

	if g := ind.Geometry(); g.CellWidth != 0 || g.CellHeight != 10 {
		t.Fatalf("unexpected geometry: %+v", g)
	}
}

func TestApplyBatchCommitsWithSingleRepaint(t *testing.T) {
	ind, host := newSized(t, DefaultConfig())

	err := ind.Builder().Level(3).Connected(false).Commit()
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if host.calls != 1 {
		t.Fatalf("expected exactly one repaint, got %d", host.calls)
	}

	s := &recordingSurface{}
	ind.Paint(s)
	if got := s.countColor(ColorWhite); got != 3 {
		t.Fatalf("expected 3 lit bars, got %d", got)
	}
	if s.ops[len(s.ops)-1].kind != "line" {
		t.Fatalf("expected disconnect overlay")
	}
}

func TestApplyRejectsInvalidMergedConfig(t *testing.T) {
	ind, host := newSized(t, DefaultConfig())
	before := ind.Config()

	if err := ind.Builder().BarCount(2).Level(4).Commit(); !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
	if err := ind.Builder().BarCount(0).Commit(); !errors.Is(err, ErrInvalidBarCount) {
		t.Fatalf("expected ErrInvalidBarCount, got %v", err)
	}
	if ind.Config() != before {
		t.Fatalf("expected config unchanged after rejected commit")
	}
	if host.calls != 0 {
		t.Fatalf("expected no repaint, got %d", host.calls)
	}
}

func TestApplyEmptyUpdateIsNoop(t *testing.T) {
	ind, host := newSized(t, DefaultConfig())

	if err := ind.Apply(Update{}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if host.calls != 0 {
		t.Fatalf("expected no repaint, got %d", host.calls)
	}
}

func TestApplyBarCountRecomputesGeometry(t *testing.T) {
	ind, _ := newSized(t, DefaultConfig())

	if err := ind.Builder().BarCount(10).Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if g := ind.Geometry(); g.CellWidth != 10 {
		t.Fatalf("expected cell width 10, got %d", g.CellWidth)
	}
}

func TestPaintLineShape(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shape = ShapeLine
	cfg.BarWidth = 4
	ind, _ := newSized(t, cfg)

	s := &recordingSurface{}
	ind.Paint(s)
	if len(s.ops) != 6 {
		t.Fatalf("expected 6 strokes, got %d", len(s.ops))
	}
	op := s.ops[0]
	if op.kind != "line" || op.cap != CapRound || op.width != 4 {
		t.Fatalf("unexpected stroke: %+v", op)
	}
	if op.from.X != 17 || op.to.X != 17 || op.from.Y != 25 || op.to.Y != 40 {
		t.Fatalf("unexpected stroke endpoints: %+v -> %+v", op.from, op.to)
	}
}

func TestPaintShadow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShadowEnabled = true
	ind, _ := newSized(t, cfg)

	if !ind.SoftwareCompositing() {
		t.Fatalf("expected shadow to require software compositing")
	}
	s := &recordingSurface{}
	ind.Paint(s)
	sh := s.ops[0].shadow
	if sh == nil {
		t.Fatalf("expected shadow on draw call")
	}
	if sh.Offset != 1 || sh.Blur != 5 || sh.Color != ColorGray {
		t.Fatalf("unexpected shadow: %+v", *sh)
	}
}

func TestPaintDoesNotMutate(t *testing.T) {
	ind, host := newSized(t, DefaultConfig())
	cfg := ind.Config()
	geom := ind.Geometry()

	ind.Paint(&recordingSurface{})
	ind.Paint(nil)

	if ind.Config() != cfg || ind.Geometry() != geom || host.calls != 0 {
		t.Fatalf("paint mutated indicator state")
	}
}

func TestNewNormalizesInvalidConfig(t *testing.T) {
	ind := New(nil, Config{BarCount: 0, Level: 9})

	if ind.BarCount() != DefaultBarCount {
		t.Fatalf("expected default bar count, got %d", ind.BarCount())
	}
	if ind.Level() != DefaultBarCount {
		t.Fatalf("expected clamped level, got %d", ind.Level())
	}
	if ind.Config().Shape != ShapeRoundedRect || ind.Config().BarRange != BarRangeInclusive {
		t.Fatalf("expected default shape and range, got %+v", ind.Config())
	}
}

func TestNewWithUpdateKeepsDefaultsForUnsetFields(t *testing.T) {
	bars := 3
	ind := NewWithUpdate(nil, Update{BarCount: &bars})

	want := DefaultConfig()
	want.BarCount = 3
	if got := ind.Config(); got != want {
		t.Fatalf("unexpected config:\n got  %+v\n want %+v", got, want)
	}
	if !ind.Connected() {
		t.Fatalf("expected default connected state")
	}
}

func TestHostFunc(t *testing.T) {
	var calls int
	ind := New(HostFunc(func() { calls++ }), DefaultConfig())
	ind.SetConnected(false)
	if calls != 1 {
		t.Fatalf("expected host func call, got %d", calls)
	}

	var nilHost HostFunc
	nilHost.RequestRepaint()
}
