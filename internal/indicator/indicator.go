// Package indicator implements a cellular-style signal strength indicator:
// a row of bars lit up to the current level, with an optional diagonal slash
// when the link is down. It is independent of any UI toolkit. Hosts forward
// size changes and paint requests and receive repaint requests through Host.
//
// An Indicator is not safe for concurrent use. Hosts must confine every call
// to their rendering goroutine.
package indicator

import (
	"log/slog"
)

// Host is notified when the indicator needs to be painted again.
type Host interface {
	RequestRepaint()
}

// HostFunc adapts a plain function to Host.
type HostFunc func()

func (f HostFunc) RequestRepaint() {
	if f != nil {
		f()
	}
}

type Option func(*Indicator)

func WithLogger(logger *slog.Logger) Option {
	return func(ind *Indicator) {
		if logger != nil {
			ind.logger = logger
		}
	}
}

// Indicator holds configuration and cached geometry of one signal indicator.
type Indicator struct {
	host   Host
	logger *slog.Logger

	cfg    Config
	geom   Geometry
	width  int
	height int
}

// New creates an indicator from a complete cfg, normally one derived from
// DefaultConfig. Only bar count, level, shape and range are normalized; other
// zero fields are taken as given. Use NewWithUpdate to start from defaults.
func New(host Host, cfg Config, opts ...Option) *Indicator {
	ind := &Indicator{
		host:   host,
		logger: slog.With("component", "indicator"),
		cfg:    normalize(cfg),
	}
	for _, opt := range opts {
		opt(ind)
	}

	return ind
}

// NewWithUpdate creates an indicator whose unset fields take the defaults.
func NewWithUpdate(host Host, u Update, opts ...Option) *Indicator {
	return New(host, DefaultConfig().Merge(u), opts...)
}

func normalize(cfg Config) Config {
	if cfg.BarCount < 1 {
		cfg.BarCount = DefaultBarCount
	}
	cfg.Level = clampInt(cfg.Level, 0, cfg.BarCount)
	if cfg.Shape == "" {
		cfg.Shape = ShapeRoundedRect
	}
	if cfg.BarRange == "" {
		cfg.BarRange = BarRangeInclusive
	}

	return cfg
}

func (ind *Indicator) Config() Config {
	return ind.cfg
}

func (ind *Indicator) Level() int {
	return ind.cfg.Level
}

func (ind *Indicator) BarCount() int {
	return ind.cfg.BarCount
}

func (ind *Indicator) Connected() bool {
	return ind.cfg.Connected
}

func (ind *Indicator) Geometry() Geometry {
	return ind.geom
}

// Size reports the last view size passed to OnSizeChanged.
func (ind *Indicator) Size() (int, int) {
	return ind.width, ind.height
}

// Bars returns the layout Paint would draw for the current state.
func (ind *Indicator) Bars() []Bar {
	return barLayout(ind.cfg, ind.geom, ind.height)
}

// SoftwareCompositing reports whether the host must render this indicator
// without hardware acceleration. Drop shadows require it.
func (ind *Indicator) SoftwareCompositing() bool {
	return ind.cfg.ShadowEnabled
}

// Builder starts a batch of overrides committed with a single repaint.
func (ind *Indicator) Builder() *Builder {
	return &Builder{target: ind}
}

// SetLevel lights the first level bars. Levels above the bar count or below
// zero fail with ErrInvalidLevel and leave the indicator untouched.
func (ind *Indicator) SetLevel(level int) error {
	ind.logger.Debug("set signal level", "level", level)
	if err := checkLevel(level, ind.cfg.BarCount); err != nil {
		return err
	}
	if ind.cfg.Level == level {
		return nil
	}
	ind.cfg.Level = level
	ind.invalidate()

	return nil
}

func (ind *Indicator) SetConnected(connected bool) {
	if ind.cfg.Connected == connected {
		return
	}
	ind.cfg.Connected = connected
	ind.invalidate()
}

// Apply commits a batch of overrides. The merged config is validated first;
// on error nothing changes. A successful non-empty commit recomputes the
// geometry and requests exactly one repaint.
func (ind *Indicator) Apply(u Update) error {
	if u.IsEmpty() {
		return nil
	}
	next := ind.cfg.Merge(u)
	if err := next.Validate(); err != nil {
		return err
	}
	ind.cfg = next
	ind.invalidate()

	return nil
}

// OnSizeChanged is called by the host whenever the view bounds change.
func (ind *Indicator) OnSizeChanged(width, height int) {
	ind.width = width
	ind.height = height
	ind.recomputeGeometry()
}

// Measure resolves the preferred size against the host's constraints.
// The measured height also becomes the cached cell height.
func (ind *Indicator) Measure(width, height MeasureSpec) (int, int) {
	w, h := MeasureSize(width, height)
	ind.geom.CellHeight = h

	return w, h
}

func (ind *Indicator) recomputeGeometry() {
	ind.geom = computeGeometry(ind.width, ind.height, ind.cfg.BarCount)
}

func (ind *Indicator) invalidate() {
	ind.recomputeGeometry()
	if ind.host != nil {
		ind.host.RequestRepaint()
	}
}
