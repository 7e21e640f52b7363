package indicator

// MeasureMode is how a layout system constrains one axis.
type MeasureMode int

const (
	MeasureUnspecified MeasureMode = iota
	MeasureExactly
	MeasureAtMost
)

const (
	DefaultWidth  = 80
	DefaultHeight = 50
)

// MeasureSpec is a (mode, size) constraint for one axis.
type MeasureSpec struct {
	Mode MeasureMode
	Size int
}

func Exactly(size int) MeasureSpec {
	return MeasureSpec{Mode: MeasureExactly, Size: size}
}

func AtMost(size int) MeasureSpec {
	return MeasureSpec{Mode: MeasureAtMost, Size: size}
}

func Unspecified() MeasureSpec {
	return MeasureSpec{Mode: MeasureUnspecified}
}

// Resolve returns the size for this axis given the widget's preferred size.
func (s MeasureSpec) Resolve(preferred int) int {
	switch s.Mode {
	case MeasureExactly:
		return s.Size
	case MeasureAtMost:
		return min(preferred, s.Size)
	default:
		return preferred
	}
}

// MeasureSize resolves the default 80x50 size against both constraints.
func MeasureSize(width, height MeasureSpec) (int, int) {
	return width.Resolve(DefaultWidth), height.Resolve(DefaultHeight)
}
