package domain

type SignalQuality int

const (
	SignalUnknown SignalQuality = iota
	SignalBad
	SignalFair
	SignalGood
)

func (q SignalQuality) String() string {
	switch q {
	case SignalGood:
		return "good"
	case SignalFair:
		return "fair"
	case SignalBad:
		return "bad"
	default:
		return "unknown"
	}
}

// Thresholds are fractions of the bar count, expressed in percent.
const (
	QualityGoodPercent = 75
	QualityFairPercent = 40
)

// DetermineSignalQuality classifies a lit level. A disconnected link or an
// empty indicator has unknown quality.
func DetermineSignalQuality(level, barCount int, connected bool) SignalQuality {
	if !connected || barCount <= 0 {
		return SignalUnknown
	}
	percent := level * 100 / barCount
	switch {
	case percent >= QualityGoodPercent:
		return SignalGood
	case percent >= QualityFairPercent:
		return SignalFair
	default:
		return SignalBad
	}
}
