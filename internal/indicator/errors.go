package indicator

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLevel is returned when a level falls outside [0, bar count].
	ErrInvalidLevel = errors.New("invalid signal level")
	// ErrInvalidBarCount is returned when a commit would leave fewer than one bar.
	ErrInvalidBarCount = errors.New("invalid bar count")
)

func checkLevel(level, barCount int) error {
	if level > barCount {
		return fmt.Errorf("%w: level %d exceeds bar count %d", ErrInvalidLevel, level, barCount)
	}
	if level < 0 {
		return fmt.Errorf("%w: level %d is negative", ErrInvalidLevel, level)
	}

	return nil
}
