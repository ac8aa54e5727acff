// Package metric provides the scalar difference functions the unshredding
// heuristic is built on: pixel-to-pixel, strip-to-strip and accumulated
// strip-sequence differences. All results are integer accumulated color
// differences; lower means more similar.
package metric

import (
	"errors"
	"fmt"

	"unshredder/internal/models"
)

var (
	// ErrFormatMismatch is returned when two pixels with different channel
	// counts are compared.
	ErrFormatMismatch = errors.New("pixel format mismatch")

	// ErrLengthMismatch is returned when two strips of different length, or
	// fewer than two strips, are fed to a strip metric.
	ErrLengthMismatch = errors.New("strip length mismatch")
)

// PixelDifference returns the sum of absolute per-channel differences over
// the first three channels (red, green, blue). An alpha channel, if present,
// is ignored.
func PixelDifference(a, b models.Pixel) (int, error) {
	if a.Channels() != b.Channels() {
		return 0, fmt.Errorf("%w: %d vs %d channels", ErrFormatMismatch, a.Channels(), b.Channels())
	}
	if a.Channels() < 3 {
		return 0, fmt.Errorf("%w: need at least 3 channels, got %d", ErrFormatMismatch, a.Channels())
	}

	diff := 0
	for c := 0; c < 3; c++ {
		d := int(a[c]) - int(b[c])
		if d < 0 {
			d = -d
		}
		diff += d
	}
	return diff, nil
}

// StripDifference returns the mean pixel difference between two strips of
// equal length. The mean is integer-divided, matching the accumulated
// difference scale the detection thresholds are tuned against.
func StripDifference(a, b models.Strip) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d pixels", ErrLengthMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("%w: empty strips", ErrLengthMismatch)
	}

	sum := 0
	for i := range a {
		d, err := PixelDifference(a[i], b[i])
		if err != nil {
			return 0, err
		}
		sum += d
	}
	return sum / len(a), nil
}

// AccumulatedStripDifference returns the mean strip difference over each
// consecutive pair in an ordered sequence of at least two strips.
func AccumulatedStripDifference(strips []models.Strip) (int, error) {
	if len(strips) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 strips, got %d", ErrLengthMismatch, len(strips))
	}

	sum := 0
	for i := 0; i+1 < len(strips); i++ {
		d, err := StripDifference(strips[i], strips[i+1])
		if err != nil {
			return 0, err
		}
		sum += d
	}
	return sum / (len(strips) - 1), nil
}
