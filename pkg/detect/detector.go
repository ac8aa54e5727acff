// Package detect segments a shredded image into candidate shreds by scanning
// strip-to-strip differences across the full image width.
package detect

import (
	"unshredder/internal/models"
	"unshredder/pkg/metric"
	"unshredder/pkg/shred"
)

// Default tuned constants. Both are image-specific estimates, calibrated
// against the statistics of one test image; they are not derived and might
// not hold for images with a different structure.
const (
	// DefaultBoundaryThreshold is the strip-to-strip difference above which
	// a strip pair is considered a boundary candidate.
	DefaultBoundaryThreshold = 119

	// DefaultConfirmationRatio is the cutoff for the ratio between the
	// difference accumulated just after a candidate and the candidate's own
	// difference. Candidates at or above the cutoff are rejected.
	DefaultConfirmationRatio = 0.68
)

// Detector scans a pixel grid and partitions it into shreds.
//
// Two consecutive strips that differ greatly probably sit on a cut between
// shreds. That alone produces false positives in high-contrast
// high-frequency areas, where neighboring strips keep differing by similarly
// large amounts. A candidate is therefore confirmed only when the strips
// just after it settle back down: the ratio of the accumulated following
// difference to the candidate difference must stay below the confirmation
// ratio, otherwise the candidate is inside a textured region, not on a cut.
type Detector struct {
	// BoundaryThreshold is the minimum strip difference for a boundary
	// candidate.
	BoundaryThreshold int

	// ConfirmationRatio is the rejection cutoff for the post-candidate
	// difference ratio.
	ConfirmationRatio float64
}

// NewDetector creates a detector with the given thresholds.
func NewDetector(boundaryThreshold int, confirmationRatio float64) *Detector {
	return &Detector{
		BoundaryThreshold: boundaryThreshold,
		ConfirmationRatio: confirmationRatio,
	}
}

// NewDefaultDetector creates a detector with the default tuned constants.
func NewDefaultDetector() *Detector {
	return NewDetector(DefaultBoundaryThreshold, DefaultConfirmationRatio)
}

// Detect scans the grid and returns the detected shreds. The emitted ranges
// partition [0, width-1] exactly: no gaps, no overlaps, and the remainder of
// the scan is always closed off as a final shred regardless of its size.
//
// The scan stops three strips short of the right edge so the confirmation
// window never reads outside the image; errors from strip access propagate
// unchanged.
func (d *Detector) Detect(grid *models.Grid) (*shred.Collection, error) {
	width := grid.Width()
	strips, err := grid.Strips(0, width-1)
	if err != nil {
		return nil, err
	}

	shreds := shred.NewCollection()
	start := 0
	id := 1

	for i := 0; i+3 < width; i++ {
		difference, err := metric.StripDifference(strips[i], strips[i+1])
		if err != nil {
			return nil, err
		}
		if difference <= d.BoundaryThreshold {
			continue
		}

		postDifference, err := metric.AccumulatedStripDifference(strips[i+1 : i+4])
		if err != nil {
			return nil, err
		}

		if float64(postDifference)/float64(difference) < d.ConfirmationRatio {
			shreds.Add(shred.New(grid, start, i, id))
			start = i + 1
			id++
		}
	}

	// Whatever is left of the scan belongs to the last shred, even a single
	// strip.
	shreds.Add(shred.New(grid, start, width-1, id))

	return shreds, nil
}
