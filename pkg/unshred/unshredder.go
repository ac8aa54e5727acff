// Package unshred wires the unshredding stages into one pipeline: boundary
// detection, all-pairs edge matching, match reconciliation and sequence
// assembly. It consumes a pixel grid and produces the ordered left-to-right
// shred sequence; file I/O stays with the caller.
package unshred

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat"

	"unshredder/internal/models"
	"unshredder/pkg/assemble"
	"unshredder/pkg/detect"
	"unshredder/pkg/imageio"
	"unshredder/pkg/shred"
)

// ErrImageNotLoaded is returned when the pipeline is run without a pixel
// grid.
var ErrImageNotLoaded = errors.New("image not loaded")

// Params holds the pipeline configuration.
type Params struct {
	// BoundaryThreshold is the strip-difference threshold for boundary
	// candidates. The default is an image-specific tuned constant.
	BoundaryThreshold int

	// ConfirmationRatio is the false-positive rejection cutoff for boundary
	// candidates.
	ConfirmationRatio float64

	// LeftSampleWidth is the edge-sample width of the matching pass.
	LeftSampleWidth int

	// NumCores specifies how many workers score shred pairs concurrently.
	// Zero or negative falls back to one worker per CPU core.
	NumCores int

	// SaveIntermediaryResults determines whether pipeline stages are dumped
	// as images for inspection.
	SaveIntermediaryResults bool

	// IntermediaryDir is the directory intermediary results are saved to.
	// Only used when SaveIntermediaryResults is true.
	IntermediaryDir string

	// Verbose enables per-stage progress output on stdout.
	Verbose bool
}

// DefaultParams returns the pipeline defaults: the tuned detection constants
// and the reference edge-sample width.
func DefaultParams() *Params {
	return &Params{
		BoundaryThreshold: detect.DefaultBoundaryThreshold,
		ConfirmationRatio: detect.DefaultConfirmationRatio,
		LeftSampleWidth:   shred.DefaultLeftSampleWidth,
		Verbose:           true,
	}
}

// Stats holds quality statistics over the assembled sequence. Seam scores
// are the recorded left-match scores along the final chain; lower means the
// neighboring edges agree better.
type Stats struct {
	// ShredCount is the number of shreds detected and placed.
	ShredCount int

	// ReconciledCount is the number of shreds whose best match was
	// overridden during reconciliation.
	ReconciledCount int

	// MeanSeamScore and SeamScoreStdDev summarize the seam scores along the
	// assembled chain.
	MeanSeamScore   float64
	SeamScoreStdDev float64

	// BestSeamScore and WorstSeamScore are the extremes along the chain.
	BestSeamScore  int
	WorstSeamScore int
}

// Unshredder runs the unshredding pipeline.
type Unshredder struct {
	params  *Params
	ordered []*shred.Shred
	stats   Stats
}

// NewUnshredder creates a pipeline instance with the provided parameters.
func NewUnshredder(params *Params) *Unshredder {
	return &Unshredder{params: params}
}

// logln prints progress output when Verbose is enabled.
func (u *Unshredder) logln(args ...any) {
	if u.params.Verbose {
		fmt.Println(args...)
	}
}

// logf prints formatted progress output when Verbose is enabled.
func (u *Unshredder) logf(format string, args ...any) {
	if u.params.Verbose {
		fmt.Printf(format, args...)
	}
}

// Unshred runs detection and ordering with default parameters. This is the
// two-stage detect-then-order entry point for callers that do not need
// configuration or statistics.
func Unshred(grid *models.Grid) ([]*shred.Shred, error) {
	return NewUnshredder(DefaultParams()).Process(grid)
}

// Process runs the full pipeline on the grid and returns the ordered
// left-to-right shred sequence. Exactly as many shreds come out as the
// detector found; a failure at any stage aborts the run, there is no
// partial result.
func (u *Unshredder) Process(grid *models.Grid) ([]*shred.Shred, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: no pixel grid", ErrImageNotLoaded)
	}

	// Step 1: Segment the image into shreds.
	u.logln("Step 1: Detecting shred boundaries...")
	detector := detect.NewDetector(u.params.BoundaryThreshold, u.params.ConfirmationRatio)
	shreds, err := detector.Detect(grid)
	if err != nil {
		return nil, fmt.Errorf("boundary detection failed: %w", err)
	}
	shredCount := shreds.Len()
	u.logf("Detected %d shreds across %d strips\n", shredCount, grid.Width())

	if u.params.SaveIntermediaryResults {
		if err := u.saveShredImages("01_detected_shreds", shreds.Shreds()); err != nil {
			u.logf("Warning: failed to save detected shreds: %v\n", err)
		}
	}

	// Step 2: Score every ordered pair of shreds.
	u.logln("Step 2: Matching shred edges...")
	matcher := shred.NewMatcher()
	matcher.LeftSampleWidth = u.params.LeftSampleWidth
	if u.params.NumCores > 0 {
		matcher.NumWorkers = u.params.NumCores
	}
	if err := matcher.MatchAll(shreds); err != nil {
		return nil, fmt.Errorf("edge matching failed: %w", err)
	}

	// Step 3: Repair non-mutual best matches.
	u.logln("Step 3: Reconciling match conflicts...")
	reconciled := shred.Reconcile(shreds)
	u.logf("Reconciled %d non-mutual matches\n", reconciled)

	// Step 4: Grow the ordered chain from the rightmost shred.
	u.logln("Step 4: Assembling shred sequence...")
	assembler := assemble.NewAssembler()
	ordered, err := assembler.Assemble(shreds)
	if err != nil {
		return nil, fmt.Errorf("sequence assembly failed: %w", err)
	}

	if u.params.SaveIntermediaryResults {
		if err := u.saveOrderedResult("02_reconstructed", ordered); err != nil {
			u.logf("Warning: failed to save reconstructed image: %v\n", err)
		}
	}

	// Step 5: Summarize seam quality along the chain.
	u.ordered = ordered
	u.calculateStats(shredCount, reconciled)

	return ordered, nil
}

// GetStats returns the quality statistics of the last Process run.
func (u *Unshredder) GetStats() Stats {
	return u.stats
}

// calculateStats summarizes the recorded left-match scores along the
// assembled chain: ordered[i] sits left of ordered[i+1], so ordered[i]'s
// left-match score against ordered[i+1] is the seam between them.
func (u *Unshredder) calculateStats(shredCount, reconciled int) {
	u.stats = Stats{
		ShredCount:      shredCount,
		ReconciledCount: reconciled,
	}

	var seams []float64
	for i := 0; i+1 < len(u.ordered); i++ {
		score, ok := u.ordered[i].LeftMatchScore(u.ordered[i+1].ID())
		if !ok {
			continue
		}
		// Reconciliation sentinels are not measured differences and would
		// drag the summary toward zero.
		if u.ordered[i].LeftMatchForced(u.ordered[i+1].ID()) {
			continue
		}
		seams = append(seams, float64(score))

		if len(seams) == 1 || score < u.stats.BestSeamScore {
			u.stats.BestSeamScore = score
		}
		if len(seams) == 1 || score > u.stats.WorstSeamScore {
			u.stats.WorstSeamScore = score
		}
	}

	if len(seams) > 0 {
		u.stats.MeanSeamScore = stat.Mean(seams, nil)
	}
	if len(seams) > 1 {
		u.stats.SeamScoreStdDev = stat.StdDev(seams, nil)
	}
}

// saveShredImages dumps every shred as its own image under the intermediary
// directory.
func (u *Unshredder) saveShredImages(stage string, shreds []*shred.Shred) error {
	stageDir := filepath.Join(u.params.IntermediaryDir, stage)
	if err := os.MkdirAll(stageDir, 0755); err != nil {
		return fmt.Errorf("failed to create intermediary directory: %v", err)
	}

	for _, s := range shreds {
		grid, err := imageio.AssembleImage([]*shred.Shred{s})
		if err != nil {
			return err
		}
		filename := filepath.Join(stageDir, fmt.Sprintf("shred_%03d.png", s.ID()))
		if err := imageio.Save(grid, filename); err != nil {
			return err
		}
	}
	return nil
}

// saveOrderedResult dumps the reconstructed image under the intermediary
// directory.
func (u *Unshredder) saveOrderedResult(stage string, ordered []*shred.Shred) error {
	stageDir := filepath.Join(u.params.IntermediaryDir, stage)
	if err := os.MkdirAll(stageDir, 0755); err != nil {
		return fmt.Errorf("failed to create intermediary directory: %v", err)
	}
	return imageio.Assemble(ordered, filepath.Join(stageDir, "reconstructed.png"))
}
