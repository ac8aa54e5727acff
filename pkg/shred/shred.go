// Package shred defines the shred data model together with the all-pairs
// edge matching and match reconciliation stages of the unshredding pipeline.
//
// A shred is a contiguous, inclusive range of strip indices in the shredded
// input image. It does not own pixel data; it holds a reference to the shared
// read-only grid and resolves its strips on demand. Each shred carries two
// score maps populated by the matching pass: how well its right edge
// continues into another shred's left edge (left matches) and the opposite
// direction (right matches). Scores are accumulated pixel differences, so
// lower is better and zero means identical edges.
package shred

import (
	"sort"

	"unshredder/internal/models"
	"unshredder/pkg/metric"
)

// Shred is one detected shred: an inclusive strip range [from, to] in the
// shredded image plus a unique sequential id.
type Shred struct {
	id   int
	from int
	to   int
	grid *models.Grid

	leftMatches  map[int]int
	rightMatches map[int]int

	// forcedLeft is the id whose left-match score was overridden with the
	// reconciliation sentinel, when forcedLeftSet holds.
	forcedLeft    int
	forcedLeftSet bool
}

// New creates a shred covering the inclusive strip range [from, to] of grid.
func New(grid *models.Grid, from, to, id int) *Shred {
	return &Shred{
		id:           id,
		from:         from,
		to:           to,
		grid:         grid,
		leftMatches:  make(map[int]int),
		rightMatches: make(map[int]int),
	}
}

// ID returns the shred identity.
func (s *Shred) ID() int {
	return s.id
}

// LeftIndex returns the strip index of the shred's left-most strip.
func (s *Shred) LeftIndex() int {
	return s.from
}

// RightIndex returns the strip index of the shred's right-most strip.
func (s *Shred) RightIndex() int {
	return s.to
}

// Width returns the shred's span in strips. The range is inclusive on both
// ends, so [0, 31] has width 32.
func (s *Shred) Width() int {
	return s.to - s.from + 1
}

// Grid returns the pixel grid the shred's range points into.
func (s *Shred) Grid() *models.Grid {
	return s.grid
}

// Strips resolves the shred's range to its ordered strips.
func (s *Shred) Strips() ([]models.Strip, error) {
	return s.grid.Strips(s.from, s.to)
}

// sampleSpan clamps a requested edge-sample width so a probe never reads
// strips outside either shred's own range. A width-1 shred is sampled with
// a single strip regardless of the configured width.
func sampleSpan(width int, a, b *Shred) int {
	n := width
	if a.Width() < n {
		n = a.Width()
	}
	if b.Width() < n {
		n = b.Width()
	}
	if n < 1 {
		n = 1
	}
	return n
}

// edgeScore sums the strip differences between the last n strips of left and
// the first n strips of right, paired positionally.
func edgeScore(left, right *Shred, n int) (int, error) {
	rightStrips, err := left.grid.Strips(left.to-n+1, left.to)
	if err != nil {
		return 0, err
	}
	leftStrips, err := right.grid.Strips(right.from, right.from+n-1)
	if err != nil {
		return 0, err
	}

	score := 0
	for i := 0; i < n; i++ {
		d, err := metric.StripDifference(rightStrips[i], leftStrips[i])
		if err != nil {
			return 0, err
		}
		score += d
	}
	return score, nil
}

// LeftOfScore computes how well this shred's right edge continues into
// other's left edge without recording the result. sampleWidth strips nearest
// each edge are compared.
func (s *Shred) LeftOfScore(other *Shred, sampleWidth int) (int, error) {
	return edgeScore(s, other, sampleSpan(sampleWidth, s, other))
}

// MatchLeftOf matches this shred to the left side of other and records the
// score under this shred's left matches and, symmetrically, under other's
// right matches.
func (s *Shred) MatchLeftOf(other *Shred, sampleWidth int) (int, error) {
	score, err := s.LeftOfScore(other, sampleWidth)
	if err != nil {
		return 0, err
	}
	s.leftMatches[other.id] = score
	other.rightMatches[s.id] = score
	return score, nil
}

// MatchRightOf matches this shred to the right side of other: other's right
// edge against this shred's left edge. The score is recorded under this
// shred's right matches and under other's left matches.
func (s *Shred) MatchRightOf(other *Shred, sampleWidth int) (int, error) {
	score, err := edgeScore(other, s, sampleSpan(sampleWidth, s, other))
	if err != nil {
		return 0, err
	}
	s.rightMatches[other.id] = score
	other.leftMatches[s.id] = score
	return score, nil
}

// RecordLeftMatch stores a precomputed left-match score for the given shred
// id. Used by the matcher when scores are computed out of band.
func (s *Shred) RecordLeftMatch(id, score int) {
	s.leftMatches[id] = score
}

// RecordRightMatch stores a precomputed right-match score for the given
// shred id.
func (s *Shred) RecordRightMatch(id, score int) {
	s.rightMatches[id] = score
}

// LeftMatchScore returns the recorded left-match score against the given
// shred id.
func (s *Shred) LeftMatchScore(id int) (int, bool) {
	score, ok := s.leftMatches[id]
	return score, ok
}

// RightMatchScore returns the recorded right-match score against the given
// shred id.
func (s *Shred) RightMatchScore(id int) (int, bool) {
	score, ok := s.rightMatches[id]
	return score, ok
}

// bestOf returns the id with the minimum score. Ties break toward the lower
// id so results do not depend on map iteration order.
func bestOf(matches map[int]int) (int, int, bool) {
	bestID, bestScore, found := 0, 0, false
	for id, score := range matches {
		if !found || score < bestScore || (score == bestScore && id < bestID) {
			bestID, bestScore, found = id, score, true
		}
	}
	return bestID, bestScore, found
}

// BestMatchLeft returns the id and score of the best (lowest) left match.
func (s *Shred) BestMatchLeft() (int, int, bool) {
	return bestOf(s.leftMatches)
}

// BestMatchRight returns the id and score of the best (lowest) right match.
func (s *Shred) BestMatchRight() (int, int, bool) {
	return bestOf(s.rightMatches)
}

// BestMatchesLeft returns all left-match ids ordered from best to worst,
// ties broken by lower id.
func (s *Shred) BestMatchesLeft() []int {
	ids := make([]int, 0, len(s.leftMatches))
	for id := range s.leftMatches {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		si, sj := s.leftMatches[ids[i]], s.leftMatches[ids[j]]
		if si != sj {
			return si < sj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// SetBestMatchLeft overrides the left-match score for the given shred id
// with the minimal sentinel value, making it this shred's reported best left
// match. Used by the reconciler; no pixel differences are recomputed.
func (s *Shred) SetBestMatchLeft(id int) {
	s.leftMatches[id] = 0
	s.forcedLeft = id
	s.forcedLeftSet = true
}

// LeftMatchForced reports whether the left-match score against the given
// shred id is the reconciliation sentinel rather than a measured pixel
// difference.
func (s *Shred) LeftMatchForced(id int) bool {
	return s.forcedLeftSet && s.forcedLeft == id
}
