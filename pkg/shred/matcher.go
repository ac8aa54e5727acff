package shred

import (
	"runtime"
	"sync"
)

// Default edge-sample widths. The left probe is deliberately narrow and
// emphasizes the immediate seam; the right probe samples a wider band.
// Only DefaultLeftSampleWidth feeds the all-pairs pass; the right-probe
// width is taken by MatchRightOf callers directly.
const (
	DefaultLeftSampleWidth  = 2
	DefaultRightSampleWidth = 5
)

// Matcher scores adjacency likelihood for every ordered pair of shreds.
//
// The matching pass runs exactly one probe (the left-of probe) per ordered
// pair; its symmetric recording also populates the right-match maps. Mixing
// both probes for the same pair would change score magnitudes and break
// comparability across shreds, so MatchRightOf exists on Shred only for
// callers that match a single pair from the other direction.
type Matcher struct {
	// LeftSampleWidth is the number of strips nearest each edge compared by
	// the left-of probe.
	LeftSampleWidth int

	// NumWorkers is the number of goroutines scoring pairs concurrently.
	NumWorkers int
}

// NewMatcher creates a matcher with the default sample width and one
// worker per available CPU core.
func NewMatcher() *Matcher {
	return &Matcher{
		LeftSampleWidth: DefaultLeftSampleWidth,
		NumWorkers:      runtime.NumCPU(),
	}
}

// pair is one ordered shred pair to score.
type pair struct {
	a, b *Shred
}

// MatchAll scores every ordered pair of distinct shreds and populates each
// shred's left- and right-match maps.
//
// Scoring only reads the shared immutable grid, so the pairs are computed in
// parallel: each worker owns a disjoint slab of the pair list and writes into
// that slab's score slots, which never collide with another worker's. The
// per-shred maps are then filled sequentially, since two pairs may target the
// same map.
func (m *Matcher) MatchAll(c *Collection) error {
	shreds := c.Shreds()

	pairs := make([]pair, 0, len(shreds)*(len(shreds)-1))
	for _, a := range shreds {
		for _, b := range shreds {
			if a.ID() == b.ID() {
				continue
			}
			pairs = append(pairs, pair{a: a, b: b})
		}
	}
	if len(pairs) == 0 {
		return nil
	}

	numWorkers := m.NumWorkers
	if numWorkers < 1 {
		numWorkers = 1
	}
	if numWorkers > len(pairs) {
		numWorkers = len(pairs)
	}

	scores := make([]int, len(pairs))
	errs := make([]error, numWorkers)
	pairsPerWorker := (len(pairs) + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)

		go func(workerID int) {
			defer wg.Done()

			start := workerID * pairsPerWorker
			end := start + pairsPerWorker
			if end > len(pairs) {
				end = len(pairs)
			}

			for i := start; i < end; i++ {
				score, err := pairs[i].a.LeftOfScore(pairs[i].b, m.LeftSampleWidth)
				if err != nil {
					errs[workerID] = err
					return
				}
				scores[i] = score
			}
		}(w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	// Single-threaded map population; the score slots were partitioned by
	// pair above, the maps are not.
	for i, p := range pairs {
		p.a.RecordLeftMatch(p.b.ID(), scores[i])
		p.b.RecordRightMatch(p.a.ID(), scores[i])
	}

	return nil
}
