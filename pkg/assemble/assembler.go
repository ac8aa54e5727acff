// Package assemble converts reconciled pairwise match scores into one
// globally consistent left-to-right shred ordering.
package assemble

import (
	"errors"
	"fmt"
	"math"

	"unshredder/pkg/shred"
)

// ErrChainAssembly is returned when the chain-growth loop cannot place every
// shred. That happens when the reconciled match graph is not a simple path:
// a cycle, or a shred no other shred reports as its best left match.
var ErrChainAssembly = errors.New("chain assembly failed")

// Assembler grows the final ordered sequence from a collection of matched,
// reconciled shreds.
type Assembler struct{}

// NewAssembler creates an assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// anchorRatio is the rightmost-shred selection heuristic: the ratio of a
// shred's best right-match score to its best left-match score. A zero best
// left score (identical edges, or the reconciler's sentinel) yields +Inf
// explicitly, so overridden shreds are never picked as the anchor.
func anchorRatio(s *shred.Shred) float64 {
	_, left, okLeft := s.BestMatchLeft()
	_, right, okRight := s.BestMatchRight()
	if !okLeft || !okRight || left == 0 {
		return math.Inf(1)
	}
	return float64(right) / float64(left)
}

// Assemble orders the shreds into their reconstructed left-to-right
// sequence. The shred with the globally minimum right/left ratio is taken as
// the rightmost shred, then the chain grows leftward: shreds are cycled
// through a FIFO queue and prepended once their best left match is the
// current head. Shreds are consumed from the collection as they are placed;
// exactly len(collection) shreds come back out.
func (a *Assembler) Assemble(c *shred.Collection) ([]*shred.Shred, error) {
	if c.Len() == 0 {
		return nil, fmt.Errorf("%w: no shreds to assemble", ErrChainAssembly)
	}

	// Anchor selection. Ties break toward the lower id; iteration is in id
	// order, so a strict comparison is enough.
	var rightmost *shred.Shred
	lowestRatio := math.Inf(1)
	for _, s := range c.Shreds() {
		ratio := anchorRatio(s)
		if rightmost == nil || ratio < lowestRatio {
			lowestRatio = ratio
			rightmost = s
		}
	}

	c.Remove(rightmost.ID())
	ordered := []*shred.Shred{rightmost}

	queue := c.Shreds()
	misses := 0
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]

		bestLeft, _, ok := s.BestMatchLeft()
		if ok && bestLeft == ordered[0].ID() {
			ordered = append([]*shred.Shred{s}, ordered...)
			c.Remove(s.ID())
			misses = 0
			continue
		}

		queue = append(queue, s)
		misses++
		if misses >= len(queue) {
			// A full cycle without a placement; the head can no longer
			// change, so the remaining shreds will never find their match.
			return nil, fmt.Errorf("%w: %d shreds have no path to the chain head",
				ErrChainAssembly, len(queue))
		}
	}

	return ordered, nil
}
