package shred

// Reconcile repairs non-mutual best matches across the collection.
//
// For each shred S whose best left match B does not report S as its own best
// right match, the left-match candidates of S are searched from best to
// worst for the first candidate C whose best right match is S. When found,
// S's score for C is overridden with the minimal sentinel so C becomes S's
// reported best left match. This restores mutuality where two shreds are
// almost adjacent but a third shred's spurious low score intervenes.
//
// No pixel differences are recomputed. A shred with no reciprocal candidate
// keeps its original, non-mutual best match. Returns the number of shreds
// whose best match was overridden.
func Reconcile(c *Collection) int {
	overridden := 0

	for _, s := range c.Shreds() {
		bestID, _, ok := s.BestMatchLeft()
		if !ok {
			continue
		}

		best, ok := c.Get(bestID)
		if !ok {
			continue
		}
		if reciprocal, _, ok := best.BestMatchRight(); ok && reciprocal == s.ID() {
			continue
		}

		for _, candidateID := range s.BestMatchesLeft() {
			candidate, ok := c.Get(candidateID)
			if !ok {
				continue
			}
			if reciprocal, _, ok := candidate.BestMatchRight(); ok && reciprocal == s.ID() {
				s.SetBestMatchLeft(candidateID)
				overridden++
				break
			}
		}
	}

	return overridden
}
