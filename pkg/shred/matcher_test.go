package shred

import (
	"testing"

	"unshredder/internal/models"
)

// matcherCollection builds a 9-strip grid split into three width-3 shreds
// with distinct solid colors.
func matcherCollection(t *testing.T) (*models.Grid, *Collection) {
	t.Helper()

	grid := solidColumnGrid(t, []uint8{10, 10, 10, 120, 120, 120, 250, 250, 250}, 4)
	c := NewCollection()
	c.Add(New(grid, 0, 2, 1))
	c.Add(New(grid, 3, 5, 2))
	c.Add(New(grid, 6, 8, 3))
	return grid, c
}

func TestMatchAllPopulatesAllPairs(t *testing.T) {
	_, c := matcherCollection(t)

	m := NewMatcher()
	if err := m.MatchAll(c); err != nil {
		t.Fatalf("MatchAll failed: %v", err)
	}

	for _, s := range c.Shreds() {
		for _, other := range c.Shreds() {
			if s.ID() == other.ID() {
				continue
			}
			if _, ok := s.LeftMatchScore(other.ID()); !ok {
				t.Errorf("Shred %d has no left match against %d", s.ID(), other.ID())
			}
			if _, ok := s.RightMatchScore(other.ID()); !ok {
				t.Errorf("Shred %d has no right match against %d", s.ID(), other.ID())
			}
		}
	}
}

func TestMatchAllSymmetricRecording(t *testing.T) {
	_, c := matcherCollection(t)

	m := NewMatcher()
	if err := m.MatchAll(c); err != nil {
		t.Fatalf("MatchAll failed: %v", err)
	}

	// One probe per ordered pair: a's left score against b must equal b's
	// right score against a
	a, _ := c.Get(1)
	b, _ := c.Get(2)
	left, _ := a.LeftMatchScore(b.ID())
	right, _ := b.RightMatchScore(a.ID())
	if left != right {
		t.Errorf("Expected symmetric recording, got left=%d right=%d", left, right)
	}
	// Solid colors 10 and 120 differ by 110 per strip over two sampled pairs
	if left != 220 {
		t.Errorf("Expected score 220, got %d", left)
	}
}

func TestMatchAllWorkerCountInvariance(t *testing.T) {
	_, serial := matcherCollection(t)
	_, parallel := matcherCollection(t)

	m1 := NewMatcher()
	m1.NumWorkers = 1
	if err := m1.MatchAll(serial); err != nil {
		t.Fatalf("MatchAll with 1 worker failed: %v", err)
	}

	m8 := NewMatcher()
	m8.NumWorkers = 8
	if err := m8.MatchAll(parallel); err != nil {
		t.Fatalf("MatchAll with 8 workers failed: %v", err)
	}

	for _, id := range serial.IDs() {
		s, _ := serial.Get(id)
		p, _ := parallel.Get(id)
		for _, otherID := range serial.IDs() {
			if otherID == id {
				continue
			}
			sScore, _ := s.LeftMatchScore(otherID)
			pScore, _ := p.LeftMatchScore(otherID)
			if sScore != pScore {
				t.Errorf("Shred %d vs %d: serial score %d, parallel score %d",
					id, otherID, sScore, pScore)
			}
		}
	}
}

func TestMatchAllEmptyAndSingle(t *testing.T) {
	grid := solidColumnGrid(t, []uint8{0, 0, 0}, 2)

	m := NewMatcher()
	if err := m.MatchAll(NewCollection()); err != nil {
		t.Errorf("MatchAll on empty collection failed: %v", err)
	}

	c := NewCollection()
	c.Add(New(grid, 0, 2, 1))
	if err := m.MatchAll(c); err != nil {
		t.Errorf("MatchAll on single shred failed: %v", err)
	}
}
