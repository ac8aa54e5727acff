package shred

import "sort"

// Collection keeps detected shreds by id. Iteration is always in ascending
// id order so every pipeline stage behaves deterministically.
type Collection struct {
	shreds map[int]*Shred
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{shreds: make(map[int]*Shred)}
}

// Add inserts a shred, replacing any shred with the same id.
func (c *Collection) Add(s *Shred) {
	c.shreds[s.ID()] = s
}

// Get looks up a shred by id.
func (c *Collection) Get(id int) (*Shred, bool) {
	s, ok := c.shreds[id]
	return s, ok
}

// Remove deletes a shred by id.
func (c *Collection) Remove(id int) {
	delete(c.shreds, id)
}

// Len returns the number of shreds in the collection.
func (c *Collection) Len() int {
	return len(c.shreds)
}

// IDs returns all shred ids in ascending order.
func (c *Collection) IDs() []int {
	ids := make([]int, 0, len(c.shreds))
	for id := range c.shreds {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Shreds returns all shreds in ascending id order.
func (c *Collection) Shreds() []*Shred {
	ids := c.IDs()
	shreds := make([]*Shred, 0, len(ids))
	for _, id := range ids {
		shreds = append(shreds, c.shreds[id])
	}
	return shreds
}
