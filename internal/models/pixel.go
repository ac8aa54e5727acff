// Package models defines the shared data model for the unshredding pipeline:
// pixels, strips and the read-only pixel grid every component consumes.
package models

// Pixel is one image pixel as a tuple of color channels. The first three
// channels are red, green and blue; a fourth alpha channel may be present
// but is ignored by all pixel comparisons.
type Pixel []uint8

// NewRGB builds a 3-channel pixel.
func NewRGB(r, g, b uint8) Pixel {
	return Pixel{r, g, b}
}

// NewRGBA builds a 4-channel pixel.
func NewRGBA(r, g, b, a uint8) Pixel {
	return Pixel{r, g, b, a}
}

// Channels returns the number of color channels in the pixel.
func (p Pixel) Channels() int {
	return len(p)
}

// Strip is one vertical line of pixels spanning the full image height,
// one pixel per row. Strips are derived copies of a grid column and are
// never mutated.
type Strip []Pixel
