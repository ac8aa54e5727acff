package models

import (
	"errors"
	"fmt"
)

var (
	// ErrPixelOutsideImage is returned when a coordinate falls outside
	// [0, width) x [0, height).
	ErrPixelOutsideImage = errors.New("pixel outside image")

	// ErrRange is returned for a malformed strip range (to < from).
	ErrRange = errors.New("invalid strip range")
)

// Grid holds the pixel data of one image in row-major order. It is built
// once by the image source and treated as read-only by every later stage;
// shreds keep a reference to it and resolve their strips on demand.
type Grid struct {
	width  int
	height int
	pixels []Pixel
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		pixels: make([]Pixel, width*height),
	}
}

// Width returns the image width in strips.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the image height in pixels.
func (g *Grid) Height() int {
	return g.height
}

// checkX validates a strip index against the image bounds.
func (g *Grid) checkX(x int) error {
	if x < 0 {
		return fmt.Errorf("%w: x=%d is negative", ErrPixelOutsideImage, x)
	}
	if x >= g.width {
		return fmt.Errorf("%w: x=%d exceeds width %d", ErrPixelOutsideImage, x, g.width)
	}
	return nil
}

// checkY validates a row index against the image bounds.
func (g *Grid) checkY(y int) error {
	if y < 0 {
		return fmt.Errorf("%w: y=%d is negative", ErrPixelOutsideImage, y)
	}
	if y >= g.height {
		return fmt.Errorf("%w: y=%d exceeds height %d", ErrPixelOutsideImage, y, g.height)
	}
	return nil
}

// Set stores a pixel at the given coordinate. It is only used while the
// image source populates the grid; no component writes to a grid afterwards.
func (g *Grid) Set(x, y int, p Pixel) error {
	if err := g.checkX(x); err != nil {
		return err
	}
	if err := g.checkY(y); err != nil {
		return err
	}
	g.pixels[y*g.width+x] = p
	return nil
}

// At returns the pixel at the given coordinate.
func (g *Grid) At(x, y int) (Pixel, error) {
	if err := g.checkX(x); err != nil {
		return nil, err
	}
	if err := g.checkY(y); err != nil {
		return nil, err
	}
	return g.pixels[y*g.width+x], nil
}

// Strip returns the vertical line of pixels at strip index x.
func (g *Grid) Strip(x int) (Strip, error) {
	if err := g.checkX(x); err != nil {
		return nil, err
	}
	strip := make(Strip, g.height)
	for y := 0; y < g.height; y++ {
		strip[y] = g.pixels[y*g.width+x]
	}
	return strip, nil
}

// Strips returns the strips in the inclusive range [from, to]. Bounds are
// validated before any pixel is read.
func (g *Grid) Strips(from, to int) ([]Strip, error) {
	if err := g.checkX(from); err != nil {
		return nil, err
	}
	if err := g.checkX(to); err != nil {
		return nil, err
	}
	if to < from {
		return nil, fmt.Errorf("%w: to=%d is smaller than from=%d", ErrRange, to, from)
	}

	strips := make([]Strip, 0, to-from+1)
	for x := from; x <= to; x++ {
		strip, err := g.Strip(x)
		if err != nil {
			return nil, err
		}
		strips = append(strips, strip)
	}
	return strips, nil
}
