// Package imageio implements the image source and sink surrounding the
// unshredding core: decoding an image file into a pixel grid, assembling an
// ordered shred sequence back into a grid, and encoding a grid to disk. The
// core itself never performs file I/O.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"unshredder/internal/models"
	"unshredder/pkg/shred"
)

var (
	// ErrImageLoad is returned when an image file cannot be opened or
	// decoded.
	ErrImageLoad = errors.New("image load failed")

	// ErrImageWrite is returned when an image file cannot be encoded or
	// written.
	ErrImageWrite = errors.New("image write failed")
)

// Load opens and decodes a PNG or JPEG file into a 4-channel pixel grid.
func Load(path string) (*models.Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrImageLoad, path, err)
	}

	return FromImage(img), nil
}

// FromImage converts a decoded image into a pixel grid.
func FromImage(img image.Image) *models.Grid {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	grid := models.NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// 16-bit premultiplied color down to 8-bit channels. The loop
			// bounds match the grid dimensions, so Set cannot fail here.
			pixel := models.NewRGBA(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
			_ = grid.Set(x, y, pixel)
		}
	}
	return grid
}

// ToImage converts a pixel grid back into an image.
func ToImage(grid *models.Grid) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, grid.Width(), grid.Height()))
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			pixel, err := grid.At(x, y)
			if err != nil {
				return nil, err
			}
			rgba := color.RGBA{A: 255}
			if pixel.Channels() > 0 {
				rgba.R = pixel[0]
			}
			if pixel.Channels() > 1 {
				rgba.G = pixel[1]
			}
			if pixel.Channels() > 2 {
				rgba.B = pixel[2]
			}
			if pixel.Channels() > 3 {
				rgba.A = pixel[3]
			}
			img.Set(x, y, rgba)
		}
	}
	return img, nil
}

// Save encodes a grid to the given path, choosing the format by extension:
// .jpg/.jpeg for JPEG, PNG otherwise.
func Save(grid *models.Grid, path string) error {
	img, err := ToImage(grid)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrImageWrite, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrImageWrite, err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
	default:
		err = png.Encode(file, img)
	}
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", ErrImageWrite, path, err)
	}
	return nil
}

// AssembleImage writes the strips of each shred left to right into a freshly
// sized grid, in the order the shreds are given.
func AssembleImage(shreds []*shred.Shred) (*models.Grid, error) {
	if len(shreds) == 0 {
		return nil, fmt.Errorf("%w: no shreds to assemble", ErrImageWrite)
	}

	width := 0
	for _, s := range shreds {
		width += s.Width()
	}
	height := shreds[0].Grid().Height()

	out := models.NewGrid(width, height)
	x := 0
	for _, s := range shreds {
		strips, err := s.Strips()
		if err != nil {
			return nil, err
		}
		for _, strip := range strips {
			for y, pixel := range strip {
				if err := out.Set(x, y, pixel); err != nil {
					return nil, err
				}
			}
			x++
		}
	}
	return out, nil
}

// Assemble reconstructs the ordered shreds into a single image and persists
// it at outputPath.
func Assemble(shreds []*shred.Shred, outputPath string) error {
	grid, err := AssembleImage(shreds)
	if err != nil {
		return err
	}
	return Save(grid, outputPath)
}
