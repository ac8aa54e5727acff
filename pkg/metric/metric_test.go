package metric

import (
	"errors"
	"testing"

	"unshredder/internal/models"
)

// solidStrip builds a strip of the given height where every pixel has the
// same value.
func solidStrip(height int, p models.Pixel) models.Strip {
	strip := make(models.Strip, height)
	for y := range strip {
		strip[y] = p
	}
	return strip
}

func TestPixelDifference(t *testing.T) {
	a := models.NewRGB(10, 20, 30)
	b := models.NewRGB(5, 25, 60)

	diff, err := PixelDifference(a, b)
	if err != nil {
		t.Fatalf("PixelDifference failed: %v", err)
	}
	if diff != 5+5+30 {
		t.Errorf("Expected difference 40, got %d", diff)
	}
}

func TestPixelDifferenceIgnoresAlpha(t *testing.T) {
	a := models.NewRGBA(10, 20, 30, 0)
	b := models.NewRGBA(10, 20, 30, 255)

	diff, err := PixelDifference(a, b)
	if err != nil {
		t.Fatalf("PixelDifference failed: %v", err)
	}
	if diff != 0 {
		t.Errorf("Expected alpha to be ignored, got difference %d", diff)
	}
}

func TestPixelDifferenceFormatMismatch(t *testing.T) {
	a := models.NewRGB(1, 2, 3)
	b := models.NewRGBA(1, 2, 3, 4)

	if _, err := PixelDifference(a, b); !errors.Is(err, ErrFormatMismatch) {
		t.Errorf("Expected ErrFormatMismatch, got %v", err)
	}
}

func TestStripDifferenceIdentity(t *testing.T) {
	s := solidStrip(8, models.NewRGB(100, 150, 200))

	diff, err := StripDifference(s, s)
	if err != nil {
		t.Fatalf("StripDifference failed: %v", err)
	}
	if diff != 0 {
		t.Errorf("Expected identical strips to differ by 0, got %d", diff)
	}
}

func TestStripDifferenceSymmetry(t *testing.T) {
	a := solidStrip(8, models.NewRGB(10, 10, 10))
	b := solidStrip(8, models.NewRGB(90, 10, 10))

	ab, err := StripDifference(a, b)
	if err != nil {
		t.Fatalf("StripDifference(a,b) failed: %v", err)
	}
	ba, err := StripDifference(b, a)
	if err != nil {
		t.Fatalf("StripDifference(b,a) failed: %v", err)
	}
	if ab != ba {
		t.Errorf("Expected symmetric difference, got %d and %d", ab, ba)
	}
	if ab != 80 {
		t.Errorf("Expected difference 80, got %d", ab)
	}
}

func TestStripDifferenceIntegerMean(t *testing.T) {
	// Two rows differing by 3 and 4 average to 3 under integer division
	a := models.Strip{models.NewRGB(0, 0, 0), models.NewRGB(0, 0, 0)}
	b := models.Strip{models.NewRGB(3, 0, 0), models.NewRGB(4, 0, 0)}

	diff, err := StripDifference(a, b)
	if err != nil {
		t.Fatalf("StripDifference failed: %v", err)
	}
	if diff != 3 {
		t.Errorf("Expected integer mean 3, got %d", diff)
	}
}

func TestStripDifferenceLengthMismatch(t *testing.T) {
	a := solidStrip(8, models.NewRGB(0, 0, 0))
	b := solidStrip(9, models.NewRGB(0, 0, 0))

	if _, err := StripDifference(a, b); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Expected ErrLengthMismatch, got %v", err)
	}
}

func TestAccumulatedStripDifference(t *testing.T) {
	strips := []models.Strip{
		solidStrip(4, models.NewRGB(0, 0, 0)),
		solidStrip(4, models.NewRGB(10, 0, 0)),
		solidStrip(4, models.NewRGB(30, 0, 0)),
	}

	// Consecutive differences are 10 and 20, so the mean is 15
	diff, err := AccumulatedStripDifference(strips)
	if err != nil {
		t.Fatalf("AccumulatedStripDifference failed: %v", err)
	}
	if diff != 15 {
		t.Errorf("Expected accumulated difference 15, got %d", diff)
	}
}

func TestAccumulatedStripDifferenceTooFewStrips(t *testing.T) {
	strips := []models.Strip{solidStrip(4, models.NewRGB(0, 0, 0))}

	if _, err := AccumulatedStripDifference(strips); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Expected ErrLengthMismatch for a single strip, got %v", err)
	}
	if _, err := AccumulatedStripDifference(nil); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Expected ErrLengthMismatch for no strips, got %v", err)
	}
}
