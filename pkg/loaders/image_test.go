package loaders

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
)

func createTestImage() *image.RGBA {
	// Create a simple 2x2 test image
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))

	// Top-left: white
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	// Top-right: red
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	// Bottom-left: green
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	// Bottom-right: blue
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	return img
}

// Helper function to check color with tolerance for precision
func colorMatches(actual, expected core.Vec3) bool {
	tolerance := 0.01
	return math.Abs(actual.X-expected.X) < tolerance &&
		math.Abs(actual.Y-expected.Y) < tolerance &&
		math.Abs(actual.Z-expected.Z) < tolerance
}

// TestLoadImage creates a test PNG and verifies loading
func TestLoadImage(t *testing.T) {
	// Create a temporary directory for test files
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.png")

	// Save as PNG
	f, err := os.Create(testFile)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := png.Encode(f, createTestImage()); err != nil {
		f.Close()
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	f.Close()

	// Load the image
	imageData, err := LoadImage(testFile)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	// Verify dimensions
	if imageData.Width != 2 || imageData.Height != 2 {
		t.Errorf("Expected 2x2 image, got %dx%d", imageData.Width, imageData.Height)
	}

	// Verify pixel count
	if len(imageData.Pixels) != 4 {
		t.Errorf("Expected 4 pixels, got %d", len(imageData.Pixels))
	}

	if !colorMatches(imageData.At(1, 0), core.NewVec3(1, 0, 0)) {
		t.Errorf("Top-right pixel: expected red, got %v", imageData.At(1, 0))
	}
}

func TestSaveImageFormats(t *testing.T) {
	tmpDir := t.TempDir()
	expected := []core.Vec3{
		core.NewVec3(1, 1, 1),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
	}

	for _, ext := range ImageFormats {
		t.Run(ext, func(t *testing.T) {
			filename := filepath.Join(tmpDir, "nested", "render"+ext)
			require.NoError(t, SaveImage(filename, createTestImage()))

			imageData, err := LoadImage(filename)
			require.NoError(t, err)
			require.Equal(t, 2, imageData.Width)
			require.Equal(t, 2, imageData.Height)

			for i, want := range expected {
				assert.True(t, colorMatches(imageData.Pixels[i], want), "pixel %d: got %v, want %v", i, imageData.Pixels[i], want)
			}
		})
	}
}

func TestSaveImageUppercaseExtension(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "render.PNG")
	require.NoError(t, SaveImage(filename, createTestImage()))

	_, err := LoadImage(filename)
	assert.NoError(t, err)
}

func TestSaveImageUnsupportedFormat(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "render.gif")
	err := SaveImage(filename, createTestImage())

	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	_, statErr := os.Stat(filename)
	assert.True(t, os.IsNotExist(statErr), "no file is created for an unsupported format")
}

func TestLoadImageErrors(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := LoadImage(filepath.Join(tmpDir, "missing.png"))
	assert.Error(t, err)

	garbage := filepath.Join(tmpDir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0644))
	_, err = LoadImage(garbage)
	assert.Error(t, err)
}
