package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
)

// RGB is one quantized output pixel
type RGB struct {
	R, G, B uint8
}

// PixelBuffer is a row-major image of RGB pixels with the top row first
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []RGB
}

// NewPixelBuffer allocates a black buffer
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]RGB, width*height),
	}
}

// At returns the pixel at column x and image row y
func (pb *PixelBuffer) At(x, y int) RGB {
	return pb.Pix[y*pb.Width+x]
}

// Row returns the pixels of image row y; the slice aliases the buffer
func (pb *PixelBuffer) Row(y int) []RGB {
	return pb.Pix[y*pb.Width : (y+1)*pb.Width]
}

// SetScanline stores a rendered scanline. Scanline 0 is the bottom of the
// view, so it lands in the last image row.
func (pb *PixelBuffer) SetScanline(scanline int, pixels []RGB) error {
	if scanline < 0 || scanline >= pb.Height {
		return fmt.Errorf("scanline %d outside image height %d", scanline, pb.Height)
	}
	if len(pixels) != pb.Width {
		return fmt.Errorf("scanline %d has %d pixels, want %d", scanline, len(pixels), pb.Width)
	}
	copy(pb.Row(pb.Height-1-scanline), pixels)
	return nil
}

// ToRGBA converts the buffer into an opaque image for encoders
func (pb *PixelBuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, pb.Width, pb.Height))
	for y := 0; y < pb.Height; y++ {
		for x, p := range pb.Row(y) {
			img.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}

// Equal reports whether two buffers hold identical pixels
func (pb *PixelBuffer) Equal(other *PixelBuffer) bool {
	if pb.Width != other.Width || pb.Height != other.Height {
		return false
	}
	for i := range pb.Pix {
		if pb.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// QuantizeColor maps an averaged linear color to 8-bit channels with a
// square-root (gamma 2) tone map
func QuantizeColor(c core.Vec3) RGB {
	return RGB{
		R: quantizeChannel(c.X),
		G: quantizeChannel(c.Y),
		B: quantizeChannel(c.Z),
	}
}

func quantizeChannel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	g := math.Sqrt(v)
	g = max(0.0, min(0.999, g))
	return uint8(math.Floor(256 * g))
}
