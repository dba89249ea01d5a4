package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera rays traced
	AverageSamples  float64       // Average samples per pixel
	SamplesPerPixel int           // Configured samples per pixel
	Scanlines       int           // Scanlines completed
	Workers         int           // Size of the worker pool
	Elapsed         time.Duration // Wall time of the render
}

// ScanlineStats tracks the work done for one scanline
type ScanlineStats struct {
	Pixels  int
	Samples int
}

// add folds a completed scanline into the totals
func (rs *RenderStats) add(s ScanlineStats) {
	rs.TotalPixels += s.Pixels
	rs.TotalSamples += s.Samples
	rs.Scanlines++
}

// finalize calculates averages after all scanlines are in
func (rs *RenderStats) finalize(elapsed time.Duration) {
	if rs.TotalPixels > 0 {
		rs.AverageSamples = float64(rs.TotalSamples) / float64(rs.TotalPixels)
	}
	rs.Elapsed = elapsed
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += 0.2126*float64(r)/65535 + 0.7152*float64(g)/65535 + 0.0722*float64(b)/65535
		}
	}
	return total / float64(pixels)
}
