package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/geometry"
	"github.com/df07/go-scanline-pathtracer/pkg/integrator"
)

// Raytracer drives a full render: it splits the image into scanlines, runs them
// on a worker pool and assembles the ordered pixel buffer
type Raytracer struct {
	renderer *ScanlineRenderer
	config   SamplingConfig
	logger   core.Logger
}

// ScanlineCompletionResult is reported once per finished scanline
type ScanlineCompletionResult struct {
	Row    int   // Scanline index, 0 = bottom of the view
	Pixels []RGB // Quantized pixels, left to right

	// Progress information
	Completed int // Scanlines finished so far, including this one
	Total     int // Scanlines in the image
}

// RenderOptions configures optional render behavior
type RenderOptions struct {
	OnScanline func(ScanlineCompletionResult) // Called on the collecting goroutine
}

// NewRaytracer creates a raytracer over an immutable world and camera.
// A nil integrator selects path tracing against the default sky; a nil logger
// discards output.
func NewRaytracer(world geometry.Hittable, camera *Camera, integratorInst integrator.Integrator, config SamplingConfig, logger core.Logger) (*Raytracer, error) {
	if world == nil {
		return nil, fmt.Errorf("%w: world is nil", ErrInvalidConfig)
	}
	if camera == nil {
		return nil, fmt.Errorf("%w: camera is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if integratorInst == nil {
		integratorInst = integrator.NewPathTracingIntegrator(integrator.DefaultBackground())
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Raytracer{
		renderer: NewScanlineRenderer(world, camera, integratorInst, config),
		config:   config,
		logger:   logger,
	}, nil
}

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// Render renders the image in parallel
func (rt *Raytracer) Render(ctx context.Context) (*PixelBuffer, RenderStats, error) {
	return rt.RenderWithOptions(ctx, RenderOptions{})
}

// RenderWithOptions renders the image in parallel. On failure no partial image
// is returned.
func (rt *Raytracer) RenderWithOptions(ctx context.Context, options RenderOptions) (*PixelBuffer, RenderStats, error) {
	workers := rt.config.Workers()
	pool := NewWorkerPool(rt.renderer, workers)

	rt.logger.Printf("Rendering %dx%d at %d samples/pixel, depth %d (using %d workers)...\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, rt.config.MaxDepth, workers)

	startTime := time.Now()
	collector := rt.newCollector(workers, options)

	if err := pool.Run(ctx, rt.config.Height, collector.collect); err != nil {
		rt.logger.Printf("Render failed after %d of %d scanlines: %v\n", collector.stats.Scanlines, rt.config.Height, err)
		return nil, RenderStats{}, fmt.Errorf("render: %w", err)
	}

	return collector.finish(time.Since(startTime))
}

// RenderSequential renders every scanline in order on the calling goroutine.
// Seeding matches Render, so the pixels are identical.
func (rt *Raytracer) RenderSequential() (*PixelBuffer, RenderStats, error) {
	startTime := time.Now()
	collector := rt.newCollector(1, RenderOptions{})

	for row := 0; row < rt.config.Height; row++ {
		result, err := renderTask(rt.renderer, ScanlineTask{Row: row})
		if err != nil {
			return nil, RenderStats{}, fmt.Errorf("render: %w", err)
		}
		if err := collector.collect(result); err != nil {
			return nil, RenderStats{}, fmt.Errorf("render: %w", err)
		}
	}

	return collector.finish(time.Since(startTime))
}

// scanlineCollector is the single writer of the pixel buffer
type scanlineCollector struct {
	rt          *Raytracer
	buffer      *PixelBuffer
	stats       RenderStats
	options     RenderOptions
	logInterval int
}

func (rt *Raytracer) newCollector(workers int, options RenderOptions) *scanlineCollector {
	return &scanlineCollector{
		rt:     rt,
		buffer: NewPixelBuffer(rt.config.Width, rt.config.Height),
		stats: RenderStats{
			SamplesPerPixel: rt.config.SamplesPerPixel,
			Workers:         workers,
		},
		options:     options,
		logInterval: max(1, rt.config.Height/10),
	}
}

func (c *scanlineCollector) collect(result ScanlineResult) error {
	if err := c.buffer.SetScanline(result.Row, result.Pixels); err != nil {
		return err
	}
	c.stats.add(result.Stats)

	total := c.buffer.Height
	if c.stats.Scanlines%c.logInterval == 0 || c.stats.Scanlines == total {
		c.rt.logger.Printf("Scanlines completed: %d/%d\n", c.stats.Scanlines, total)
	}

	if c.options.OnScanline != nil {
		c.options.OnScanline(ScanlineCompletionResult{
			Row:       result.Row,
			Pixels:    result.Pixels,
			Completed: c.stats.Scanlines,
			Total:     total,
		})
	}
	return nil
}

func (c *scanlineCollector) finish(elapsed time.Duration) (*PixelBuffer, RenderStats, error) {
	c.stats.finalize(elapsed)
	c.rt.logger.Printf("Render completed in %v (%d samples traced)\n", elapsed, c.stats.TotalSamples)
	return c.buffer, c.stats, nil
}
