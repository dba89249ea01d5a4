package renderer

import (
	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/geometry"
	"github.com/df07/go-scanline-pathtracer/pkg/integrator"
)

// ScanlineRenderer renders whole scanlines. It only reads its fields, so one
// instance is shared by every worker.
type ScanlineRenderer struct {
	world      geometry.Hittable
	camera     *Camera
	integrator integrator.Integrator
	config     SamplingConfig
}

// NewScanlineRenderer creates a scanline renderer over an immutable world and camera
func NewScanlineRenderer(world geometry.Hittable, camera *Camera, integratorInst integrator.Integrator, config SamplingConfig) *ScanlineRenderer {
	return &ScanlineRenderer{
		world:      world,
		camera:     camera,
		integrator: integratorInst,
		config:     config,
	}
}

// RenderScanline renders scanline j, where j = 0 is the bottom of the view,
// drawing all randomness from the given sampler
func (sr *ScanlineRenderer) RenderScanline(j int, sampler core.Sampler) ([]RGB, ScanlineStats) {
	width := sr.config.Width
	pixels := make([]RGB, width)

	for i := 0; i < width; i++ {
		colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}
		for sample := 0; sample < sr.config.SamplesPerPixel; sample++ {
			ray := sr.pixelRay(i, j, sampler)
			colorAccum = colorAccum.Add(sr.integrator.RayColor(ray, sr.world, sampler, sr.config.MaxDepth))
		}
		pixels[i] = QuantizeColor(colorAccum.Divide(float64(sr.config.SamplesPerPixel)))
	}

	return pixels, ScanlineStats{
		Pixels:  width,
		Samples: width * sr.config.SamplesPerPixel,
	}
}

// pixelRay jitters a camera ray within pixel (i, j)
func (sr *ScanlineRenderer) pixelRay(i, j int, sampler core.Sampler) core.Ray {
	u := (float64(i) + sampler.Get1D()) / spanDenominator(sr.config.Width)
	v := (float64(j) + sampler.Get1D()) / spanDenominator(sr.config.Height)
	return sr.camera.GetRay(u, v, sampler)
}

// spanDenominator maps pixel indices onto [0, 1]; a single pixel spans the whole axis
func spanDenominator(n int) float64 {
	if n <= 1 {
		return 1
	}
	return float64(n - 1)
}
