package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/geometry"
)

// constantIntegrator returns the same radiance for every ray
type constantIntegrator struct {
	color core.Vec3
	calls int
}

func (ci *constantIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler, depth int) core.Vec3 {
	ci.calls++
	return ci.color
}

func TestSpanDenominator(t *testing.T) {
	assert.Equal(t, 1.0, spanDenominator(0))
	assert.Equal(t, 1.0, spanDenominator(1))
	assert.Equal(t, 1.0, spanDenominator(2))
	assert.Equal(t, 399.0, spanDenominator(400))
}

func TestRenderScanlineAveragesSamples(t *testing.T) {
	camera, err := NewCamera(pinholeConfig())
	require.NoError(t, err)

	integ := &constantIntegrator{color: core.NewVec3(0.25, 0, 1)}
	config := SamplingConfig{Width: 5, Height: 3, SamplesPerPixel: 4, MaxDepth: 3, Seed: 1}
	sr := NewScanlineRenderer(geometry.NewHittableList(), camera, integ, config)

	pixels, stats := sr.RenderScanline(1, core.NewSeededSampler(1))

	require.Len(t, pixels, 5)
	for i, p := range pixels {
		assert.Equal(t, RGB{R: 128, G: 0, B: 255}, p, "pixel %d", i)
	}
	assert.Equal(t, 20, integ.calls)
	assert.Equal(t, ScanlineStats{Pixels: 5, Samples: 20}, stats)
}

func TestPixelRayJitterStaysInsideViewport(t *testing.T) {
	camera, err := NewCamera(pinholeConfig())
	require.NoError(t, err)

	config := SamplingConfig{Width: 3, Height: 3, SamplesPerPixel: 1, MaxDepth: 1}
	sr := NewScanlineRenderer(geometry.NewHittableList(), camera, &constantIntegrator{}, config)
	sampler := core.NewSeededSampler(3)

	// The 2x2 viewport spans [-1, 1] at z = -1; u and v stay within [0, 1.5)
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			ray := sr.pixelRay(i, j, sampler)
			x := ray.Direction.X
			y := ray.Direction.Y
			assert.GreaterOrEqual(t, x, -1.0+2*float64(i)/2-1e-9)
			assert.Less(t, x, -1.0+2*float64(i+1)/2)
			assert.GreaterOrEqual(t, y, -1.0+2*float64(j)/2-1e-9)
			assert.Less(t, y, -1.0+2*float64(j+1)/2)
		}
	}
}

func TestRenderScanlineSinglePixel(t *testing.T) {
	camera, err := NewCamera(pinholeConfig())
	require.NoError(t, err)

	config := SamplingConfig{Width: 1, Height: 1, SamplesPerPixel: 2, MaxDepth: 1}
	sr := NewScanlineRenderer(geometry.NewHittableList(), camera, &constantIntegrator{color: core.NewVec3(1, 1, 1)}, config)

	pixels, _ := sr.RenderScanline(0, core.NewSeededSampler(9))
	assert.Equal(t, []RGB{{R: 255, G: 255, B: 255}}, pixels)
}
