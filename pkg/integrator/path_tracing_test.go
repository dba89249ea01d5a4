package integrator

import (
	"testing"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/geometry"
	"github.com/df07/go-scanline-pathtracer/pkg/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestWorld creates a simple world with one sphere in front of the origin
func createTestWorld(t *testing.T, mat *material.Material) *geometry.HittableList {
	t.Helper()
	sphere, err := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, mat)
	require.NoError(t, err)
	return geometry.NewHittableList(sphere)
}

func TestPathTracing_DepthZeroIsBlack(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultBackground())
	sampler := core.NewSeededSampler(42)

	worlds := map[string]*geometry.HittableList{
		"empty":      geometry.NewHittableList(),
		"lambertian": createTestWorld(t, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
		"glass":      createTestWorld(t, material.NewDielectric(1.5)),
	}

	for name, world := range worlds {
		t.Run(name, func(t *testing.T) {
			for _, dir := range []core.Vec3{{X: 0, Y: 0, Z: -1}, {X: 0, Y: 1, Z: 0}} {
				color := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), dir), world, sampler, 0)
				assert.Equal(t, core.Vec3{}, color)
			}
		})
	}
}

func TestPathTracing_BackgroundEndpoints(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultBackground())
	world := geometry.NewHittableList()
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up is sky blue", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down is white", core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)},
		{"unnormalized up", core.NewVec3(0, 5, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"horizon is the midpoint", core.NewVec3(0, 0, -1), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), tt.direction), world, sampler, 50)
			if color.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}
}

func TestPathTracing_CustomBackground(t *testing.T) {
	bg := Background{Top: core.NewVec3(0, 0, 1), Bottom: core.NewVec3(1, 0, 0)}
	pt := NewPathTracingIntegrator(bg)

	color := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), geometry.NewHittableList(), core.NewSeededSampler(1), 1)
	assert.Equal(t, bg.Top, color)
	assert.Equal(t, bg, pt.Background())
}

func TestPathTracing_SingleBounceIsBlack(t *testing.T) {
	// With depth 1 the scattered ray has no budget left
	pt := NewPathTracingIntegrator(DefaultBackground())
	world := createTestWorld(t, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	color := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, core.NewSeededSampler(3), 1)
	assert.Equal(t, core.Vec3{}, color)
}

func TestPathTracing_MirrorReflectsBackgroundTimesAlbedo(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.6, 0.4)
	pt := NewPathTracingIntegrator(DefaultBackground())
	world := createTestWorld(t, material.NewMetal(albedo, 0))

	// Head-on hit reflects straight back along +Z, which sees the horizon color
	color := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, core.NewSeededSampler(3), 2)
	expected := albedo.MultiplyVec(core.NewVec3(0.75, 0.85, 1.0))
	assert.InDelta(t, 0, color.Subtract(expected).Length(), 1e-9)
}

func TestPathTracing_AbsorbedRayIsBlack(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultBackground())
	world := createTestWorld(t, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0))

	// Grazing hit at the top of the sphere, fuzz sample (0, -0.8, 0) drives the reflection inward
	ray := core.NewRay(core.NewVec3(-2, 0.4999, -1), core.NewVec3(1, 0, 0))
	color := pt.RayColor(ray, world, core.NewSequenceSampler(0.5, 0.1, 0.5), 10)
	assert.Equal(t, core.Vec3{}, color)
}

func TestPathTracing_EnergyBounded(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultBackground())
	world := createTestWorld(t, material.NewLambertian(core.NewVec3(0.9, 0.9, 0.9)))
	ground, err := geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	require.NoError(t, err)
	world.Add(ground)

	sampler := core.NewSeededSampler(9)
	for i := 0; i < 500; i++ {
		dir := core.RandomUnitVector(sampler)
		color := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), dir), world, sampler, 50)
		for _, c := range []float64{color.X, color.Y, color.Z} {
			if c < 0 || c > 1 {
				t.Fatalf("Color component %f outside [0,1] for direction %v", c, dir)
			}
		}
	}
}
