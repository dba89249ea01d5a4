package scene

import (
	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/geometry"
	"github.com/df07/go-scanline-pathtracer/pkg/integrator"
	"github.com/df07/go-scanline-pathtracer/pkg/material"
	"github.com/df07/go-scanline-pathtracer/pkg/renderer"
)

// Grid extent of the small spheres; each axis covers [-randomGridExtent, randomGridExtent)
const randomGridExtent = 11

// NewRandomScene creates the "many spheres" scene: a huge ground sphere, a
// jittered grid of small random spheres and three large feature spheres.
// The layout depends only on seed.
func NewRandomScene(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := mergeCameraOverrides(renderer.DefaultCameraConfig(), cameraOverrides)

	samplingConfig := renderer.DefaultSamplingConfig()
	samplingConfig.Seed = seed

	world := geometry.NewHittableList()
	sampler := core.NewSeededSampler(seed)

	// Ground
	world.Add(mustSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	// Small spheres, kept clear of the big metal sphere
	clearance := core.NewVec3(4, 0.2, 0)
	for a := -randomGridExtent; a < randomGridExtent; a++ {
		for b := -randomGridExtent; b < randomGridExtent; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)
			if center.Subtract(clearance).Length() <= 0.9 {
				continue
			}

			var sphereMaterial *material.Material
			switch {
			case chooseMat < 0.8:
				albedo := core.RandomVec3(sampler).MultiplyVec(core.RandomVec3(sampler))
				sphereMaterial = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := core.RandomVec3Range(sampler, 0.5, 1)
				fuzz := core.RandomRange(sampler, 0, 0.5)
				sphereMaterial = material.NewMetal(albedo, fuzz)
			default:
				sphereMaterial = material.NewDielectric(1.5)
			}
			world.Add(mustSphere(center, 0.2, sphereMaterial))
		}
	}

	// Three large spheres
	world.Add(
		mustSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		mustSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		mustSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return &Scene{
		Name:           "random",
		World:          world,
		Background:     integrator.DefaultBackground(),
		SamplingConfig: samplingConfig,
		CameraConfig:   cameraConfig,
	}
}

// mustSphere builds a sphere from constant builder geometry
func mustSphere(center core.Vec3, radius float64, mat *material.Material) *geometry.Sphere {
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		panic(err)
	}
	return sphere
}
