package scene

import (
	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/geometry"
	"github.com/df07/go-scanline-pathtracer/pkg/integrator"
	"github.com/df07/go-scanline-pathtracer/pkg/material"
	"github.com/df07/go-scanline-pathtracer/pkg/renderer"
)

// NewDefaultScene creates a small scene with three spheres on a ground sphere
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	// Default camera configuration
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:        core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:            core.NewVec3(0, 1, 0),    // Standard up direction
		VFov:          40.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.05,
		FocusDistance: 0.0, // Focus on the look-at point
	}
	cameraConfig := mergeCameraOverrides(defaultCameraConfig, cameraOverrides)

	// Create materials
	lambertianGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(1.5)

	world := geometry.NewHittableList(
		mustSphere(core.NewVec3(0, -1000, -1), 1000, lambertianGround),
		mustSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed),
		mustSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver),
		mustSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold),
		mustSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, materialGlass),
	)

	return &Scene{
		Name:           "default",
		World:          world,
		Background:     integrator.DefaultBackground(),
		SamplingConfig: renderer.DefaultSamplingConfig(),
		CameraConfig:   cameraConfig,
	}
}
