package integrator

import (
	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray with at most depth bounces
	RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler, depth int) core.Vec3
}
