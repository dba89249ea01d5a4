package scene

import (
	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/geometry"
	"github.com/df07/go-scanline-pathtracer/pkg/integrator"
	"github.com/df07/go-scanline-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          *geometry.HittableList // Spheres in the scene
	Background     integrator.Background  // Sky gradient seen by escaping rays
	SamplingConfig renderer.SamplingConfig
	CameraConfig   renderer.CameraConfig
}

// NewCamera builds the camera for the scene. The aspect ratio always follows
// the image size and a zero focus distance focuses on the look-at point.
func (s *Scene) NewCamera() (*renderer.Camera, error) {
	config := s.CameraConfig
	config.AspectRatio = s.SamplingConfig.AspectRatio()
	if config.FocusDistance == 0 {
		config.FocusDistance = config.LookFrom.Subtract(config.LookAt).Length()
	}
	return renderer.NewCamera(config)
}

// NewIntegrator returns a path tracer that uses the scene background
func (s *Scene) NewIntegrator() *integrator.PathTracingIntegrator {
	return integrator.NewPathTracingIntegrator(s.Background)
}

// NewRaytracer wires the scene into a ready-to-run raytracer
func (s *Scene) NewRaytracer(logger core.Logger) (*renderer.Raytracer, error) {
	camera, err := s.NewCamera()
	if err != nil {
		return nil, err
	}
	return renderer.NewRaytracer(s.World, camera, s.NewIntegrator(), s.SamplingConfig, logger)
}

// GetPrimitiveCount returns the number of spheres in the scene
func (s *Scene) GetPrimitiveCount() int {
	if s.World == nil {
		return 0
	}
	return s.World.Len()
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override renderer.CameraConfig) renderer.CameraConfig {
	result := base
	zero := core.Vec3{}

	if override.LookFrom != zero {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// mergeCameraOverrides applies the first override, if any
func mergeCameraOverrides(base renderer.CameraConfig, overrides []renderer.CameraConfig) renderer.CameraConfig {
	if len(overrides) == 0 {
		return base
	}
	return MergeCameraConfig(base, overrides[0])
}
