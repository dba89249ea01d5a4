package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/geometry"
	"github.com/df07/go-scanline-pathtracer/pkg/integrator"
	"github.com/df07/go-scanline-pathtracer/pkg/material"
	"github.com/df07/go-scanline-pathtracer/pkg/renderer"
)

// ErrInvalidDescription is returned when a scene description cannot be turned into a scene
var ErrInvalidDescription = errors.New("invalid scene description")

// Description is the serializable form of a scene. Omitted camera and render
// fields fall back to the renderer defaults.
type Description struct {
	Name       string                 `yaml:"name,omitempty" toml:"name,omitempty"`
	Camera     CameraDescription      `yaml:"camera" toml:"camera"`
	Render     RenderDescription      `yaml:"render" toml:"render"`
	Background *BackgroundDescription `yaml:"background,omitempty" toml:"background,omitempty"`
	Spheres    []SphereDescription    `yaml:"spheres" toml:"spheres"`
}

// CameraDescription holds the camera block; FocusDistance 0 focuses on LookAt
type CameraDescription struct {
	LookFrom      []float64 `yaml:"lookFrom,omitempty" toml:"lookFrom,omitempty"`
	LookAt        []float64 `yaml:"lookAt,omitempty" toml:"lookAt,omitempty"`
	Up            []float64 `yaml:"up,omitempty" toml:"up,omitempty"`
	VFov          float64   `yaml:"vfov,omitempty" toml:"vfov,omitempty"`
	Aperture      float64   `yaml:"aperture" toml:"aperture"`
	FocusDistance float64   `yaml:"focusDistance" toml:"focusDistance"`
}

// RenderDescription holds the render block
type RenderDescription struct {
	Width           int    `yaml:"width,omitempty" toml:"width,omitempty"`
	Height          int    `yaml:"height,omitempty" toml:"height,omitempty"`
	SamplesPerPixel int    `yaml:"samplesPerPixel,omitempty" toml:"samplesPerPixel,omitempty"`
	MaxDepth        int    `yaml:"maxDepth,omitempty" toml:"maxDepth,omitempty"`
	Workers         int    `yaml:"workers,omitempty" toml:"workers,omitempty"`
	Seed            *int64 `yaml:"seed,omitempty" toml:"seed,omitempty"`
}

// BackgroundDescription holds the sky gradient colors
type BackgroundDescription struct {
	Top    []float64 `yaml:"top" toml:"top"`
	Bottom []float64 `yaml:"bottom" toml:"bottom"`
}

// SphereDescription is one sphere entry
type SphereDescription struct {
	Center   []float64           `yaml:"center" toml:"center"`
	Radius   float64             `yaml:"radius" toml:"radius"`
	Material MaterialDescription `yaml:"material" toml:"material"`
}

// MaterialDescription is a tagged material; Type selects which fields apply
type MaterialDescription struct {
	Type            string    `yaml:"type" toml:"type"`
	Albedo          []float64 `yaml:"albedo,omitempty" toml:"albedo,omitempty"`
	Fuzz            float64   `yaml:"fuzz,omitempty" toml:"fuzz,omitempty"`
	RefractiveIndex float64   `yaml:"refractiveIndex,omitempty" toml:"refractiveIndex,omitempty"`
}

// ToScene validates the description and builds the scene from it
func (d *Description) ToScene() (*Scene, error) {
	cameraConfig, err := d.Camera.toConfig()
	if err != nil {
		return nil, fmt.Errorf("%w: camera: %w", ErrInvalidDescription, err)
	}

	samplingConfig := d.Render.toConfig()
	if err := samplingConfig.Validate(); err != nil {
		return nil, fmt.Errorf("%w: render: %w", ErrInvalidDescription, err)
	}

	background := integrator.DefaultBackground()
	if d.Background != nil {
		if background.Top, err = vec3From("background.top", d.Background.Top); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDescription, err)
		}
		if background.Bottom, err = vec3From("background.bottom", d.Background.Bottom); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDescription, err)
		}
	}

	world := geometry.NewHittableList()
	for i, entry := range d.Spheres {
		sphere, err := entry.toSphere()
		if err != nil {
			return nil, fmt.Errorf("%w: sphere %d: %w", ErrInvalidDescription, i, err)
		}
		world.Add(sphere)
	}

	name := d.Name
	if name == "" {
		name = "custom"
	}

	return &Scene{
		Name:           name,
		World:          world,
		Background:     background,
		SamplingConfig: samplingConfig,
		CameraConfig:   cameraConfig,
	}, nil
}

func (c CameraDescription) toConfig() (renderer.CameraConfig, error) {
	config := renderer.DefaultCameraConfig()
	var err error

	if c.LookFrom != nil {
		if config.LookFrom, err = vec3From("lookFrom", c.LookFrom); err != nil {
			return config, err
		}
	}
	if c.LookAt != nil {
		if config.LookAt, err = vec3From("lookAt", c.LookAt); err != nil {
			return config, err
		}
	}
	if c.Up != nil {
		if config.Up, err = vec3From("up", c.Up); err != nil {
			return config, err
		}
	}
	if c.VFov != 0 {
		config.VFov = c.VFov
	}
	config.Aperture = c.Aperture
	config.FocusDistance = c.FocusDistance

	// Validate with the resolved focus distance; the aspect ratio is set from the image size later
	check := config
	check.AspectRatio = 1
	if check.FocusDistance == 0 {
		check.FocusDistance = config.LookFrom.Subtract(config.LookAt).Length()
	}
	if err := check.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func (r RenderDescription) toConfig() renderer.SamplingConfig {
	config := renderer.DefaultSamplingConfig()
	if r.Width != 0 {
		config.Width = r.Width
	}
	if r.Height != 0 {
		config.Height = r.Height
	}
	if r.SamplesPerPixel != 0 {
		config.SamplesPerPixel = r.SamplesPerPixel
	}
	if r.MaxDepth != 0 {
		config.MaxDepth = r.MaxDepth
	}
	if r.Seed != nil {
		config.Seed = *r.Seed
	}
	config.NumWorkers = r.Workers
	return config
}

func (s SphereDescription) toSphere() (*geometry.Sphere, error) {
	center, err := vec3From("center", s.Center)
	if err != nil {
		return nil, err
	}
	mat, err := s.Material.toMaterial()
	if err != nil {
		return nil, err
	}
	return geometry.NewSphere(center, s.Radius, mat)
}

func (m MaterialDescription) toMaterial() (*material.Material, error) {
	kind, err := material.ParseKind(m.Type)
	if err != nil {
		return nil, err
	}

	var mat *material.Material
	switch kind {
	case material.KindLambertian, material.KindMetal:
		albedo, err := vec3From("albedo", m.Albedo)
		if err != nil {
			return nil, err
		}
		if kind == material.KindLambertian {
			mat = material.NewLambertian(albedo)
		} else {
			mat = material.NewMetal(albedo, m.Fuzz)
		}
	case material.KindDielectric:
		mat = material.NewDielectric(m.RefractiveIndex)
	}

	if err := mat.Validate(); err != nil {
		return nil, err
	}
	return mat, nil
}

// vec3From converts a three-element list into a vector
func vec3From(field string, values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%s needs 3 components, got %d", field, len(values))
	}
	v := core.NewVec3(values[0], values[1], values[2])
	if !v.IsFinite() {
		return core.Vec3{}, fmt.Errorf("%s %v is not finite", field, v)
	}
	return v, nil
}

// Describe converts a scene back into its serializable form
func Describe(s *Scene) *Description {
	seed := s.SamplingConfig.Seed
	d := &Description{
		Name: s.Name,
		Camera: CameraDescription{
			LookFrom:      vec3Slice(s.CameraConfig.LookFrom),
			LookAt:        vec3Slice(s.CameraConfig.LookAt),
			Up:            vec3Slice(s.CameraConfig.Up),
			VFov:          s.CameraConfig.VFov,
			Aperture:      s.CameraConfig.Aperture,
			FocusDistance: s.CameraConfig.FocusDistance,
		},
		Render: RenderDescription{
			Width:           s.SamplingConfig.Width,
			Height:          s.SamplingConfig.Height,
			SamplesPerPixel: s.SamplingConfig.SamplesPerPixel,
			MaxDepth:        s.SamplingConfig.MaxDepth,
			Workers:         s.SamplingConfig.NumWorkers,
			Seed:            &seed,
		},
		Background: &BackgroundDescription{
			Top:    vec3Slice(s.Background.Top),
			Bottom: vec3Slice(s.Background.Bottom),
		},
	}

	for _, sphere := range s.World.Spheres() {
		d.Spheres = append(d.Spheres, SphereDescription{
			Center:   vec3Slice(sphere.Center),
			Radius:   sphere.Radius,
			Material: describeMaterial(sphere.Material),
		})
	}
	return d
}

func describeMaterial(m *material.Material) MaterialDescription {
	desc := MaterialDescription{Type: m.Kind.String()}
	switch m.Kind {
	case material.KindLambertian:
		desc.Albedo = vec3Slice(m.Albedo)
	case material.KindMetal:
		desc.Albedo = vec3Slice(m.Albedo)
		desc.Fuzz = m.Fuzz
	case material.KindDielectric:
		desc.RefractiveIndex = m.RefractiveIndex
	}
	return desc
}

func vec3Slice(v core.Vec3) []float64 {
	return []float64{v.X, v.Y, v.Z}
}

