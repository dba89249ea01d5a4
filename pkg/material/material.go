package material

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
)

// ErrInvalidMaterial is returned when material coefficients are out of range
var ErrInvalidMaterial = errors.New("invalid material")

// Kind tags the scattering law of a Material
type Kind int

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

var kindNames = map[Kind]string{
	KindLambertian: "lambertian",
	KindMetal:      "metal",
	KindDielectric: "dielectric",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a material type name to its Kind
func ParseKind(name string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for kind, kindName := range kindNames {
		if kindName == normalized {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown material type %q", ErrInvalidMaterial, name)
}

// Material is a closed set of scattering laws. Only the fields used by
// Kind are meaningful: Albedo for Lambertian and Metal, Fuzz for Metal and
// RefractiveIndex for Dielectric.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3
	Fuzz            float64
	RefractiveIndex float64
}

// NewLambertian creates a perfectly diffuse material
func NewLambertian(albedo core.Vec3) *Material {
	return &Material{Kind: KindLambertian, Albedo: albedo}
}

// NewMetal creates a metal material; fuzz is clamped to [0, 1]
func NewMetal(albedo core.Vec3, fuzz float64) *Material {
	return &Material{Kind: KindMetal, Albedo: albedo, Fuzz: max(0, min(1, fuzz))}
}

// NewDielectric creates a clear dielectric such as glass (index 1.5)
func NewDielectric(refractiveIndex float64) *Material {
	return &Material{Kind: KindDielectric, RefractiveIndex: refractiveIndex}
}

// Validate checks the coefficients used by the material's kind
func (m *Material) Validate() error {
	switch m.Kind {
	case KindLambertian, KindMetal:
		if !validAlbedo(m.Albedo) {
			return fmt.Errorf("%w: %s albedo %v outside [0,1]", ErrInvalidMaterial, m.Kind, m.Albedo)
		}
		if m.Kind == KindMetal && (m.Fuzz < 0 || m.Fuzz > 1) {
			return fmt.Errorf("%w: metal fuzz %g outside [0,1]", ErrInvalidMaterial, m.Fuzz)
		}
	case KindDielectric:
		if !(m.RefractiveIndex > 0) || math.IsInf(m.RefractiveIndex, 0) {
			return fmt.Errorf("%w: refractive index %g must be positive", ErrInvalidMaterial, m.RefractiveIndex)
		}
	default:
		return fmt.Errorf("%w: unknown kind %s", ErrInvalidMaterial, m.Kind)
	}
	return nil
}

// Scatter decides whether the incoming ray continues from the hit point.
// It returns false when the ray is absorbed.
func (m *Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(hit, sampler)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, sampler)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, sampler)
	}
	panic(fmt.Sprintf("material: scatter on unknown kind %s", m.Kind))
}

func validAlbedo(c core.Vec3) bool {
	for _, v := range [3]float64{c.X, c.Y, c.Z} {
		if !(v >= 0 && v <= 1) {
			return false
		}
	}
	return true
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
