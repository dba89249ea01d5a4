package material

import (
	"github.com/df07/go-scanline-pathtracer/pkg/core"
)

// scatterLambertian scatters toward normal + random unit vector, which yields
// a cosine-weighted distribution about the normal
func (m *Material) scatterLambertian(hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(sampler))

	// The random vector can cancel the normal almost exactly
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: m.Albedo,
	}, true
}
