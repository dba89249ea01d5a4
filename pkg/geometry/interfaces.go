package geometry

import (
	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/material"
)

// Hittable is anything a ray can intersect
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}
