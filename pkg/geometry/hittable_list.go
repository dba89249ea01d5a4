package geometry

import (
	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/material"
)

// HittableList is an ordered collection of spheres queried for the nearest hit.
// The order is stable so ties resolve to the first sphere added.
type HittableList struct {
	spheres []*Sphere
}

// NewHittableList creates a list from the given spheres, keeping their order
func NewHittableList(spheres ...*Sphere) *HittableList {
	list := &HittableList{}
	list.spheres = append(list.spheres, spheres...)
	return list
}

// Add appends spheres to the end of the list
func (l *HittableList) Add(spheres ...*Sphere) {
	l.spheres = append(l.spheres, spheres...)
}

// Len returns the number of spheres
func (l *HittableList) Len() int {
	return len(l.spheres)
}

// Spheres returns the spheres in insertion order
func (l *HittableList) Spheres() []*Sphere {
	return l.spheres
}

// Hit returns the closest intersection within [tMin, tMax] over all spheres
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, sphere := range l.spheres {
		hit, isHit := sphere.Hit(ray, tMin, closestSoFar)
		// Equal t keeps the earlier sphere
		if isHit && (closestHit == nil || hit.T < closestSoFar) {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
