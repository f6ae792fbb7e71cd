// Package material provides the minimal material set the reference scenes
// use: diffuse, specular and emissive surfaces.
package material

import (
	"math"

	"github.com/kferran/go-spiral-tracer/pkg/core"
)

// Lambertian is an ideal diffuse material
type Lambertian struct {
	Albedo core.Vec3
}

// NewLambertian creates a diffuse material with the given albedo
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter samples a cosine-weighted direction around the surface normal
func (l *Lambertian) Scatter(ray core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	direction := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())
	cosine := math.Max(0, direction.Dot(hit.Normal))

	return core.ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: l.Albedo,
		PDF:         cosine / math.Pi,
	}, true
}

// Metal is a specular reflector with optional fuzz
type Metal struct {
	Albedo core.Vec3
	Fuzz   float64
}

// NewMetal creates a specular material with the given albedo and fuzziness
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	return &Metal{Albedo: albedo, Fuzz: min(fuzz, 1.0)}
}

// Scatter reflects the incoming ray about the normal, perturbed by fuzz
func (m *Metal) Scatter(ray core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	reflected := core.Reflect(ray.Direction.Normalize(), hit.Normal)
	if m.Fuzz > 0 {
		fuzz := core.SampleOnUnitSphere(sampler.Get2D()).Multiply(m.Fuzz)
		reflected = reflected.Add(fuzz)
	}
	if reflected.Dot(hit.Normal) <= 0 {
		return core.ScatterResult{}, false // Absorbed into the surface
	}

	return core.ScatterResult{
		Scattered:   core.NewRay(hit.Point, reflected),
		Attenuation: m.Albedo,
		PDF:         0, // Specular
	}, true
}

// Emissive is a light-emitting material; it never scatters
type Emissive struct {
	Emission core.Vec3
}

// NewEmissive creates a material emitting the given radiance
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

// Scatter absorbs the ray; emissive surfaces only emit
func (e *Emissive) Scatter(ray core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// Emitted returns the material's radiance
func (e *Emissive) Emitted() core.Vec3 {
	return e.Emission
}
