// Package integrator provides the by-name pluggable light transport
// algorithms. Importing it registers the "path" and "ao" integrators.
package integrator

import (
	"math"
	"strconv"

	"github.com/kferran/go-spiral-tracer/pkg/core"
)

func init() {
	core.RegisterIntegrator("path", func() core.Integrator { return NewPathTracer() })
	core.RegisterIntegrator("ao", func() core.Integrator { return NewAmbientOcclusion() })
}

// PathTracer is a unidirectional path tracer with emissive surface support
type PathTracer struct {
	maxDepth int
	camera   core.Camera
}

// NewPathTracer creates a path tracer with default settings
func NewPathTracer() *PathTracer {
	return &PathTracer{maxDepth: 16}
}

// Preprocess runs once before any worker starts; the path tracer has no
// setup work.
func (pt *PathTracer) Preprocess() {}

// SetupCamera binds the camera the session renders with
func (pt *PathTracer) SetupCamera(camera core.Camera) {
	pt.camera = camera
}

// SetProperty configures the integrator from a key/value pair. Unknown keys
// are ignored.
func (pt *PathTracer) SetProperty(name, value string) {
	switch name {
	case "depth":
		if depth, err := strconv.Atoi(value); err == nil && depth > 0 {
			pt.maxDepth = depth
		}
	}
}

// Li computes the radiance arriving along the given camera ray
func (pt *PathTracer) Li(ray core.Ray, scene core.Scene, sampler core.Sampler, arena core.Allocator) core.Vec3 {
	return pt.radiance(ray, scene, sampler, pt.maxDepth)
}

func (pt *PathTracer) radiance(ray core.Ray, scene core.Scene, sampler core.Sampler, depth int) core.Vec3 {
	// Ray bounce budget spent, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := scene.Hit(ray, 0.001, 1e4)
	if !isHit {
		return scene.Background(ray)
	}

	var emitted core.Vec3
	if emitter, ok := hit.Material.(core.Emitter); ok {
		emitted = emitter.Emitted()
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return emitted // Absorbed; only emission contributes
	}

	if scatter.IsSpecular() {
		incoming := pt.radiance(scatter.Scattered, scene, sampler, depth-1)
		return emitted.Add(scatter.Attenuation.MultiplyVec(incoming))
	}

	cosine := max(0, scatter.Scattered.Direction.Normalize().Dot(hit.Normal))
	if scatter.PDF <= 0 {
		return emitted
	}

	// Monte Carlo estimator: BRDF * incoming * cosθ / PDF, with the
	// lambertian BRDF albedo/π. Under cosine sampling this reduces to
	// albedo * incoming.
	incoming := pt.radiance(scatter.Scattered, scene, sampler, depth-1)
	brdf := scatter.Attenuation.Multiply(1.0 / math.Pi)
	return emitted.Add(brdf.Multiply(cosine / scatter.PDF).MultiplyVec(incoming))
}
