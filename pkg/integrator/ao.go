package integrator

import (
	"strconv"

	"github.com/kferran/go-spiral-tracer/pkg/core"
)

// AmbientOcclusion shades by hemisphere visibility: surfaces with nearby
// occluders darken. Cheap and useful for previewing scene geometry.
type AmbientOcclusion struct {
	samples  int     // Occlusion rays per shading point
	distance float64 // Maximum occlusion distance
	camera   core.Camera
}

// NewAmbientOcclusion creates an ambient occlusion integrator with default
// settings
func NewAmbientOcclusion() *AmbientOcclusion {
	return &AmbientOcclusion{samples: 8, distance: 4.0}
}

// Preprocess runs once before any worker starts
func (ao *AmbientOcclusion) Preprocess() {}

// SetupCamera binds the camera the session renders with
func (ao *AmbientOcclusion) SetupCamera(camera core.Camera) {
	ao.camera = camera
}

// SetProperty configures the integrator from a key/value pair. Unknown keys
// are ignored.
func (ao *AmbientOcclusion) SetProperty(name, value string) {
	switch name {
	case "samples":
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			ao.samples = n
		}
	case "distance":
		if d, err := strconv.ParseFloat(value, 64); err == nil && d > 0 {
			ao.distance = d
		}
	}
}

// Li estimates hemisphere visibility at the first hit point. The occlusion
// weights live in the worker's arena: per-sample scratch on the hottest
// path never touches the shared heap.
func (ao *AmbientOcclusion) Li(ray core.Ray, scene core.Scene, sampler core.Sampler, arena core.Allocator) core.Vec3 {
	hit, isHit := scene.Hit(ray, 0.001, 1e4)
	if !isHit {
		return scene.Background(ray)
	}

	weights := arena.AllocFloats(ao.samples)
	for i := 0; i < ao.samples; i++ {
		direction := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())
		occlusion := core.NewRay(hit.Point, direction)
		if _, occluded := scene.Hit(occlusion, 0.001, ao.distance); !occluded {
			weights[i] = 1
		}
	}

	visible := 0.0
	for _, w := range weights {
		visible += w
	}
	v := visible / float64(ao.samples)
	return core.NewVec3(v, v, v)
}
