package core

// Logger interface for renderer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// HitRecord describes a ray/shape intersection
type HitRecord struct {
	T        float64 // Ray parameter at the hit point
	Point    Vec3    // World-space hit position
	Normal   Vec3    // Surface normal at the hit point
	Material Material
}

// Shape is anything a ray can intersect
type Shape interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}

// Material determines how light scatters at a surface
type Material interface {
	// Scatter returns the scattered ray, attenuation and whether the ray
	// continues at all. The sampler supplies the random decisions.
	Scatter(ray Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)
}

// Emitter is implemented by materials that emit light
type Emitter interface {
	Emitted() Vec3
}

// ScatterResult contains the outcome of a material scatter event
type ScatterResult struct {
	Scattered   Ray
	Attenuation Vec3
	PDF         float64 // Zero for specular scattering
}

// IsSpecular reports whether the scatter event was specular (delta PDF)
func (s ScatterResult) IsSpecular() bool {
	return s.PDF == 0
}

// Scene answers ray queries. Preprocess runs single-threaded before any
// render task is scheduled; afterwards the scene is shared read-only by all
// workers.
type Scene interface {
	Preprocess() error
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	Background(ray Ray) Vec3
}

// Camera generates primary rays for continuous image-plane coordinates.
// Coordinates are in pixels; sub-pixel jitter is already applied by the
// caller.
type Camera interface {
	GenerateRay(x, y float64) Ray
}

// Sampler generates sample positions for rendering. Implementations are
// registered by name and created fresh per render task; Reset reseeds the
// sequence so a task's samples depend only on its seed.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	// RoundSize adjusts a requested per-pixel sample count to the nearest
	// value the sampler supports.
	RoundSize(size int) int
	Reset(seed int64)
}

// Allocator hands out transient scratch memory valid for one render task.
type Allocator interface {
	AllocBytes(n int) []byte
	AllocFloats(n int) []float64
}

// Integrator computes radiance for a single camera sample. Implementations
// are registered by name and configured through SetProperty before
// Preprocess runs.
type Integrator interface {
	Preprocess()
	SetupCamera(camera Camera)
	SetProperty(name, value string)
	Li(ray Ray, scene Scene, sampler Sampler, arena Allocator) Vec3
}

// ImageSensor accumulates per-pixel results and persists them. StorePixel
// calls from different workers always target disjoint tiles, so no pixel is
// written by two workers.
type ImageSensor interface {
	Width() int
	Height() int
	PreProcess()
	StorePixel(x, y int, color Vec3)
	// FinishTile marks the tile with the given pixel origin as complete.
	FinishTile(originX, originY int)
	PostProcess() error
}
