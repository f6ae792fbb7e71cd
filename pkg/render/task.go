package render

import "github.com/kferran/go-spiral-tracer/pkg/core"

// PixelSample holds one sample's accumulated radiance for one pixel. The
// buffer of these owned by a RenderTask is reused pixel by pixel as the
// worker walks the tile.
type PixelSample struct {
	X, Y     float64 // Image-plane coordinate the sample was taken at
	Radiance core.Vec3
}

// RenderTask describes one tile of the framebuffer plus the per-pixel sample
// buffer it must fill. Tasks are immutable once built (only the sample
// buffer contents change), consumed exactly once by one worker, then
// discarded.
type RenderTask struct {
	ID               int // Assigned at enqueue time, monotonically increasing
	OriginX, OriginY int // Tile origin in pixels
	Width, Height    int // Tile size, clipped at image borders
	Samples          []PixelSample
	Seed             int64 // Deterministic sampler seed derived from the ID
}

// newRenderTask builds a task for the tile at the given pixel origin
func newRenderTask(id, originX, originY, width, height, samplesPerPixel int) *RenderTask {
	return &RenderTask{
		ID:      id,
		OriginX: originX,
		OriginY: originY,
		Width:   width,
		Height:  height,
		Samples: make([]PixelSample, samplesPerPixel),
		Seed:    int64(id) + 42, // +42 to avoid seed 0
	}
}
