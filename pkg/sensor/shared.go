package sensor

import (
	"sync/atomic"

	"github.com/kferran/go-spiral-tracer/pkg/core"
	"github.com/kferran/go-spiral-tracer/pkg/shm"
)

// SharedMemorySensor writes float RGBA pixels straight into the session's
// shared-memory region, where a host process polls them while the render is
// still running. Pixel writes go to a tile's in-progress buffer; FinishTile
// copies it into the finalized buffer and flips the tile header, so a host
// keyed on headers never displays a torn tile.
type SharedMemorySensor struct {
	region   *shm.Region
	width    int
	height   int
	tileSize int
	stored   atomic.Int64
}

// NewSharedMemorySensor creates a sensor over the given region
func NewSharedMemorySensor(region *shm.Region, width, height, tileSize int) *SharedMemorySensor {
	return &SharedMemorySensor{
		region:   region,
		width:    width,
		height:   height,
		tileSize: tileSize,
	}
}

// Width returns the sensor width in pixels
func (s *SharedMemorySensor) Width() int { return s.width }

// Height returns the sensor height in pixels
func (s *SharedMemorySensor) Height() int { return s.height }

// PreProcess runs before the render starts; the region was zero-filled at
// creation.
func (s *SharedMemorySensor) PreProcess() {
	s.stored.Store(0)
}

// StorePixel writes one averaged pixel into its tile's in-progress buffer
func (s *SharedMemorySensor) StorePixel(x, y int, color core.Vec3) {
	tile := s.region.TileIndex(x, y)
	pixel := (y%s.tileSize)*s.tileSize + x%s.tileSize
	s.region.StorePixel(tile, 0, pixel,
		float32(color.X), float32(color.Y), float32(color.Z), 1.0)
	s.stored.Add(1)
}

// FinishTile finalizes the tile with the given pixel origin
func (s *SharedMemorySensor) FinishTile(originX, originY int) {
	s.region.FinalizeTile(s.region.TileIndex(originX, originY))
}

// StoredPixels returns how many pixel stores have been recorded
func (s *SharedMemorySensor) StoredPixels() int64 {
	return s.stored.Load()
}

// PostProcess is a no-op; the session sets the region's final flag after
// the pool joins.
func (s *SharedMemorySensor) PostProcess() error {
	return nil
}
