package sensor

import (
	"testing"

	"github.com/kferran/go-spiral-tracer/pkg/core"
	"github.com/kferran/go-spiral-tracer/pkg/shm"
)

func newSharedTestSensor(t *testing.T, key string) (*SharedMemorySensor, *shm.Region) {
	t.Helper()
	region, err := shm.Create(key, 96, 64, 32)
	if err != nil {
		t.Fatalf("create region: %v", err)
	}
	t.Cleanup(func() { region.Close() })
	return NewSharedMemorySensor(region, 96, 64, 32), region
}

func TestSharedMemorySensor_StorePixel(t *testing.T) {
	sensor, region := newSharedTestSensor(t, "TEST_SENSOR_STORE")
	sensor.PreProcess()

	// Pixel (40, 10) lives in tile 1 at tile-local (8, 10)
	sensor.StorePixel(40, 10, core.NewVec3(0.25, 0.5, 0.75))

	if sensor.StoredPixels() != 1 {
		t.Errorf("StoredPixels() = %d, want 1", sensor.StoredPixels())
	}

	r, g, b, a := region.PixelAt(1, 0, 10*32+8)
	if r != 0.25 || g != 0.5 || b != 0.75 || a != 1.0 {
		t.Errorf("Stored pixel = (%f %f %f %f), want (0.25 0.5 0.75 1)", r, g, b, a)
	}

	// The write goes to the in-progress buffer only
	if r, _, _, _ := region.PixelAt(1, 1, 10*32+8); r != 0 {
		t.Errorf("Finalized buffer written before FinishTile, r=%f", r)
	}
}

func TestSharedMemorySensor_FinishTile(t *testing.T) {
	sensor, region := newSharedTestSensor(t, "TEST_SENSOR_FINISH")
	sensor.PreProcess()

	sensor.StorePixel(40, 10, core.NewVec3(1, 2, 3))
	sensor.FinishTile(32, 0)

	if region.TileHeader(1) != 1 {
		t.Error("FinishTile should set the tile header")
	}
	if r, _, _, _ := region.PixelAt(1, 1, 10*32+8); r != 1 {
		t.Errorf("Finalized buffer should hold the stored pixel, r=%f", r)
	}
	if region.TileHeader(0) != 0 {
		t.Error("Other tile headers must stay clear")
	}
}

func TestSharedMemorySensor_Dimensions(t *testing.T) {
	sensor, _ := newSharedTestSensor(t, "TEST_SENSOR_DIMS")
	if sensor.Width() != 96 || sensor.Height() != 64 {
		t.Errorf("Sensor reports %dx%d, want 96x64", sensor.Width(), sensor.Height())
	}
	if err := sensor.PostProcess(); err != nil {
		t.Errorf("PostProcess should be a no-op, got %v", err)
	}
}

// Both sensors must satisfy the image sensor interface the worker pool
// writes through
var (
	_ core.ImageSensor = (*TargetSensor)(nil)
	_ core.ImageSensor = (*SharedMemorySensor)(nil)
)
