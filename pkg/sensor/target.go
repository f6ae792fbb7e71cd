// Package sensor provides the ImageSensor implementations: a file-backed
// render target and a shared-memory sensor a host process reads.
package sensor

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/image/tiff"

	"github.com/kferran/go-spiral-tracer/pkg/core"
)

// TargetSensor accumulates pixels into a float framebuffer and encodes it
// to a file at PostProcess. Workers write disjoint tiles, so the pixel
// stores need no locking; the total-store aggregate is atomic.
type TargetSensor struct {
	width    int
	height   int
	pixels   []core.Vec3
	stored   atomic.Int64
	filename string // Empty keeps the image in memory only
	logger   core.Logger
}

// NewTargetSensor creates a file render target. The extension of filename
// picks the encoder: .png or .tif/.tiff.
func NewTargetSensor(width, height int, filename string, logger core.Logger) *TargetSensor {
	return &TargetSensor{
		width:    width,
		height:   height,
		pixels:   make([]core.Vec3, width*height),
		filename: filename,
		logger:   logger,
	}
}

// Width returns the sensor width in pixels
func (t *TargetSensor) Width() int { return t.width }

// Height returns the sensor height in pixels
func (t *TargetSensor) Height() int { return t.height }

// PreProcess clears the framebuffer before the render starts
func (t *TargetSensor) PreProcess() {
	clear(t.pixels)
	t.stored.Store(0)
}

// StorePixel records the averaged color for one pixel
func (t *TargetSensor) StorePixel(x, y int, color core.Vec3) {
	t.pixels[y*t.width+x] = color
	t.stored.Add(1)
}

// FinishTile is a no-op for the file target
func (t *TargetSensor) FinishTile(originX, originY int) {}

// StoredPixels returns how many pixel stores have been recorded
func (t *TargetSensor) StoredPixels() int64 {
	return t.stored.Load()
}

// Pixels exposes the accumulated framebuffer
func (t *TargetSensor) Pixels() []core.Vec3 {
	return t.pixels
}

// vec3ToColor converts a color vector to RGBA with gamma correction and
// clamping
func vec3ToColor(v core.Vec3) color.RGBA {
	v = v.GammaCorrect(2.0).Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * v.X),
		G: uint8(255 * v.Y),
		B: uint8(255 * v.Z),
		A: 255,
	}
}

// Image converts the framebuffer to an RGBA image
func (t *TargetSensor) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			img.SetRGBA(x, y, vec3ToColor(t.pixels[y*t.width+x]))
		}
	}
	return img
}

// TileImage extracts the tile with the given pixel origin and size as its
// own image
func (t *TargetSensor) TileImage(originX, originY, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, vec3ToColor(t.pixels[(originY+y)*t.width+originX+x]))
		}
	}
	return img
}

// PostProcess encodes the framebuffer to the configured file
func (t *TargetSensor) PostProcess() error {
	if t.filename == "" {
		return nil
	}

	if dir := filepath.Dir(t.filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(t.filename)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	img := t.Image()
	switch strings.ToLower(filepath.Ext(t.filename)) {
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("encode image: %w", err)
	}

	if t.logger != nil {
		t.logger.Printf("Image saved to: %s\n", t.filename)
	}
	return nil
}
