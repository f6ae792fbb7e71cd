// Package shm implements the shared-memory channel a host process polls for
// in-progress tiles, overall progress and the final-image flag. The layout
// is raw bytes at fixed offsets; host and renderer agree on it purely
// through the size formula and the image dimensions exchanged out-of-band.
//
// The channel is intentionally weakly consistent: the renderer writes with
// no fences and the host may observe torn pixel data for tiles still in
// flight. Each tile's header byte is set only after its pixels are complete,
// so a host that skips tiles with a zero header never shows a torn tile.
package shm

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Fixed layout constants. Every tile slot is sized for a full
// tileSize×tileSize tile even at clipped image borders.
const (
	Channels        = 4 // RGBA
	Buffers         = 2 // In-progress and finalized pixel copies
	BytesPerChannel = 4 // 32-bit float
)

// TileCount returns the number of tile slots for a width×height image cut
// into tileSize tiles
func TileCount(width, height, tileSize int) int {
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize
	return tilesX * tilesY
}

// RegionSize returns the total byte size of the region:
// tile headers (1 byte each), pixel payload (two float RGBA buffers per
// tile), one progress byte and one final-flag byte.
func RegionSize(width, height, tileSize int) int {
	tileCount := TileCount(width, height, tileSize)
	return tileCount*tileSize*tileSize*Channels*Buffers*BytesPerChannel + // pixel payload
		tileCount + // tile headers
		2 // progress byte and final-flag byte
}

// Region is a mapped shared-memory segment. It is created once per render
// session, zero-filled, and written by the renderer while an external host
// reads it with no handshake.
type Region struct {
	data     []byte
	tilesX   int
	tilesY   int
	tileSize int
	unmap    func() error
}

// Create maps (or creates) the named segment sized for the given image
// dimensions and tile size, zero-filling it. The channel is created even
// when no host is attached; the region is simply inert then.
func Create(key string, width, height, tileSize int) (*Region, error) {
	size := RegionSize(width, height, tileSize)
	data, unmap, err := mapSegment(key, size)
	if err != nil {
		return nil, fmt.Errorf("map segment %q: %w", key, err)
	}
	clear(data) // a reused segment may hold a previous session's bytes

	return &Region{
		data:     data,
		tilesX:   (width + tileSize - 1) / tileSize,
		tilesY:   (height + tileSize - 1) / tileSize,
		tileSize: tileSize,
		unmap:    unmap,
	}, nil
}

// Size returns the total region size in bytes
func (r *Region) Size() int {
	return len(r.data)
}

// TileCount returns the number of tile slots
func (r *Region) TileCount() int {
	return r.tilesX * r.tilesY
}

// Bytes exposes the raw region, as the host sees it
func (r *Region) Bytes() []byte {
	return r.data
}

// TileIndex returns the slot index for the tile containing pixel (x, y)
func (r *Region) TileIndex(x, y int) int {
	return (y/r.tileSize)*r.tilesX + x/r.tileSize
}

// tileStride is the byte size of one tile's pixel payload (both buffers)
func (r *Region) tileStride() int {
	return r.tileSize * r.tileSize * Channels * Buffers * BytesPerChannel
}

// bufferStride is the byte size of one tile buffer
func (r *Region) bufferStride() int {
	return r.tileSize * r.tileSize * Channels * BytesPerChannel
}

// pixelOffset returns the byte offset of a pixel within a tile buffer.
// pixel is the row-major index within the tile.
func (r *Region) pixelOffset(tile, buffer, pixel int) int {
	return r.TileCount() + // headers come first
		tile*r.tileStride() +
		buffer*r.bufferStride() +
		pixel*Channels*BytesPerChannel
}

// StorePixel writes one float RGBA pixel into a tile buffer
func (r *Region) StorePixel(tile, buffer, pixel int, red, green, blue, alpha float32) {
	off := r.pixelOffset(tile, buffer, pixel)
	binary.LittleEndian.PutUint32(r.data[off:], math.Float32bits(red))
	binary.LittleEndian.PutUint32(r.data[off+4:], math.Float32bits(green))
	binary.LittleEndian.PutUint32(r.data[off+8:], math.Float32bits(blue))
	binary.LittleEndian.PutUint32(r.data[off+12:], math.Float32bits(alpha))
}

// PixelAt reads one float RGBA pixel back from a tile buffer
func (r *Region) PixelAt(tile, buffer, pixel int) (red, green, blue, alpha float32) {
	off := r.pixelOffset(tile, buffer, pixel)
	red = math.Float32frombits(binary.LittleEndian.Uint32(r.data[off:]))
	green = math.Float32frombits(binary.LittleEndian.Uint32(r.data[off+4:]))
	blue = math.Float32frombits(binary.LittleEndian.Uint32(r.data[off+8:]))
	alpha = math.Float32frombits(binary.LittleEndian.Uint32(r.data[off+12:]))
	return red, green, blue, alpha
}

// FinalizeTile copies a tile's in-progress buffer into its finalized buffer
// and sets the tile header. Header last, so a host keyed on the header never
// reads a half-copied finalized buffer.
func (r *Region) FinalizeTile(tile int) {
	src := r.pixelOffset(tile, 0, 0)
	dst := r.pixelOffset(tile, 1, 0)
	copy(r.data[dst:dst+r.bufferStride()], r.data[src:src+r.bufferStride()])
	r.data[tile] = 1
}

// TileHeader returns the header byte of a tile slot
func (r *Region) TileHeader(tile int) byte {
	return r.data[tile]
}

// WriteProgress stores the progress percentage in the region's
// second-to-last byte, where the host polls it
func (r *Region) WriteProgress(percent int) {
	r.data[len(r.data)-2] = byte(percent)
}

// Progress returns the published progress percentage
func (r *Region) Progress() int {
	return int(r.data[len(r.data)-2])
}

// SetFinal sets the completion flag the host polls to distinguish a final
// image from an in-progress preview
func (r *Region) SetFinal() {
	r.data[len(r.data)-1] = 1
}

// Final reports whether the completion flag is set
func (r *Region) Final() bool {
	return r.data[len(r.data)-1] != 0
}

// Close unmaps the region. The backing segment is left in place for the
// host; it is torn down with the process.
func (r *Region) Close() error {
	if r.unmap == nil {
		return nil
	}
	unmap := r.unmap
	r.unmap = nil
	r.data = nil
	return unmap()
}
