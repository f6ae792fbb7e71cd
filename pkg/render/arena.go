package render

import (
	"fmt"
	"unsafe"
)

// DefaultArenaSize is the pre-reserved capacity of one worker arena.
const DefaultArenaSize = 64 << 20 // 64 MiB

// MemoryArena is a fixed-capacity bump allocator handed to exactly one
// worker. All transient allocations made while rendering that worker's tiles
// come out of the arena, so the hot path never touches the shared heap.
// Arenas are never locked, never resized, and reset between tasks.
type MemoryArena struct {
	buf    []byte
	offset int
}

// NewMemoryArena reserves an arena of the given capacity in bytes
func NewMemoryArena(capacity int) *MemoryArena {
	if capacity <= 0 {
		capacity = DefaultArenaSize
	}
	return &MemoryArena{buf: make([]byte, capacity)}
}

// alloc carves n bytes aligned to align out of the arena. Exhaustion is
// fatal: callers are expected to size the arena generously relative to
// worst-case per-task scratch.
func (a *MemoryArena) alloc(n, align int) []byte {
	offset := (a.offset + align - 1) &^ (align - 1)
	if offset+n > len(a.buf) {
		panic(fmt.Sprintf("memory arena exhausted: need %d bytes, %d of %d used", n, a.offset, len(a.buf)))
	}
	a.offset = offset + n
	b := a.buf[offset : offset+n : offset+n]
	clear(b) // the region may hold data from a previous task
	return b
}

// AllocBytes returns an n-byte zeroed scratch slice valid until Reset
func (a *MemoryArena) AllocBytes(n int) []byte {
	if n == 0 {
		return nil
	}
	return a.alloc(n, 1)
}

// AllocFloats returns an n-element zeroed float64 scratch slice valid until
// Reset
func (a *MemoryArena) AllocFloats(n int) []float64 {
	if n == 0 {
		return nil
	}
	b := a.alloc(n*8, 8)
	return unsafe.Slice((*float64)(unsafe.Pointer(&b[0])), n)
}

// Used returns the number of bytes currently allocated
func (a *MemoryArena) Used() int {
	return a.offset
}

// Capacity returns the fixed arena capacity in bytes
func (a *MemoryArena) Capacity() int {
	return len(a.buf)
}

// Reset discards all allocations. Called by the worker between tasks; any
// slice handed out earlier must no longer be referenced.
func (a *MemoryArena) Reset() {
	a.offset = 0
}
