//go:build unix

package shm

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// segmentPath resolves a segment key to a file path. /dev/shm gives a
// tmpfs-backed POSIX shared-memory object on Linux; elsewhere a mapped file
// in the temp directory behaves the same for a local host process.
func segmentPath(key string) string {
	if info, err := os.Stat("/dev/shm"); err == nil && info.IsDir() {
		return filepath.Join("/dev/shm", key)
	}
	return filepath.Join(os.TempDir(), key)
}

// mapSegment creates (or reopens) the named segment and memory-maps it
// shared, so a host process mapping the same name sees the renderer's
// writes.
func mapSegment(key string, size int) ([]byte, func() error, error) {
	path := segmentPath(key)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	if err := f.Truncate(int64(size)); err != nil {
		return nil, nil, err
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}

	return data, func() error { return unix.Munmap(data) }, nil
}
