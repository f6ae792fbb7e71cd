package render

import (
	"testing"
)

// TestSchedulerTotalTasks verifies the tile count formula for a mix of
// even, ragged and degenerate framebuffer sizes
func TestSchedulerTotalTasks(t *testing.T) {
	tests := []struct {
		name            string
		width, height   int
		tileSize        int
		expectedTasks   int
		expectedX, expY int
	}{
		{"exact fit", 128, 128, 64, 4, 2, 2},
		{"ragged edges", 100, 70, 64, 4, 2, 2},
		{"full hd", 1920, 1080, 64, 510, 30, 17},
		{"single tile", 32, 32, 64, 1, 1, 1},
		{"one pixel", 1, 1, 64, 1, 1, 1},
		{"tall strip", 64, 640, 64, 10, 1, 10},
		{"wide strip", 640, 64, 64, 10, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewTileScheduler(tt.width, tt.height, tt.tileSize, 4)
			if got := s.TotalTasks(); got != tt.expectedTasks {
				t.Errorf("TotalTasks() = %d, want %d", got, tt.expectedTasks)
			}
			tilesX, tilesY := s.GridSize()
			if tilesX != tt.expectedX || tilesY != tt.expY {
				t.Errorf("GridSize() = (%d, %d), want (%d, %d)", tilesX, tilesY, tt.expectedX, tt.expY)
			}
			if got := len(s.Tasks()); got != tt.expectedTasks {
				t.Errorf("len(Tasks()) = %d, want %d", got, tt.expectedTasks)
			}
		})
	}
}

// TestSchedulerCoversGrid checks that the emitted tile origins are exactly
// the bounding grid: no duplicates, no omissions, for square and highly
// rectangular aspect ratios alike.
func TestSchedulerCoversGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
	}{
		{"square", 256, 256, 64},
		{"ragged", 250, 130, 64},
		{"panoramic", 1024, 64, 64},
		{"column", 64, 1024, 64},
		{"single row of many", 2048, 32, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewTileScheduler(tt.width, tt.height, tt.tileSize, 1)
			tasks := s.Tasks()

			seen := make(map[[2]int]bool)
			for _, task := range tasks {
				origin := [2]int{task.OriginX, task.OriginY}
				if seen[origin] {
					t.Errorf("tile origin %v emitted twice", origin)
				}
				seen[origin] = true

				if task.OriginX%tt.tileSize != 0 || task.OriginY%tt.tileSize != 0 {
					t.Errorf("tile origin %v not on the tile grid", origin)
				}
			}

			tilesX, tilesY := s.GridSize()
			for ty := 0; ty < tilesY; ty++ {
				for tx := 0; tx < tilesX; tx++ {
					origin := [2]int{tx * tt.tileSize, ty * tt.tileSize}
					if !seen[origin] {
						t.Errorf("tile origin %v never emitted", origin)
					}
				}
			}
		})
	}
}

// TestSchedulerTileClipping verifies border tiles are clipped to
// min(tileSize, dimension-origin) and never zero-sized
func TestSchedulerTileClipping(t *testing.T) {
	s := NewTileScheduler(100, 70, 64, 1)
	for _, task := range s.Tasks() {
		wantW := min(64, 100-task.OriginX)
		wantH := min(64, 70-task.OriginY)
		if task.Width != wantW || task.Height != wantH {
			t.Errorf("tile at (%d,%d): size (%d,%d), want (%d,%d)",
				task.OriginX, task.OriginY, task.Width, task.Height, wantW, wantH)
		}
		if task.Width <= 0 || task.Height <= 0 {
			t.Errorf("tile at (%d,%d) has non-positive size", task.OriginX, task.OriginY)
		}
	}
}

// TestSchedulerSpiralOrder pins the exact center-outward visitation
// sequence for a 3×3 grid: center first, then the ring in rotational order.
func TestSchedulerSpiralOrder(t *testing.T) {
	s := NewTileScheduler(3, 3, 1, 1)

	want := [][2]int{
		{1, 1}, {1, 0}, {0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}, {2, 1}, {2, 0},
	}

	tasks := s.Tasks()
	if len(tasks) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(want))
	}
	for i, task := range tasks {
		if task.OriginX != want[i][0] || task.OriginY != want[i][1] {
			t.Errorf("task %d visited (%d,%d), want (%d,%d)",
				i, task.OriginX, task.OriginY, want[i][0], want[i][1])
		}
		if task.ID != i {
			t.Errorf("task %d has id %d, ids must be assigned in emission order", i, task.ID)
		}
	}
}

// TestSchedulerTaskIDs verifies ids are a gapless 0..n-1 sequence and seeds
// are distinct per task
func TestSchedulerTaskIDs(t *testing.T) {
	s := NewTileScheduler(640, 480, 64, 8)
	tasks := s.Tasks()

	seeds := make(map[int64]bool)
	for i, task := range tasks {
		if task.ID != i {
			t.Errorf("task at position %d has id %d", i, task.ID)
		}
		if seeds[task.Seed] {
			t.Errorf("seed %d reused", task.Seed)
		}
		seeds[task.Seed] = true
		if len(task.Samples) != 8 {
			t.Errorf("task %d has %d pixel samples, want 8", i, len(task.Samples))
		}
	}
}

// TestSchedulerQueueLength verifies the documented full-HD scenario: all
// 510 tasks queued before any pop
func TestSchedulerQueueLength(t *testing.T) {
	s := NewTileScheduler(1920, 1080, 64, 1)
	queue := NewRenderTaskQueue(s.TotalTasks())

	pushed := s.Schedule(queue)
	if pushed != 510 {
		t.Errorf("Schedule() pushed %d tasks, want 510", pushed)
	}
	if queue.Len() != 510 {
		t.Errorf("queue length = %d before any pop, want 510", queue.Len())
	}
}
