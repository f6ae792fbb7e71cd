package render

// TileScheduler decomposes the framebuffer into tiles and materializes one
// RenderTask per tile, visited in a square spiral starting at the grid's
// center cell. An interrupted render then shows a representative central
// preview rather than only a corner.
type TileScheduler struct {
	width           int
	height          int
	tileSize        int
	samplesPerPixel int
}

// NewTileScheduler creates a scheduler for a width×height framebuffer cut
// into tileSize×tileSize tiles
func NewTileScheduler(width, height, tileSize, samplesPerPixel int) *TileScheduler {
	return &TileScheduler{
		width:           width,
		height:          height,
		tileSize:        tileSize,
		samplesPerPixel: samplesPerPixel,
	}
}

// GridSize returns the tile grid dimensions
func (s *TileScheduler) GridSize() (tilesX, tilesY int) {
	tilesX = (s.width + s.tileSize - 1) / s.tileSize // Ceiling division
	tilesY = (s.height + s.tileSize - 1) / s.tileSize
	return tilesX, tilesY
}

// TotalTasks returns the number of tiles covering the framebuffer
func (s *TileScheduler) TotalTasks() int {
	tilesX, tilesY := s.GridSize()
	return tilesX * tilesY
}

// Spiral step directions, cycling N→W→S→E in tile coordinates.
var spiralDirs = [4][2]int{{0, -1}, {-1, 0}, {0, 1}, {1, 0}}

// Tasks builds all render tasks in spiral visitation order. Task ids are
// assigned in emission order starting from zero.
//
// The walk keeps a current cell, direction, run length and a run-length
// budget that grows by one every two direction changes (1,1,2,2,3,3,…).
// Cells outside the grid are stepped over without emitting. Termination is
// an explicit count of cells remaining, so coverage holds for any aspect
// ratio, not just near-square grids.
func (s *TileScheduler) Tasks() []*RenderTask {
	tilesX, tilesY := s.GridSize()
	remaining := tilesX * tilesY

	tasks := make([]*RenderTask, 0, remaining)

	// Start from the center of the grid instead of the top-left corner
	curX, curY := tilesX/2, tilesY/2
	dir := 0
	runLen := 0
	runBudget := 1

	for remaining > 0 {
		if curX >= 0 && curX < tilesX && curY >= 0 && curY < tilesY {
			originX := curX * s.tileSize
			originY := curY * s.tileSize
			tileW := min(s.tileSize, s.width-originX)
			tileH := min(s.tileSize, s.height-originY)
			tasks = append(tasks, newRenderTask(len(tasks), originX, originY, tileW, tileH, s.samplesPerPixel))
			remaining--
		}

		if runLen >= runBudget {
			dir = (dir + 1) % 4
			runLen = 0
			runBudget += 1 - dir%2
		}

		curX += spiralDirs[dir][0]
		curY += spiralDirs[dir][1]
		runLen++
	}

	return tasks
}

// Schedule pushes all tasks into the queue in spiral order and closes it,
// returning the number of tasks pushed.
func (s *TileScheduler) Schedule(queue *RenderTaskQueue) int {
	tasks := s.Tasks()
	for _, task := range tasks {
		queue.Push(task)
	}
	queue.CloseInput()
	return len(tasks)
}
