package render

import "time"

// RenderStats summarizes a completed render
type RenderStats struct {
	TotalTasks      int           // Number of tiles scheduled
	CompletedTasks  int           // Number of tiles completed
	TotalSamples    int64         // Samples taken across the whole image
	SamplesPerPixel int           // Fixed per-pixel sample count after rounding
	NumWorkers      int           // Worker threads used
	PreprocessTime  time.Duration // Single-threaded pre-process phase
	RenderTime      time.Duration // Parallel render phase
}
