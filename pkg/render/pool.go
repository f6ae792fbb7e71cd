package render

import (
	"runtime"
	"sync"

	"github.com/kferran/go-spiral-tracer/pkg/core"
)

// WorkerPool manages the fixed set of threads that drain the render task
// queue. Workers are created once per render and joined once per render;
// there is no partial shutdown or worker replacement. A panicking worker is
// a fatal render failure.
type WorkerPool struct {
	queue           *RenderTaskQueue
	scene           core.Scene
	camera          core.Camera
	integrator      core.Integrator
	newSampler      func() core.Sampler
	sensor          core.ImageSensor
	tracker         *ProgressTracker
	samplesPerPixel int
	onTaskDone      func(*RenderTask) // Optional, dispatched from the finishing worker
	workers         []*Worker
	wg              sync.WaitGroup
}

// Worker repeatedly claims tasks and renders them with its own arena
type Worker struct {
	ID    int
	arena *MemoryArena
	pool  *WorkerPool
}

// PoolConfig wires a worker pool to its collaborators
type PoolConfig struct {
	NumWorkers      int // 0 means one worker per CPU
	ArenaSize       int // Bytes per worker arena
	SamplesPerPixel int
	Queue           *RenderTaskQueue
	Scene           core.Scene
	Camera          core.Camera
	Integrator      core.Integrator
	NewSampler      func() core.Sampler
	Sensor          core.ImageSensor
	Tracker         *ProgressTracker
	OnTaskDone      func(*RenderTask)
}

// NewWorkerPool creates a pool with cfg.NumWorkers workers, reserving one
// memory arena per worker before any thread starts.
func NewWorkerPool(cfg PoolConfig) *WorkerPool {
	numWorkers := cfg.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		queue:           cfg.Queue,
		scene:           cfg.Scene,
		camera:          cfg.Camera,
		integrator:      cfg.Integrator,
		newSampler:      cfg.NewSampler,
		sensor:          cfg.Sensor,
		tracker:         cfg.Tracker,
		samplesPerPixel: cfg.SamplesPerPixel,
		onTaskDone:      cfg.OnTaskDone,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:    i,
			arena: NewMemoryArena(cfg.ArenaSize),
			pool:  wp,
		})
	}

	return wp
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return len(wp.workers)
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Wait blocks until every worker has drained the queue and exited
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// run is the main worker loop: pop a task, render it, mark it done.
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		task, ok := w.pool.queue.Pop()
		if !ok {
			return
		}
		w.renderTask(task)
	}
}

// renderTask renders every pixel of the tile. Each sample goes
// Sampler → Camera ray → Integrator radiance, accumulated into the task's
// sample buffer and then stored on the sensor. Tile bounds never overlap, so
// no other worker writes these pixels.
func (w *Worker) renderTask(task *RenderTask) {
	pool := w.pool

	// Per-task sampler seeded from the task id, so the image is identical
	// regardless of worker count or tile completion order.
	sampler := pool.newSampler()
	sampler.Reset(task.Seed)

	// The count is already rounded; this tells the sampler its per-pixel
	// stratum budget.
	spp := sampler.RoundSize(len(task.Samples))

	for y := 0; y < task.Height; y++ {
		py := task.OriginY + y
		for x := 0; x < task.Width; x++ {
			px := task.OriginX + x

			var accum core.Vec3
			for s := 0; s < spp; s++ {
				jitter := sampler.Get2D()
				sx := float64(px) + jitter.X
				sy := float64(py) + jitter.Y

				ray := pool.camera.GenerateRay(sx, sy)
				radiance := pool.integrator.Li(ray, pool.scene, sampler, w.arena)

				task.Samples[s] = PixelSample{X: sx, Y: sy, Radiance: radiance}
				accum = accum.Add(radiance)
			}

			pool.sensor.StorePixel(px, py, accum.Multiply(1.0/float64(spp)))
		}
	}

	w.arena.Reset()
	pool.sensor.FinishTile(task.OriginX, task.OriginY)
	pool.tracker.Done(task.ID)

	if pool.onTaskDone != nil {
		pool.onTaskDone(task)
	}
}
