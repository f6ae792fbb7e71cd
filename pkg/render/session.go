package render

import (
	"fmt"
	"os"
	"time"

	"github.com/kferran/go-spiral-tracer/pkg/core"
	"github.com/kferran/go-spiral-tracer/pkg/shm"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// DefaultSharedMemoryKey names the shared-memory segment a host process
// maps. Host and renderer agree on the layout purely through the size
// formula and the image dimensions exchanged out-of-band.
const DefaultSharedMemoryKey = "SPIRALTRACER_SHAREMEM"

// Config is the immutable configuration for one render session
type Config struct {
	Width           int
	Height          int
	TileSize        int
	SamplesPerPixel int // Requested; the sampler's RoundSize has final say
	NumWorkers      int // 0 means one worker per CPU
	ArenaSize       int // Bytes per worker arena, 0 means DefaultArenaSize
	Integrator      string
	IntegratorProps map[string]string
	Sampler         string
	HostControlled  bool // Publish progress to shared memory instead of the console
	SharedMemoryKey string
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           1920,
		Height:          1080,
		TileSize:        64,
		SamplesPerPixel: 16,
		NumWorkers:      1,
		ArenaSize:       DefaultArenaSize,
		Integrator:      "path",
		Sampler:         "stratified",
		SharedMemoryKey: DefaultSharedMemoryKey,
	}
}

// Collaborators are the pluggable components a session renders with. Region
// may be nil, in which case the session creates one; the channel exists even
// with no host attached and is simply inert then.
type Collaborators struct {
	Scene      core.Scene
	Camera     core.Camera
	Sensor     core.ImageSensor
	Region     *shm.Region
	Logger     core.Logger
	OnTaskDone func(*RenderTask) // Optional, called from the finishing worker
}

// Session owns everything one render needs: the task queue, the worker
// arenas, the done table and the shared-memory handle. It is constructed
// once per render and holds no process-wide state.
type Session struct {
	config     Config
	scene      core.Scene
	camera     core.Camera
	sensor     core.ImageSensor
	region     *shm.Region
	logger     core.Logger
	onTaskDone func(*RenderTask)

	integrator      core.Integrator
	newSampler      func() core.Sampler
	samplesPerPixel int

	tracker *ProgressTracker

	preprocessTime time.Duration
	renderTime     time.Duration
}

// NewSession resolves the configured plugins and reserves the session's
// resources. An unknown integrator or sampler name is logged as a warning
// and returned as an error; nothing is retried.
func NewSession(config Config, deps Collaborators) (*Session, error) {
	logger := deps.Logger
	if logger == nil {
		logger = NewDefaultLogger()
	}
	if config.TileSize <= 0 {
		config.TileSize = 64
	}
	if config.SharedMemoryKey == "" {
		config.SharedMemoryKey = DefaultSharedMemoryKey
	}

	integrator, err := core.NewIntegrator(config.Integrator)
	if err != nil {
		logger.Printf("Warning: no integrator with name of %s\n", config.Integrator)
		return nil, err
	}
	for name, value := range config.IntegratorProps {
		integrator.SetProperty(name, value)
	}

	newSampler, err := core.SamplerConstructor(config.Sampler)
	if err != nil {
		logger.Printf("Warning: no sampler with name of %s\n", config.Sampler)
		return nil, err
	}

	// The sampler rounds the requested per-pixel count to a value it
	// supports; the result is fixed for the whole render.
	round := config.SamplesPerPixel
	if round < 1 {
		round = 1
	}
	if round > 1024 {
		round = 1024
	}
	samplesPerPixel := newSampler().RoundSize(round)

	region := deps.Region
	if region == nil {
		region, err = shm.Create(config.SharedMemoryKey, config.Width, config.Height, config.TileSize)
		if err != nil {
			return nil, fmt.Errorf("create shared memory region: %w", err)
		}
	}

	return &Session{
		config:          config,
		scene:           deps.Scene,
		camera:          deps.Camera,
		sensor:          deps.Sensor,
		region:          region,
		logger:          logger,
		onTaskDone:      deps.OnTaskDone,
		integrator:      integrator,
		newSampler:      newSampler,
		samplesPerPixel: samplesPerPixel,
	}, nil
}

// SamplesPerPixel returns the per-pixel sample count after sampler rounding
func (s *Session) SamplesPerPixel() int {
	return s.samplesPerPixel
}

// Region returns the session's shared-memory region
func (s *Session) Region() *shm.Region {
	return s.region
}

// preProcess validates prerequisites and runs the single-threaded scene
// pre-process phase. A missing sensor or camera skips the render with a
// single warning line.
func (s *Session) preProcess() (ok bool, err error) {
	if s.sensor == nil {
		s.logger.Printf("Warning: there is no render target in the session, can't render anything.\n")
		return false, nil
	}
	if s.camera == nil {
		s.logger.Printf("Warning: there is no camera attached in the session, can't render anything.\n")
		return false, nil
	}

	start := time.Now()
	if err := s.scene.Preprocess(); err != nil {
		return false, fmt.Errorf("scene preprocess: %w", err)
	}
	s.preprocessTime = time.Since(start)
	s.logger.Printf("Time spent on preprocessing is %v.\n", s.preprocessTime)
	return true, nil
}

// Render runs the session to completion: schedule all tiles in spiral
// order, drain them with the worker pool, publish final progress and
// finalize the sensor. Once started a render runs to completion; there is
// no mid-render abort path.
func (s *Session) Render() (RenderStats, error) {
	ok, err := s.preProcess()
	if err != nil || !ok {
		return RenderStats{}, err
	}

	start := time.Now()

	scheduler := NewTileScheduler(s.config.Width, s.config.Height, s.config.TileSize, s.samplesPerPixel)
	totalTasks := scheduler.TotalTasks()

	queue := NewRenderTaskQueue(totalTasks)
	scheduler.Schedule(queue)

	var sink ProgressWriter
	if s.config.HostControlled {
		sink = s.region
	} else {
		sink = &ConsoleProgress{Out: os.Stdout}
	}
	s.tracker = NewProgressTracker(totalTasks, sink)

	s.sensor.PreProcess()
	s.integrator.Preprocess()
	s.integrator.SetupCamera(s.camera)

	pool := NewWorkerPool(PoolConfig{
		NumWorkers:      s.config.NumWorkers,
		ArenaSize:       s.config.ArenaSize,
		SamplesPerPixel: s.samplesPerPixel,
		Queue:           queue,
		Scene:           s.scene,
		Camera:          s.camera,
		Integrator:      s.integrator,
		NewSampler:      s.newSampler,
		Sensor:          s.sensor,
		Tracker:         s.tracker,
		OnTaskDone:      s.onTaskDone,
	})

	pool.Start()
	pool.Wait()

	// One pass over the done table now that all threads have joined.
	percent := s.tracker.Percent()
	if sink != nil {
		sink.WriteProgress(percent)
	}

	if err := s.sensor.PostProcess(); err != nil {
		return RenderStats{}, fmt.Errorf("sensor postprocess: %w", err)
	}
	s.region.SetFinal()

	s.renderTime = time.Since(start)
	s.logger.Printf("Time spent on rendering is %v.\n", s.renderTime)

	return RenderStats{
		TotalTasks:      totalTasks,
		CompletedTasks:  s.tracker.CompletedTasks(),
		TotalSamples:    int64(s.config.Width) * int64(s.config.Height) * int64(s.samplesPerPixel),
		SamplesPerPixel: s.samplesPerPixel,
		NumWorkers:      pool.NumWorkers(),
		PreprocessTime:  s.preprocessTime,
		RenderTime:      s.renderTime,
	}, nil
}

// Close releases the session's shared-memory region
func (s *Session) Close() error {
	if s.region != nil {
		return s.region.Close()
	}
	return nil
}
