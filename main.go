package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sugawarayuuta/sonnet"

	"github.com/kferran/go-spiral-tracer/pkg/core"
	_ "github.com/kferran/go-spiral-tracer/pkg/integrator" // Register integrators
	"github.com/kferran/go-spiral-tracer/pkg/render"
	_ "github.com/kferran/go-spiral-tracer/pkg/sampler" // Register samplers
	"github.com/kferran/go-spiral-tracer/pkg/scene"
	"github.com/kferran/go-spiral-tracer/pkg/sensor"
	"github.com/kferran/go-spiral-tracer/pkg/shm"
)

// sessionFile is the optional JSON description of a render session
type sessionFile struct {
	Scene           string            `json:"scene"`
	Width           int               `json:"width"`
	Height          int               `json:"height"`
	TileSize        int               `json:"tileSize"`
	Samples         int               `json:"samples"`
	Workers         int               `json:"workers"`
	Integrator      string            `json:"integrator"`
	IntegratorProps map[string]string `json:"integratorProps"`
	Sampler         string            `json:"sampler"`
	Output          string            `json:"output"`
	Host            bool              `json:"host"`
}

func defaultSession() sessionFile {
	return sessionFile{
		Scene:      "default",
		Width:      800,
		Height:     450,
		TileSize:   64,
		Samples:    16,
		Workers:    1,
		Integrator: "path",
		Sampler:    "stratified",
	}
}

func loadSessionFile(path string, into *sessionFile) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return sonnet.Unmarshal(data, into)
}

func main() {
	configPath := flag.String("config", "", "Path to a JSON session description")
	sceneType := flag.String("scene", "", "Scene type: 'default' or 'cornell'")
	width := flag.Int("width", 0, "Image width in pixels")
	height := flag.Int("height", 0, "Image height in pixels")
	tileSize := flag.Int("tile", 0, "Tile size in pixels")
	samples := flag.Int("spp", 0, "Samples per pixel (rounded by the sampler)")
	workers := flag.Int("workers", 0, "Worker threads (0 = CPU count)")
	integratorName := flag.String("integrator", "", "Integrator plugin name")
	samplerName := flag.String("sampler", "", "Sampler plugin name")
	output := flag.String("out", "", "Output image path (.png or .tiff)")
	hostMode := flag.Bool("host", false, "Render for an external host via shared memory")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Spiral Tracer")
		fmt.Println("Usage: spiral-tracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Printf("Available integrators: %v\n", core.IntegratorNames())
		fmt.Printf("Available samplers: %v\n", core.SamplerNames())
		return
	}

	cfg := defaultSession()
	if *configPath != "" {
		if err := loadSessionFile(*configPath, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load session config: %v\n", err)
			os.Exit(1)
		}
	}

	// Explicit flags override the session file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = *sceneType
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "tile":
			cfg.TileSize = *tileSize
		case "spp":
			cfg.Samples = *samples
		case "workers":
			cfg.Workers = *workers
		case "integrator":
			cfg.Integrator = *integratorName
		case "sampler":
			cfg.Sampler = *samplerName
		case "out":
			cfg.Output = *output
		case "host":
			cfg.Host = *hostMode
		}
	})

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Render failed: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg sessionFile) error {
	logger := render.NewDefaultLogger()

	var sc *scene.Scene
	var cameraConfig render.CameraConfig
	aspectRatio := float64(cfg.Width) / float64(cfg.Height)

	switch cfg.Scene {
	case "cornell":
		sc = scene.NewCornellScene()
		cameraConfig = scene.CornellCameraConfig(cfg.Width, aspectRatio)
	default:
		sc = scene.NewDefaultScene()
		cameraConfig = scene.DefaultCameraConfig(cfg.Width, aspectRatio)
	}
	camera := render.NewCamera(cameraConfig)

	renderConfig := render.Config{
		Width:           cfg.Width,
		Height:          cfg.Height,
		TileSize:        cfg.TileSize,
		SamplesPerPixel: cfg.Samples,
		NumWorkers:      cfg.Workers,
		Integrator:      cfg.Integrator,
		IntegratorProps: cfg.IntegratorProps,
		Sampler:         cfg.Sampler,
		HostControlled:  cfg.Host,
		SharedMemoryKey: render.DefaultSharedMemoryKey,
	}

	var imageSensor core.ImageSensor
	var region *shm.Region
	if cfg.Host {
		var err error
		region, err = shm.Create(renderConfig.SharedMemoryKey, cfg.Width, cfg.Height, cfg.TileSize)
		if err != nil {
			return err
		}
		imageSensor = sensor.NewSharedMemorySensor(region, cfg.Width, cfg.Height, cfg.TileSize)
	} else {
		output := cfg.Output
		if output == "" {
			output = filepath.Join("output", cfg.Scene,
				fmt.Sprintf("render_%s.png", time.Now().Format("2006-01-02_15-04-05")))
		}
		imageSensor = sensor.NewTargetSensor(cfg.Width, cfg.Height, output, logger)
	}

	session, err := render.NewSession(renderConfig, render.Collaborators{
		Scene:  sc,
		Camera: camera,
		Sensor: imageSensor,
		Region: region,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	logger.Printf("Rendering %dx%d, %d samples per pixel, tile size %d...\n",
		cfg.Width, cfg.Height, session.SamplesPerPixel(), renderConfig.TileSize)

	stats, err := session.Render()
	if err != nil {
		return err
	}

	logger.Printf("Completed %d/%d tiles with %d workers in %v.\n",
		stats.CompletedTasks, stats.TotalTasks, stats.NumWorkers, stats.RenderTime)
	return nil
}
