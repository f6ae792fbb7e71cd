// Package server exposes a browser preview around the render core: a
// websocket streams tile updates as workers finish them. The shared-memory
// channel remains the canonical host interface; this is a development
// convenience.
package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/kferran/go-spiral-tracer/pkg/core"
	"github.com/kferran/go-spiral-tracer/pkg/render"
	"github.com/kferran/go-spiral-tracer/pkg/scene"
	"github.com/kferran/go-spiral-tracer/pkg/sensor"
)

// Server handles web requests for the renderer
type Server struct {
	port   int
	logger core.Logger
}

// NewServer creates a new web server
func NewServer(port int, logger core.Logger) *Server {
	if logger == nil {
		logger = render.NewDefaultLogger()
	}
	return &Server{port: port, logger: logger}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string `json:"scene"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	TileSize   int    `json:"tileSize"`
	Samples    int    `json:"samples"`
	Workers    int    `json:"workers"`
	Integrator string `json:"integrator"`
	Sampler    string `json:"sampler"`
}

// TileUpdate is pushed over the websocket when a worker finishes a tile
type TileUpdate struct {
	Type      string `json:"type"` // "tile"
	TileX     int    `json:"tileX"`
	TileY     int    `json:"tileY"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"` // Base64 encoded PNG for just this tile
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// RenderComplete closes a render stream with final statistics
type RenderComplete struct {
	Type       string `json:"type"` // "complete"
	TotalTasks int    `json:"totalTasks"`
	Samples    int    `json:"samples"`
	ElapsedMs  int64  `json:"elapsedMs"`
	ImageData  string `json:"imageData"` // Base64 encoded PNG of the full image
}

// Router builds the HTTP routes
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/plugins", s.handlePlugins).Methods(http.MethodGet)
	r.HandleFunc("/api/render", s.handleRender)
	r.PathPrefix("/").Handler(http.FileServer(http.Dir("static/")))
	return r
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Printf("Starting web server on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s.Router())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handlePlugins lists the registered integrators and samplers
func (s *Server) handlePlugins(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{
		"integrators": core.IntegratorNames(),
		"samplers":    core.SamplerNames(),
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024,
	// Local development tool; same-origin checks would block file:// clients
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleRender upgrades to a websocket, runs one render session and streams
// tile updates as they complete.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("Warning: websocket upgrade failed: %v\n", err)
		return
	}
	defer conn.Close()

	var req RenderRequest
	if err := conn.ReadJSON(&req); err != nil {
		s.logger.Printf("Warning: bad render request: %v\n", err)
		return
	}
	applyRequestDefaults(&req)

	if err := s.streamRender(conn, req); err != nil {
		s.logger.Printf("Warning: render stream ended: %v\n", err)
	}
}

func applyRequestDefaults(req *RenderRequest) {
	if req.Width <= 0 {
		req.Width = 640
	}
	if req.Height <= 0 {
		req.Height = 360
	}
	if req.TileSize <= 0 {
		req.TileSize = 64
	}
	if req.Samples <= 0 {
		req.Samples = 16
	}
	if req.Integrator == "" {
		req.Integrator = "path"
	}
	if req.Sampler == "" {
		req.Sampler = "stratified"
	}
}

// streamRender runs the session and forwards tile completions. Workers
// report tiles concurrently, so completions are funneled through a channel
// and written by this goroutine alone.
func (s *Server) streamRender(conn *websocket.Conn, req RenderRequest) error {
	var sc *scene.Scene
	var cameraConfig render.CameraConfig
	aspectRatio := float64(req.Width) / float64(req.Height)

	switch req.Scene {
	case "cornell":
		sc = scene.NewCornellScene()
		cameraConfig = scene.CornellCameraConfig(req.Width, aspectRatio)
	default:
		sc = scene.NewDefaultScene()
		cameraConfig = scene.DefaultCameraConfig(req.Width, aspectRatio)
	}

	target := sensor.NewTargetSensor(req.Width, req.Height, "", s.logger)

	tiles := make(chan *render.RenderTask, 64)
	session, err := render.NewSession(render.Config{
		Width:           req.Width,
		Height:          req.Height,
		TileSize:        req.TileSize,
		SamplesPerPixel: req.Samples,
		NumWorkers:      req.Workers,
		Integrator:      req.Integrator,
		Sampler:         req.Sampler,
	}, render.Collaborators{
		Scene:  sc,
		Camera: render.NewCamera(cameraConfig),
		Sensor: target,
		Logger: s.logger,
		OnTaskDone: func(task *render.RenderTask) {
			tiles <- task
		},
	})
	if err != nil {
		return conn.WriteJSON(map[string]string{"type": "error", "message": err.Error()})
	}
	defer session.Close()

	start := time.Now()
	type renderResult struct {
		stats render.RenderStats
		err   error
	}
	done := make(chan renderResult, 1)
	go func() {
		stats, err := session.Render()
		close(tiles)
		done <- renderResult{stats, err}
	}()

	totalTiles := ((req.Width + req.TileSize - 1) / req.TileSize) *
		((req.Height + req.TileSize - 1) / req.TileSize)

	completed := 0
	for task := range tiles {
		completed++
		update := TileUpdate{
			Type:      "tile",
			TileX:     task.OriginX / req.TileSize,
			TileY:     task.OriginY / req.TileSize,
			Width:     task.Width,
			Height:    task.Height,
			ImageData: encodePNG(target.TileImage(task.OriginX, task.OriginY, task.Width, task.Height)),
			Completed: completed,
			Total:     totalTiles,
		}
		if err := conn.WriteJSON(update); err != nil {
			// Client gone; the render itself runs to completion regardless
			for range tiles {
			}
			<-done
			return err
		}
	}

	result := <-done
	if result.err != nil {
		return conn.WriteJSON(map[string]string{"type": "error", "message": result.err.Error()})
	}

	return conn.WriteJSON(RenderComplete{
		Type:       "complete",
		TotalTasks: result.stats.TotalTasks,
		Samples:    result.stats.SamplesPerPixel,
		ElapsedMs:  time.Since(start).Milliseconds(),
		ImageData:  encodePNG(target.Image()),
	})
}

// encodePNG encodes an image as a base64 PNG string
func encodePNG(img image.Image) string {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}
