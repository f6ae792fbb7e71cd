package scene

import (
	"github.com/kferran/go-spiral-tracer/pkg/core"
	"github.com/kferran/go-spiral-tracer/pkg/geometry"
	"github.com/kferran/go-spiral-tracer/pkg/material"
	"github.com/kferran/go-spiral-tracer/pkg/render"
)

// NewDefaultScene creates the default demo scene: spheres over a ground
// plane under a sky gradient.
func NewDefaultScene() *Scene {
	s := NewScene(
		core.NewVec3(0.5, 0.7, 1.0), // Sky blue
		core.NewVec3(1.0, 1.0, 1.0), // White horizon
	)

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.AddShape(geometry.NewQuad(
		core.NewVec3(-50, 0, -50),
		core.NewVec3(100, 0, 0),
		core.NewVec3(0, 0, 100),
		ground,
	))

	s.AddShape(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0,
		material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))))
	s.AddShape(geometry.NewSphere(core.NewVec3(-2.2, 1, 0), 1.0,
		material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 0.05)))
	s.AddShape(geometry.NewSphere(core.NewVec3(2.2, 1, 0), 1.0,
		material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)))

	return s
}

// DefaultCameraConfig returns the camera framing for the default scene
func DefaultCameraConfig(width int, aspectRatio float64) render.CameraConfig {
	return render.CameraConfig{
		Center:      core.NewVec3(0, 2, 6),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		Width:       width,
		AspectRatio: aspectRatio,
	}
}

// NewCornellScene creates a Cornell-box style scene with an area light
func NewCornellScene() *Scene {
	s := NewScene(core.Vec3{}, core.Vec3{}) // Closed box, black outside

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewEmissive(core.NewVec3(15, 15, 15))

	// Box walls
	s.AddShape(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 5.55, 0), core.NewVec3(0, 0, 5.55), green))     // Left
	s.AddShape(geometry.NewQuad(core.NewVec3(5.55, 0, 0), core.NewVec3(0, 5.55, 0), core.NewVec3(0, 0, 5.55), red))    // Right
	s.AddShape(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(5.55, 0, 0), core.NewVec3(0, 0, 5.55), white))     // Floor
	s.AddShape(geometry.NewQuad(core.NewVec3(0, 5.55, 0), core.NewVec3(5.55, 0, 0), core.NewVec3(0, 0, 5.55), white))  // Ceiling
	s.AddShape(geometry.NewQuad(core.NewVec3(0, 0, 5.55), core.NewVec3(5.55, 0, 0), core.NewVec3(0, 5.55, 0), white))  // Back

	// Area light just below the ceiling
	s.AddShape(geometry.NewQuad(core.NewVec3(2.13, 5.54, 2.27), core.NewVec3(1.3, 0, 0), core.NewVec3(0, 0, 1.05), light))

	// Two spheres standing in for the boxes
	s.AddShape(geometry.NewSphere(core.NewVec3(1.9, 0.9, 1.9), 0.9, white))
	s.AddShape(geometry.NewSphere(core.NewVec3(3.7, 0.6, 3.5), 0.6,
		material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.0)))

	return s
}

// CornellCameraConfig returns the camera framing for the Cornell scene
func CornellCameraConfig(width int, aspectRatio float64) render.CameraConfig {
	return render.CameraConfig{
		Center:      core.NewVec3(2.78, 2.78, -8),
		LookAt:      core.NewVec3(2.78, 2.78, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		Width:       width,
		AspectRatio: aspectRatio,
	}
}
