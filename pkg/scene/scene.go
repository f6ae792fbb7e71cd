// Package scene provides the reference Scene implementation and the
// built-in scenes the demo binary renders.
package scene

import (
	"errors"

	"github.com/kferran/go-spiral-tracer/pkg/core"
)

// Scene holds shapes and a background gradient. It implements core.Scene:
// Preprocess runs single-threaded before scheduling, after which the scene
// is shared read-only by every worker.
type Scene struct {
	Shapes      []core.Shape
	TopColor    core.Vec3 // Background gradient at the zenith
	BottomColor core.Vec3 // Background gradient at the horizon

	preprocessed bool
}

// NewScene creates an empty scene with the given background gradient
func NewScene(topColor, bottomColor core.Vec3) *Scene {
	return &Scene{TopColor: topColor, BottomColor: bottomColor}
}

// AddShape adds a shape to the scene. Must not be called after Preprocess.
func (s *Scene) AddShape(shape core.Shape) {
	s.Shapes = append(s.Shapes, shape)
}

// Preprocess validates the scene before rendering starts
func (s *Scene) Preprocess() error {
	if len(s.Shapes) == 0 {
		return errors.New("scene has no shapes")
	}
	s.preprocessed = true
	return nil
}

// Hit returns the closest intersection along the ray, if any
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closest *core.HitRecord
	closestSoFar := tMax

	for _, shape := range s.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, closest != nil
}

// Background returns the gradient color for a ray that escaped the scene
func (s *Scene) Background(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return s.BottomColor.Multiply(1.0 - t).Add(s.TopColor.Multiply(t))
}
