package scene

import (
	"math"
	"testing"

	"github.com/kferran/go-spiral-tracer/pkg/core"
	"github.com/kferran/go-spiral-tracer/pkg/geometry"
)

func TestScene_PreprocessEmptyScene(t *testing.T) {
	s := NewScene(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0))
	if err := s.Preprocess(); err == nil {
		t.Error("Preprocess should reject a scene with no shapes")
	}

	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 0), 1.0, nil))
	if err := s.Preprocess(); err != nil {
		t.Errorf("Preprocess failed on a non-empty scene: %v", err)
	}
}

func TestScene_HitReturnsClosest(t *testing.T) {
	s := NewScene(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0))
	// Two spheres along -z; the ray must hit the nearer one
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, -10), 1.0, nil))
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, -5), 1.0, nil))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, isHit := s.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected a hit")
	}
	if math.Abs(hit.T-4.0) > 1e-9 {
		t.Errorf("Expected closest hit at t=4, got t=%f", hit.T)
	}
}

func TestScene_HitMiss(t *testing.T) {
	s := NewScene(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0))
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, -5), 1.0, nil))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	if _, isHit := s.Hit(ray, 0.001, 1000.0); isHit {
		t.Error("Expected miss")
	}
}

func TestScene_BackgroundGradient(t *testing.T) {
	top := core.NewVec3(0.5, 0.7, 1.0)
	bottom := core.NewVec3(1.0, 1.0, 1.0)
	s := NewScene(top, bottom)

	up := s.Background(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)))
	if up.Subtract(top).Length() > 1e-9 {
		t.Errorf("Straight up should return the top color, got %v", up)
	}

	down := s.Background(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)))
	if down.Subtract(bottom).Length() > 1e-9 {
		t.Errorf("Straight down should return the bottom color, got %v", down)
	}

	horizon := s.Background(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)))
	mid := top.Add(bottom).Multiply(0.5)
	if horizon.Subtract(mid).Length() > 1e-9 {
		t.Errorf("Horizon should blend evenly, got %v want %v", horizon, mid)
	}
}

func TestBuiltinScenesPreprocess(t *testing.T) {
	scenes := map[string]*Scene{
		"default": NewDefaultScene(),
		"cornell": NewCornellScene(),
	}

	for name, s := range scenes {
		if err := s.Preprocess(); err != nil {
			t.Errorf("built-in scene %q failed preprocess: %v", name, err)
		}
		if len(s.Shapes) == 0 {
			t.Errorf("built-in scene %q has no shapes", name)
		}
	}
}
