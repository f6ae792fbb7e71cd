package material

import (
	"math"
	"testing"

	"github.com/kferran/go-spiral-tracer/pkg/core"
	"github.com/kferran/go-spiral-tracer/pkg/sampler"
)

func testHit() core.HitRecord {
	return core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}
}

func TestLambertian_PDFMatchesCosine(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.8, 0.8, 0.8))
	s := sampler.NewRandomSampler(42)
	hit := testHit()
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	for i := 0; i < 100; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, s)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}

		cosTheta := scatter.Scattered.Direction.Normalize().Dot(hit.Normal)
		if cosTheta <= 0 {
			t.Fatalf("Scattered direction %v is below the surface", scatter.Scattered.Direction)
		}
		expectedPDF := cosTheta / math.Pi
		if math.Abs(scatter.PDF-expectedPDF) > 1e-10 {
			t.Errorf("PDF mismatch: got %f, expected %f", scatter.PDF, expectedPDF)
		}
	}
}

func TestLambertian_AttenuationIsAlbedo(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	s := sampler.NewRandomSampler(42)
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	scatter, didScatter := lambertian.Scatter(ray, testHit(), s)
	if !didScatter {
		t.Fatal("Lambertian should always scatter")
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Attenuation %v should equal albedo %v", scatter.Attenuation, albedo)
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0)
	s := sampler.NewRandomSampler(42)
	hit := testHit()
	incoming := core.NewVec3(1, 0, -1).Normalize()
	ray := core.NewRay(core.NewVec3(-1, 0, 1), incoming)

	scatter, didScatter := metal.Scatter(ray, hit, s)
	if !didScatter {
		t.Fatal("Metal should reflect a grazing ray")
	}
	if scatter.PDF != 0 {
		t.Errorf("Specular scatter must report PDF 0, got %f", scatter.PDF)
	}

	expected := core.NewVec3(1, 0, 1).Normalize()
	if scatter.Scattered.Direction.Normalize().Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected reflection %v, got %v", expected, scatter.Scattered.Direction)
	}
}

func TestMetal_FuzzStaysAboveSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.3)
	s := sampler.NewRandomSampler(42)
	hit := testHit()
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0.2, 0, -1).Normalize())

	for i := 0; i < 100; i++ {
		scatter, didScatter := metal.Scatter(ray, hit, s)
		if !didScatter {
			continue // Fuzz pushed the reflection into the surface; absorbed
		}
		if scatter.Scattered.Direction.Dot(hit.Normal) <= 0 {
			t.Errorf("Scattered ray %v points into the surface", scatter.Scattered.Direction)
		}
	}
}

func TestMetal_FuzzClamped(t *testing.T) {
	metal := NewMetal(core.NewVec3(1, 1, 1), 5.0)
	if metal.Fuzz != 1.0 {
		t.Errorf("Fuzz should clamp to 1.0, got %f", metal.Fuzz)
	}
}

func TestEmissive_NeverScatters(t *testing.T) {
	emissive := NewEmissive(core.NewVec3(4, 4, 4))
	s := sampler.NewRandomSampler(42)
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	if _, didScatter := emissive.Scatter(ray, testHit(), s); didScatter {
		t.Error("Emissive material must not scatter")
	}
	if emissive.Emitted() != core.NewVec3(4, 4, 4) {
		t.Errorf("Emitted() = %v, want the configured radiance", emissive.Emitted())
	}
}

// Emissive must satisfy the emitter interface so integrators can pick up
// its radiance on hit
var _ core.Emitter = (*Emissive)(nil)
