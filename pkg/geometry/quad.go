package geometry

import (
	"math"

	"github.com/kferran/go-spiral-tracer/pkg/core"
)

// Quad is a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3
	U, V     core.Vec3
	Material core.Material

	normal core.Vec3
	d      float64
	w      core.Vec3
}

// NewQuad creates a quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, material core.Material) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()
	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Material: material,
		normal:   normal,
		d:        normal.Dot(corner),
		w:        n.Multiply(1.0 / n.Dot(n)),
	}
}

// Hit tests the ray against the quad within (tMin, tMax)
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	denom := q.normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-8 {
		return nil, false // Parallel to the plane
	}

	t := (q.d - q.normal.Dot(ray.Origin)) / denom
	if t < tMin || t > tMax {
		return nil, false
	}

	point := ray.At(t)
	planar := point.Subtract(q.Corner)
	alpha := q.w.Dot(planar.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(planar))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	normal := q.normal
	if denom > 0 {
		normal = normal.Multiply(-1) // Face the ray
	}

	return &core.HitRecord{
		T:        t,
		Point:    point,
		Normal:   normal,
		Material: q.Material,
	}, true
}
