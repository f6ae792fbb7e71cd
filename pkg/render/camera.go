package render

import (
	"math"

	"github.com/kferran/go-spiral-tracer/pkg/core"
)

// CameraConfig describes a perspective camera
type CameraConfig struct {
	Center      core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Up direction
	VFov        float64   // Vertical field of view in degrees
	Width       int       // Output width in pixels
	AspectRatio float64   // Width / height
}

// Camera generates primary rays for continuous pixel coordinates. It
// implements core.Camera.
type Camera struct {
	config          CameraConfig
	width, height   float64
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a perspective camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	viewportHeight := 2.0 * halfHeight
	viewportWidth := config.AspectRatio * viewportHeight

	// Orthonormal camera basis
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.Center
	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	return &Camera{
		config:          config,
		width:           float64(config.Width),
		height:          float64(config.Width) / config.AspectRatio,
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
	}
}

// GenerateRay returns the primary ray through image-plane coordinate (x, y).
// Coordinates are in pixels with sub-pixel jitter already applied; y grows
// downward as in image space.
func (c *Camera) GenerateRay(x, y float64) core.Ray {
	s := x / c.width
	t := 1.0 - y/c.height

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}
