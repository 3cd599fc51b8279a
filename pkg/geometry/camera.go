package geometry

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera.
// Every field is required; there are no defaults.
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // World up hint
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter; 0 is a pinhole
	FocusDistance float64   // Distance to the plane in perfect focus
}

// Validate reports configurations that would produce NaN rays
func (c CameraConfig) Validate() error {
	for name, v := range map[string]core.Vec3{"lookFrom": c.LookFrom, "lookAt": c.LookAt, "up": c.Up} {
		if !v.IsFinite() {
			return fmt.Errorf("%w: %s %v: %w", core.ErrInvalidCamera, name, v, core.ErrNonFinite)
		}
	}
	if c.LookFrom.Subtract(c.LookAt).LengthSquared() == 0 {
		return fmt.Errorf("%w: lookFrom equals lookAt: %w", core.ErrInvalidCamera, core.ErrZeroDirection)
	}
	if c.Up.Cross(c.LookFrom.Subtract(c.LookAt)).NearZero() {
		return fmt.Errorf("%w: up %v is parallel to the view direction", core.ErrInvalidCamera, c.Up)
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		return fmt.Errorf("%w: vfov %g must be in (0, 180)", core.ErrInvalidCamera, c.VFov)
	}
	if !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 1) {
		return fmt.Errorf("%w: aspect ratio %g must be positive", core.ErrInvalidCamera, c.AspectRatio)
	}
	if !(c.Aperture >= 0) || math.IsInf(c.Aperture, 1) {
		return fmt.Errorf("%w: aperture %g must be non-negative", core.ErrInvalidCamera, c.Aperture)
	}
	if !(c.FocusDistance > 0) || math.IsInf(c.FocusDistance, 1) {
		return fmt.Errorf("%w: focus distance %g must be positive", core.ErrInvalidCamera, c.FocusDistance)
	}
	return nil
}

// Camera generates rays for rendering with thin-lens depth of field.
// It is immutable once built and safe to share between goroutines.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // orthonormal basis; w points away from the scene
	lensRadius      float64
	config          CameraConfig
}

// NewCamera derives the camera basis and viewport from config
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	w := core.UnitVector(config.LookFrom.Subtract(config.LookAt))
	u := core.UnitVector(config.Up.Cross(w))
	v := w.Cross(u)

	theta := config.VFov * math.Pi / 180.0
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight
	focus := config.FocusDistance

	origin := config.LookFrom
	lowerLeftCorner := origin.
		Subtract(u.Multiply(halfWidth * focus)).
		Subtract(v.Multiply(halfHeight * focus)).
		Subtract(w.Multiply(focus))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      u.Multiply(2 * halfWidth * focus),
		vertical:        v.Multiply(2 * halfHeight * focus),
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		config:          config,
	}, nil
}

// GetRay generates a ray for viewport coordinates (s, t) where 0 <= s,t <= 1.
// (0,0) is the lower-left corner. The origin is jittered across the lens.
func (c *Camera) GetRay(s, t float64, random *rand.Rand) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(random).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
