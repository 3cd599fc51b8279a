package integrator

import (
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray, following at most depth bounces
	RayColor(ray core.Ray, world geometry.Shape, random *rand.Rand, depth int) core.Vec3
}

// Background is the vertical sky gradient seen by rays that escape the scene
type Background struct {
	Top    core.Vec3 // Color looking straight up
	Bottom core.Vec3 // Color looking straight down
}

// DefaultBackground is the white to sky blue gradient
func DefaultBackground() Background {
	return Background{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Color returns the gradient color for the ray's direction
func (b Background) Color(r core.Ray) core.Vec3 {
	unitDirection := core.UnitVector(r.Direction)

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return b.Bottom.Lerp(b.Top, t)
}
