package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// MinHitDistance keeps scattered rays from re-hitting the surface they left
const MinHitDistance = 0.001

// PathTracingIntegrator implements depth-limited unidirectional path tracing
type PathTracingIntegrator struct {
	background Background
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background Background) *PathTracingIntegrator {
	return &PathTracingIntegrator{background: background}
}

// RayColor computes the color for a single ray.
//
// Each loop iteration is one bounce. The product of attenuations so far is carried
// in throughput, which makes this equal to attenuation ⊙ RayColor(scattered, depth-1)
// without growing the stack. Running out of depth yields black.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, random *rand.Rand, depth int) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for remaining := depth; remaining > 0; remaining-- {
		hit, isHit := world.Hit(ray, MinHitDistance, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(pt.background.Color(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, hit, random)
		if !didScatter {
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// If we've exceeded the ray bounce limit, no more light is gathered
	return core.Vec3{}
}

// Background returns the gradient used for escaped rays
func (pt *PathTracingIntegrator) Background() Background {
	return pt.background
}
