package scene

import (
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// coverCamera frames the grid of small spheres from a low angle
func coverCamera() geometry.CameraConfig {
	return geometry.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   2.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}
}

// smallSphereCenter jitters a grid cell; ok is false when the sphere would
// overlap the metal sphere at (4,1,0)
func smallSphereCenter(a, b int, random *rand.Rand) (center core.Vec3, ok bool) {
	center = core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
	return center, center.Subtract(core.NewVec3(4, 0.2, 0)).Length() > 0.9
}

// addCoverSpheres adds the three large spheres and the ground
func addCoverSpheres(s *Scene) error {
	shared := []struct {
		center core.Vec3
		radius float64
		mat    material.Material
	}{
		{core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)},
		{core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))},
		{core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)},
	}
	for _, sp := range shared {
		if err := s.AddSphere(sp.center, sp.radius, sp.mat); err != nil {
			return err
		}
	}
	return nil
}

// NewRandomScene creates the book cover scene: a gray ground, a 22x22 grid of
// small randomly-textured spheres and three large feature spheres.
func NewRandomScene(random *rand.Rand) (*Scene, error) {
	s := newScene("random", coverCamera())

	if err := s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))); err != nil {
		return nil, err
	}

	glass := material.NewDielectric(1.5)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center, ok := smallSphereCenter(a, b, random)
			if !ok {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				albedo := core.RandomVec3(random, 0, 1).MultiplyVec(core.RandomVec3(random, 0, 1))
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := core.RandomVec3(random, 0.5, 1)
				fuzz := core.RandomRange(random, 0, 0.5)
				mat = material.NewMetal(albedo, fuzz)
			default:
				mat = glass
			}

			if err := s.AddSphere(center, 0.2, mat); err != nil {
				return nil, err
			}
		}
	}

	if err := addCoverSpheres(s); err != nil {
		return nil, err
	}
	return s, nil
}

// NewGlassSpheresScene is the cover layout with every small sphere made of
// glass. All small spheres share one material.
func NewGlassSpheresScene(random *rand.Rand) (*Scene, error) {
	s := newScene("glass", coverCamera())

	if err := s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))); err != nil {
		return nil, err
	}

	glass := material.NewDielectric(1.5)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center, ok := smallSphereCenter(a, b, random)
			if !ok {
				continue
			}
			if err := s.AddSphere(center, 0.2, glass); err != nil {
				return nil, err
			}
		}
	}

	if err := addCoverSpheres(s); err != nil {
		return nil, err
	}
	return s, nil
}
