package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// NewDefaultScene creates a small scene with ground, glass, diffuse and metal spheres
func NewDefaultScene() (*Scene, error) {
	lookFrom := core.NewVec3(3, 3, 2)
	lookAt := core.NewVec3(0, 0, -1)

	s := newScene("default", geometry.CameraConfig{
		LookFrom:      lookFrom,
		LookAt:        lookAt,
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   2.0,
		Aperture:      2.0,
		FocusDistance: lookFrom.Subtract(lookAt).Length(), // Focus on the center sphere
	})

	// Create materials
	lambertianGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(1.5)

	spheres := []struct {
		center core.Vec3
		radius float64
		mat    material.Material
	}{
		{core.NewVec3(0, -100.5, -1), 100, lambertianGround},
		{core.NewVec3(0, 0, -1), 0.5, lambertianBlue},
		{core.NewVec3(1, 0, -1), 0.5, metalGold},
		{core.NewVec3(-1, 0, -1), 0.5, materialGlass},
	}
	for _, sp := range spheres {
		if err := s.AddSphere(sp.center, sp.radius, sp.mat); err != nil {
			return nil, err
		}
	}

	return s, nil
}
