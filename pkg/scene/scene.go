package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *geometry.HittableList // Objects in the scene
	CameraConfig geometry.CameraConfig  // AspectRatio is set by NewCamera
	Background   integrator.Background
}

// newScene creates an empty scene with the default sky
func newScene(name string, cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		World:        geometry.NewHittableList(),
		CameraConfig: cameraConfig,
		Background:   integrator.DefaultBackground(),
	}
}

// AddSphere validates and adds a sphere to the world
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) error {
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		return err
	}
	s.World.Add(sphere)
	return nil
}

// NewCamera builds the scene camera for an image with the given aspect ratio
func (s *Scene) NewCamera(aspectRatio float64) (*geometry.Camera, error) {
	config := s.CameraConfig
	config.AspectRatio = aspectRatio
	return geometry.NewCamera(config)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
