package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

var (
	// ErrInvalidScene is returned for scene files that cannot be built
	ErrInvalidScene = errors.New("invalid scene")
	// ErrUnknownMaterial is returned when a sphere names a material that is not defined
	ErrUnknownMaterial = errors.New("unknown material")
)

// Vec3 is a JSON [x, y, z] array
type Vec3 core.Vec3

// UnmarshalJSON decodes a three element number array
func (v *Vec3) UnmarshalJSON(data []byte) error {
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("expected [x, y, z]: %w", err)
	}
	if len(arr) != 3 {
		return fmt.Errorf("expected [x, y, z], got %d values", len(arr))
	}
	*v = Vec3{X: arr[0], Y: arr[1], Z: arr[2]}
	return nil
}

// Color is a linear RGB color given either as an [r, g, b] array in [0,1]
// or as a CSS color name such as "crimson"
type Color core.Vec3

// UnmarshalJSON decodes a color array or name
func (c *Color) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		rgba, ok := colornames.Map[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("unknown color name %q", name)
		}
		*c = Color{X: float64(rgba.R) / 255, Y: float64(rgba.G) / 255, Z: float64(rgba.B) / 255}
		return nil
	}

	var v Vec3
	if err := v.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("color must be a name or [r, g, b]: %w", err)
	}
	*c = Color(v)
	return nil
}

// CameraFile describes the camera in a scene file. Up defaults to +Y and
// FocusDistance to the distance between LookFrom and LookAt.
type CameraFile struct {
	LookFrom      Vec3     `json:"lookFrom"`
	LookAt        Vec3     `json:"lookAt"`
	Up            *Vec3    `json:"up,omitempty"`
	VFov          float64  `json:"vfov"`
	Aperture      float64  `json:"aperture"`
	FocusDistance *float64 `json:"focusDistance,omitempty"`
}

// BackgroundFile describes the sky gradient
type BackgroundFile struct {
	Top    Color `json:"top"`
	Bottom Color `json:"bottom"`
}

// MaterialFile describes one entry of the material table
type MaterialFile struct {
	Type            string  `json:"type"` // "lambertian", "metal" or "dielectric"
	Albedo          Color   `json:"albedo"`
	Fuzz            float64 `json:"fuzz"`
	RefractiveIndex float64 `json:"refractiveIndex"`
}

// SphereFile describes one sphere referencing a material by name
type SphereFile struct {
	Center   Vec3    `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// SceneFile is the JSON scene description
type SceneFile struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Camera      CameraFile              `json:"camera"`
	Background  *BackgroundFile         `json:"background,omitempty"`
	Materials   map[string]MaterialFile `json:"materials"`
	Spheres     []SphereFile            `json:"spheres"`
}

// LoadScene reads and builds a JSON scene file
func LoadScene(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	s, err := ParseScene(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// ParseScene decodes a JSON scene description and builds it
func ParseScene(r io.Reader) (*Scene, error) {
	var file SceneFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	return file.Build()
}

// Build turns the description into a scene. Spheres naming the same material
// share a single material instance.
func (f *SceneFile) Build() (*Scene, error) {
	s := newScene(f.Name, f.Camera.config())
	if f.Background != nil {
		s.Background = integrator.Background{
			Top:    core.Vec3(f.Background.Top),
			Bottom: core.Vec3(f.Background.Bottom),
		}
	}

	materials := make(map[string]material.Material, len(f.Materials))
	for name, mf := range f.Materials {
		mat, err := mf.build()
		if err != nil {
			return nil, fmt.Errorf("%w: material %q: %w", ErrInvalidScene, name, err)
		}
		materials[name] = mat
	}

	if len(f.Spheres) == 0 {
		return nil, fmt.Errorf("%w: no spheres", ErrInvalidScene)
	}
	for i, sf := range f.Spheres {
		mat, ok := materials[sf.Material]
		if !ok {
			return nil, fmt.Errorf("%w: sphere %d: %w %q", ErrInvalidScene, i, ErrUnknownMaterial, sf.Material)
		}
		if err := s.AddSphere(core.Vec3(sf.Center), sf.Radius, mat); err != nil {
			return nil, fmt.Errorf("%w: sphere %d: %w", ErrInvalidScene, i, err)
		}
	}

	// Validate the camera now rather than at render time
	if _, err := s.NewCamera(1.0); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	return s, nil
}

func (c CameraFile) config() geometry.CameraConfig {
	up := core.NewVec3(0, 1, 0)
	if c.Up != nil {
		up = core.Vec3(*c.Up)
	}

	lookFrom, lookAt := core.Vec3(c.LookFrom), core.Vec3(c.LookAt)
	focus := lookFrom.Subtract(lookAt).Length()
	if c.FocusDistance != nil {
		focus = *c.FocusDistance
	}

	return geometry.CameraConfig{
		LookFrom:      lookFrom,
		LookAt:        lookAt,
		Up:            up,
		VFov:          c.VFov,
		AspectRatio:   1.0,
		Aperture:      c.Aperture,
		FocusDistance: focus,
	}
}

func (m MaterialFile) build() (material.Material, error) {
	switch strings.ToLower(m.Type) {
	case "lambertian":
		return material.NewLambertian(core.Vec3(m.Albedo)), nil
	case "metal":
		return material.NewMetal(core.Vec3(m.Albedo), m.Fuzz), nil
	case "dielectric":
		if !(m.RefractiveIndex > 0) {
			return nil, fmt.Errorf("refractive index %g must be positive", m.RefractiveIndex)
		}
		return material.NewDielectric(m.RefractiveIndex), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}
}
