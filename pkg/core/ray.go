package core

import "fmt"

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Validate rejects rays that cannot be traced
func (r Ray) Validate() error {
	if !r.Origin.IsFinite() || !r.Direction.IsFinite() {
		return fmt.Errorf("ray %v -> %v: %w", r.Origin, r.Direction, ErrNonFinite)
	}
	if r.Direction.LengthSquared() == 0 {
		return fmt.Errorf("ray from %v: %w", r.Origin, ErrZeroDirection)
	}
	return nil
}
