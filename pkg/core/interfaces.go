package core

import "errors"

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}

var (
	// ErrZeroDirection is returned for rays or camera axes with no length
	ErrZeroDirection = errors.New("zero-length direction")
	// ErrNonFinite is returned when a vector carries NaN or Inf
	ErrNonFinite = errors.New("non-finite value")
	// ErrInvalidRadius is returned for spheres with radius <= 0
	ErrInvalidRadius = errors.New("sphere radius must be positive")
	// ErrInvalidCamera is returned for unusable camera configurations
	ErrInvalidCamera = errors.New("invalid camera configuration")
	// ErrInvalidRenderConfig is returned for unusable render configurations
	ErrInvalidRenderConfig = errors.New("invalid render configuration")
)
