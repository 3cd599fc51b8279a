package renderer

import (
	"fmt"
	"runtime"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Workers         int   // Number of parallel row workers (0 = auto-detect)
	Seed            int64 // Base seed used when FixedSeed is set
	FixedSeed       bool  // Seed every row from Seed so output is reproducible

	// OnRowDone is called after each scan line finishes. It may be called
	// concurrently from several workers.
	OnRowDone func(row int, elapsed time.Duration)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:           200,
		Height:          100,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Workers:         0,
		Seed:            42,
		FixedSeed:       false,
	}
}

// Validate rejects configurations that cannot produce an image
func (c RenderConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d must be positive", core.ErrInvalidRenderConfig, c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel %d must be positive", core.ErrInvalidRenderConfig, c.SamplesPerPixel)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w: max depth %d must be positive", core.ErrInvalidRenderConfig, c.MaxDepth)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d must not be negative", core.ErrInvalidRenderConfig, c.Workers)
	}
	return nil
}

// AspectRatio returns width / height
func (c RenderConfig) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// NumWorkers resolves the auto-detect setting
func (c RenderConfig) NumWorkers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// rowSeed returns the RNG seed for scan line j
func rowSeed(base int64, j int) int64 {
	return base + int64(j)
}
