package renderer

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of samples taken
	Rows         int           // Scan lines completed
	Workers      int           // Number of workers used
	Seed         int64         // Base seed the rows were derived from
	Elapsed      time.Duration // Wall-clock render time
}

// SamplesPerSecond returns the sampling throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}

// PixelStats accumulates samples for a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// QuantizeColor converts an averaged linear color to 8-bit sRGB-ish output:
// gamma 2, clamp to [0, 0.999], then scale by 256 and truncate.
func QuantizeColor(c core.Vec3) color.RGBA {
	c = c.GammaCorrect(2.0)
	return color.RGBA{
		R: quantizeChannel(c.X),
		G: quantizeChannel(c.Y),
		B: quantizeChannel(c.Z),
		A: 255,
	}
}

func quantizeChannel(v float64) uint8 {
	// NaN compares false everywhere, so map it to black explicitly
	if math.IsNaN(v) {
		return 0
	}
	return uint8(256 * max(0.0, min(0.999, v)))
}

// CalculateAverageLuminance returns the mean perceptual luminance of img in [0,1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += core.NewVec3(float64(c.R), float64(c.G), float64(c.B)).Multiply(1.0 / 255).Luminance()
		}
	}
	return total / float64(pixels)
}
