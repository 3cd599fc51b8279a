package renderer

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// Camera generates primary rays for viewport coordinates in [0,1]
type Camera interface {
	GetRay(s, t float64, random *rand.Rand) core.Ray
}

// Raytracer handles the rendering process
type Raytracer struct {
	world      geometry.Shape
	camera     Camera
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. World and camera must not be modified
// while a render is in progress.
func NewRaytracer(world geometry.Shape, camera Camera, config RenderConfig) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if world == nil || camera == nil {
		return nil, fmt.Errorf("%w: world and camera are required", core.ErrInvalidRenderConfig)
	}
	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(integrator.DefaultBackground()),
		config:     config,
		logger:     core.NopLogger{},
	}, nil
}

// SetIntegrator replaces the default path tracing integrator
func (rt *Raytracer) SetIntegrator(integ integrator.Integrator) {
	rt.integrator = integ
}

// SetLogger sets the logger used for render progress; nil silences it
func (rt *Raytracer) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	rt.logger = logger
}

// Render samples every pixel and returns the quantized buffer.
// It fails only on context cancellation.
func (rt *Raytracer) Render(ctx context.Context) (*PixelBuffer, RenderStats, error) {
	start := time.Now()
	cfg := rt.config

	baseSeed := cfg.Seed
	if !cfg.FixedSeed {
		baseSeed = start.UnixNano()
	}

	numWorkers := cfg.NumWorkers()
	buffer := NewPixelBuffer(cfg.Width, cfg.Height)
	var rowsDone atomic.Int64

	rt.logger.Printf("Rendering %dx%d, %d samples/pixel, depth %d, %d workers, seed %d\n",
		cfg.Width, cfg.Height, cfg.SamplesPerPixel, cfg.MaxDepth, numWorkers, baseSeed)

	pool := NewWorkerPool(ctx, numWorkers)
	for j := cfg.Height - 1; j >= 0; j-- {
		pool.Submit(RowTask{Row: j, Seed: rowSeed(baseSeed, j)}, func(ctx context.Context, task RowTask) error {
			rowStart := time.Now()
			if err := rt.renderRow(ctx, buffer, task); err != nil {
				return err
			}
			rowsDone.Add(1)
			if cfg.OnRowDone != nil {
				cfg.OnRowDone(task.Row, time.Since(rowStart))
			}
			return nil
		})
	}

	stats := RenderStats{
		Workers: numWorkers,
		Seed:    baseSeed,
	}
	err := pool.Wait()
	stats.Rows = int(rowsDone.Load())
	stats.TotalPixels = stats.Rows * cfg.Width
	stats.TotalSamples = stats.TotalPixels * cfg.SamplesPerPixel
	stats.Elapsed = time.Since(start)
	if err != nil {
		return nil, stats, fmt.Errorf("render aborted after %d of %d rows: %w", stats.Rows, cfg.Height, err)
	}

	rt.logger.Printf("Render complete: %d samples in %v\n", stats.TotalSamples, stats.Elapsed)
	return buffer, stats, nil
}

// renderRow samples scan line task.Row using its own random stream
func (rt *Raytracer) renderRow(ctx context.Context, buffer *PixelBuffer, task RowTask) error {
	cfg := rt.config
	random := rand.New(rand.NewSource(task.Seed))
	j := task.Row

	for i := 0; i < cfg.Width; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		var stats PixelStats
		for sample := 0; sample < cfg.SamplesPerPixel; sample++ {
			// Convert pixel coordinates to normalized coordinates with jitter
			s := (float64(i) + random.Float64()) / float64(cfg.Width)
			t := (float64(j) + random.Float64()) / float64(cfg.Height)

			ray := rt.camera.GetRay(s, t, random)
			stats.AddSample(rt.integrator.RayColor(ray, rt.world, random, cfg.MaxDepth))
		}

		buffer.Set(i, j, QuantizeColor(stats.GetColor()))
	}
	return nil
}

// Render is a convenience wrapper that builds a Raytracer and renders once
func Render(ctx context.Context, world geometry.Shape, camera Camera, config RenderConfig) (*PixelBuffer, RenderStats, error) {
	rt, err := NewRaytracer(world, camera, config)
	if err != nil {
		return nil, RenderStats{}, err
	}
	return rt.Render(ctx)
}
