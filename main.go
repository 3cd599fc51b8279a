package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/imageio"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/profiler"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneName string
	scenesDir string
	output    string
	list      bool
	verbose   bool
	render    renderer.RenderConfig
}

func parseFlags(args []string, output io.Writer) (options, error) {
	defaults := renderer.DefaultRenderConfig()
	opts := options{render: defaults}

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.sceneName, "scene", "random", "Scene: 'random', 'glass', 'default' or a .json scene file")
	fs.StringVar(&opts.scenesDir, "scenes-dir", "scenes", "Directory searched for .json scenes by -list")
	fs.StringVar(&opts.output, "out", "image.ppm", "Output file; the extension selects ppm, png, jpg or tif")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.verbose, "v", false, "Log every scan line")
	fs.IntVar(&opts.render.Width, "width", defaults.Width, "Image width in pixels")
	fs.IntVar(&opts.render.Height, "height", defaults.Height, "Image height in pixels")
	fs.IntVar(&opts.render.SamplesPerPixel, "samples", defaults.SamplesPerPixel, "Samples per pixel")
	fs.IntVar(&opts.render.MaxDepth, "depth", defaults.MaxDepth, "Maximum ray bounce depth")
	fs.IntVar(&opts.render.Workers, "workers", defaults.Workers, "Number of parallel workers (0 = auto-detect)")
	fs.Int64Var(&opts.render.Seed, "seed", defaults.Seed, "Random seed used with -fixed-seed")
	fs.BoolVar(&opts.render.FixedSeed, "fixed-seed", defaults.FixedSeed, "Reproducible output: seed scene and rows from -seed")
	fs.Usage = func() {
		fmt.Fprintln(output, "Weekend Raytracer")
		fmt.Fprintln(output, "Usage: raytracer [options]")
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if err := opts.render.Validate(); err != nil {
		return options{}, err
	}
	if _, err := imageio.FormatFromPath(opts.output); err != nil {
		return options{}, err
	}
	return opts, nil
}

// createScene builds the named scene. Random scenes use seed when fixed,
// otherwise the clock.
func createScene(name string, config renderer.RenderConfig) (*scene.Scene, error) {
	seed := config.Seed
	if !config.FixedSeed {
		seed = time.Now().UnixNano()
	}
	return scene.Open(name, rand.New(rand.NewSource(seed)))
}

func run(ctx context.Context, args []string, stdout io.Writer, logger *slog.Logger) error {
	opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	if opts.list {
		scenes, err := scene.ListAllScenes(opts.scenesDir)
		if err != nil {
			return err
		}
		for _, s := range scenes {
			fmt.Fprintf(stdout, "  %-24s %s\n", s.ID, s.Description)
		}
		return nil
	}

	totalTimer := profiler.StartTimer()

	sceneTimer := profiler.StartTimer()
	selectedScene, err := createScene(opts.sceneName, opts.render)
	if err != nil {
		return err
	}
	logger.Info("scene created",
		"scene", selectedScene.Name,
		"spheres", selectedScene.GetPrimitiveCount(),
		"took", profiler.FormatDuration(sceneTimer.Elapsed()))

	camera, err := selectedScene.NewCamera(opts.render.AspectRatio())
	if err != nil {
		return err
	}

	rowProfiler := profiler.New("Scan line stats", opts.render.Height)
	var remaining atomic.Int64
	remaining.Store(int64(opts.render.Height))
	opts.render.OnRowDone = func(row int, elapsed time.Duration) {
		rowProfiler.Add(elapsed)
		left := remaining.Add(-1)
		if opts.verbose {
			logger.Debug("scan line done", "row", row, "remaining", left, "took", elapsed)
		}
	}

	raytracer, err := renderer.NewRaytracer(selectedScene.World, camera, opts.render)
	if err != nil {
		return err
	}
	raytracer.SetIntegrator(integrator.NewPathTracingIntegrator(selectedScene.Background))
	raytracer.SetLogger(newSlogLogger(logger))

	buffer, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}
	imageGenTime := totalTimer.Elapsed()

	img := buffer.Image()
	logger.Info("writing image file", "path", opts.output)
	if err := imageio.WriteFile(opts.output, img); err != nil {
		return err
	}

	rowProfiler.Report(newSlogLogger(logger))
	logger.Info("render stats",
		"samples", stats.TotalSamples,
		"samples_per_second", fmt.Sprintf("%.0f", stats.SamplesPerSecond()),
		"workers", stats.Workers,
		"seed", stats.Seed,
		"average_luminance", fmt.Sprintf("%.3f", renderer.CalculateAverageLuminance(img)))
	logger.Info("done",
		"image_generation_time", profiler.FormatDuration(imageGenTime),
		"total_time", profiler.FormatDuration(totalTimer.Elapsed()))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if err := run(ctx, os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Error("render failed", "error", err)
		os.Exit(1)
	}
}
