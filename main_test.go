package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/imageio"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"random scene", "random", false},
		{"glass scene", "glass", false},
		{"default scene", "default", false},

		// Invalid scenes
		{"unknown scene", "cornell", true},
		{"missing scene file", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	config := renderer.DefaultRenderConfig()
	config.FixedSeed = true

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType, config)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if scene.GetPrimitiveCount() == 0 {
				t.Errorf("Scene '%s' should contain spheres", tt.sceneType)
			}
			if _, err := scene.NewCamera(config.AspectRatio()); err != nil {
				t.Errorf("Scene '%s' camera should be valid: %v", tt.sceneType, err)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-scene", "default", "-width", "64", "-height", "32",
		"-samples", "3", "-depth", "7", "-workers", "2", "-seed", "9", "-fixed-seed", "-out", "x.png"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}

	got := opts.render
	if got.Width != 64 || got.Height != 32 || got.SamplesPerPixel != 3 || got.MaxDepth != 7 ||
		got.Workers != 2 || got.Seed != 9 || !got.FixedSeed {
		t.Errorf("Unexpected render config %+v", got)
	}
	if opts.sceneName != "default" || opts.output != "x.png" {
		t.Errorf("Unexpected scene/output: %q %q", opts.sceneName, opts.output)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"help", []string{"-help"}, flag.ErrHelp},
		{"zero samples", []string{"-samples", "0"}, core.ErrInvalidRenderConfig},
		{"bad extension", []string{"-out", "image.bmp"}, imageio.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args, io.Discard)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := parseFlags([]string{"extra"}, io.Discard); err == nil {
		t.Error("Expected error for positional arguments")
	}
}

func TestRun_WritesPPM(t *testing.T) {
	out := filepath.Join(t.TempDir(), "render.ppm")
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	args := []string{"-scene", "default", "-width", "8", "-height", "4", "-samples", "2",
		"-depth", "5", "-fixed-seed", "-out", out}
	if err := run(context.Background(), args, io.Discard, logger); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "P3\n8 4\n255\n") {
		t.Errorf("Unexpected PPM header: %q", string(data[:min(len(data), 20)]))
	}
	if lines := strings.Count(string(data), "\n"); lines != 3+8*4 {
		t.Errorf("Expected %d lines, got %d", 3+8*4, lines)
	}

	img, format, err := imageio.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if format != "ppm" || img.Bounds() != image.Rect(0, 0, 8, 4) {
		t.Errorf("Unexpected image %s %v", format, img.Bounds())
	}

	for _, want := range []string{"scene created", "Scan line stats", "Minimum time"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("Log output missing %q", want)
		}
	}
}

func TestRun_List(t *testing.T) {
	var stdout bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := run(context.Background(), []string{"-list", "-scenes-dir", t.TempDir()}, &stdout, logger); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, id := range []string{"random", "glass", "default"} {
		if !strings.Contains(stdout.String(), id) {
			t.Errorf("Scene list missing %q:\n%s", id, stdout.String())
		}
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := filepath.Join(t.TempDir(), "render.ppm")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := run(ctx, []string{"-scene", "default", "-width", "8", "-height", "4", "-out", out}, io.Discard, logger)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("No image should be written for a cancelled render")
	}
}
