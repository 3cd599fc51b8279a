// Command imgconvert converts rendered images between PPM, PNG, JPEG and TIFF.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/df07/go-weekend-raytracer/pkg/imageio"
)

func run(args []string, output io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("imgconvert", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(output, "Usage: imgconvert <input> <output>")
		fmt.Fprintln(output, "Formats are chosen by extension: .ppm .png .jpg .jpeg .tif .tiff")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("expected 2 arguments, got %d", fs.NArg())
	}
	in, out := fs.Arg(0), fs.Arg(1)

	img, format, err := imageio.ReadFile(in)
	if err != nil {
		return err
	}
	logger.Info("decoded image", "path", in, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	if err := imageio.WriteFile(out, img); err != nil {
		return err
	}
	logger.Info("wrote image", "path", out)
	return nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(os.Args[1:], os.Stderr, logger); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Error("conversion failed", "error", err)
		os.Exit(1)
	}
}
