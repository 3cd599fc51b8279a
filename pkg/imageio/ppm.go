package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

// ErrMalformedPPM is returned when a PPM stream cannot be parsed
var ErrMalformedPPM = errors.New("malformed PPM")

func init() {
	image.RegisterFormat("ppm", "P3", DecodePPM, DecodePPMConfig)
	image.RegisterFormat("ppm", "P6", DecodePPM, DecodePPMConfig)
}

// EncodePPM writes img as ASCII PPM (P3): a "P3\n{w} {h}\n255\n" header followed
// by one "R G B" line per pixel, top row first.
func EncodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	line := make([]byte, 0, 12)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			line = strconv.AppendUint(line[:0], uint64(c.R), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(c.G), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(c.B), 10)
			line = append(line, '\n')
			if _, err := bw.Write(line); err != nil {
				return fmt.Errorf("failed to write PPM pixels: %w", err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM pixels: %w", err)
	}
	return nil
}

type ppmHeader struct {
	magic  string
	width  int
	height int
	maxVal int
}

// DecodePPM reads an ASCII (P3) or binary (P6) PPM image
func DecodePPM(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	header, err := readPPMHeader(br)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, header.width, header.height))
	scale := func(v int) uint8 {
		return uint8((v*255 + header.maxVal/2) / header.maxVal)
	}

	for y := 0; y < header.height; y++ {
		for x := 0; x < header.width; x++ {
			var rgb [3]int
			for c := range rgb {
				if header.magic == "P3" {
					rgb[c], err = readPPMInt(br)
				} else {
					rgb[c], err = readPPMBinarySample(br, header.maxVal)
				}
				if err != nil {
					return nil, fmt.Errorf("%w: pixel (%d,%d): %w", ErrMalformedPPM, x, y, err)
				}
				if rgb[c] > header.maxVal {
					return nil, fmt.Errorf("%w: sample %d exceeds max value %d", ErrMalformedPPM, rgb[c], header.maxVal)
				}
			}
			img.SetRGBA(x, y, color.RGBA{R: scale(rgb[0]), G: scale(rgb[1]), B: scale(rgb[2]), A: 255})
		}
	}
	return img, nil
}

// DecodePPMConfig returns the dimensions of a PPM image without reading the pixels
func DecodePPMConfig(r io.Reader) (image.Config, error) {
	header, err := readPPMHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      header.width,
		Height:     header.height,
	}, nil
}

func readPPMHeader(br *bufio.Reader) (ppmHeader, error) {
	magic := make([]byte, 2)
	if _, err := io.ReadFull(br, magic); err != nil {
		return ppmHeader{}, fmt.Errorf("%w: %w", ErrMalformedPPM, err)
	}

	header := ppmHeader{magic: string(magic)}
	if header.magic != "P3" && header.magic != "P6" {
		return ppmHeader{}, fmt.Errorf("%w: unsupported magic %q", ErrMalformedPPM, header.magic)
	}

	var err error
	fields := []*int{&header.width, &header.height, &header.maxVal}
	for _, field := range fields {
		if *field, err = readPPMInt(br); err != nil {
			return ppmHeader{}, fmt.Errorf("%w: header: %w", ErrMalformedPPM, err)
		}
	}
	if header.width <= 0 || header.height <= 0 {
		return ppmHeader{}, fmt.Errorf("%w: invalid size %dx%d", ErrMalformedPPM, header.width, header.height)
	}
	if header.maxVal <= 0 || header.maxVal > 65535 {
		return ppmHeader{}, fmt.Errorf("%w: invalid max value %d", ErrMalformedPPM, header.maxVal)
	}

	if header.magic == "P6" {
		// Exactly one whitespace byte separates the header from binary data
		if _, err := br.ReadByte(); err != nil {
			return ppmHeader{}, fmt.Errorf("%w: %w", ErrMalformedPPM, err)
		}
	}
	return header, nil
}

// readPPMInt reads the next decimal token, skipping whitespace and # comments
func readPPMInt(br *bufio.Reader) (int, error) {
	var digits []byte
	for {
		b, err := br.ReadByte()
		if err == io.EOF && len(digits) > 0 {
			break
		}
		if err != nil {
			return 0, err
		}

		switch {
		case b >= '0' && b <= '9':
			digits = append(digits, b)
			continue
		case b == '#' && len(digits) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return 0, err
			}
			continue
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			if len(digits) == 0 {
				continue
			}
		default:
			return 0, fmt.Errorf("unexpected byte %q", b)
		}
		break
	}
	return strconv.Atoi(string(digits))
}

func readPPMBinarySample(br *bufio.Reader, maxVal int) (int, error) {
	hi, err := br.ReadByte()
	if err != nil {
		return 0, err
	}
	if maxVal < 256 {
		return int(hi), nil
	}
	lo, err := br.ReadByte()
	if err != nil {
		return 0, err
	}
	return int(hi)<<8 | int(lo), nil
}
