package renderer

import (
	"image"
	"image/color"
)

// PixelBuffer holds quantized pixels in scan order: row 0 is the bottom of the
// image, matching the camera's t coordinate. Writers flip it for output.
type PixelBuffer struct {
	width  int
	height int
	pixels []color.RGBA
}

// NewPixelBuffer allocates a black buffer
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		width:  width,
		height: height,
		pixels: make([]color.RGBA, width*height),
	}
}

// Width returns the buffer width in pixels
func (pb *PixelBuffer) Width() int { return pb.width }

// Height returns the buffer height in pixels
func (pb *PixelBuffer) Height() int { return pb.height }

// At returns pixel (i, j) with j counted from the bottom row
func (pb *PixelBuffer) At(i, j int) color.RGBA {
	return pb.pixels[j*pb.width+i]
}

// Set stores pixel (i, j) with j counted from the bottom row.
// Distinct rows may be written concurrently.
func (pb *PixelBuffer) Set(i, j int, c color.RGBA) {
	pb.pixels[j*pb.width+i] = c
}

// Image returns the buffer as an image with the top row first
func (pb *PixelBuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, pb.width, pb.height))
	for j := 0; j < pb.height; j++ {
		y := pb.height - 1 - j
		for i := 0; i < pb.width; i++ {
			img.SetRGBA(i, y, pb.At(i, j))
		}
	}
	return img
}
