package payloads

import (
	"image"
	"image/color"

	"github.com/nfnt/resize"
)

// NewTestImage builds a deterministic RGBA gradient, so resize payloads
// measure the same pixel data on every run.
func NewTestImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x),
				G: uint8(y),
				B: uint8(x ^ y),
				A: 255,
			})
		}
	}
	return img
}

// HalveImage scales img down to half its width and height with bilinear
// interpolation.
func HalveImage(img image.Image) image.Image {
	bounds := img.Bounds()
	return resize.Resize(uint(bounds.Dx()/2), uint(bounds.Dy()/2), img, resize.Bilinear)
}
