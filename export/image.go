// Package export bridges pixel buffers to the Go image ecosystem: buffer to
// image.Image conversion and back, encoder dispatch for binary raster
// formats, and the resize and palette post-processing steps of the convert
// pipeline.
package export

import (
	"image"
	"image/color"

	"textpix/pixbuf"
)

// ToImage renders b as a 16-bit RGBA image, rescaling channels from the
// buffer's max channel value to the full 0..65535 range.
func ToImage(b *pixbuf.Buffer) *image.RGBA64 {
	maxVal := uint32(b.MaxVal())
	img := image.NewRGBA64(image.Rect(0, 0, b.Width(), b.Height()))

	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			p := b.At(row, col)
			img.SetRGBA64(col, row, color.RGBA64{
				R: rescale16(p.R, maxVal),
				G: rescale16(p.G, maxVal),
				B: rescale16(p.B, maxVal),
				A: 0xFFFF,
			})
		}
	}
	return img
}

// FromImage samples img into a buffer with max channel value 65535. Alpha is
// discarded; colors arrive alpha-premultiplied from the color model.
func FromImage(img image.Image) *pixbuf.Buffer {
	bounds := img.Bounds()

	return pixbuf.Generate(bounds.Dx(), bounds.Dy(), pixbuf.MaxChannelDepth, func(row, col int) pixbuf.Pixel {
		r, g, b, _ := img.At(bounds.Min.X+col, bounds.Min.Y+row).RGBA()
		return pixbuf.Pixel{R: uint16(r), G: uint16(g), B: uint16(b)}
	})
}

func rescale16(v uint16, maxVal uint32) uint16 {
	x := uint32(v)
	if x > maxVal {
		x = maxVal
	}
	return uint16((x*0xFFFF + maxVal/2) / maxVal)
}
