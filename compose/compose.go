// Package compose provides pure buffer-to-buffer image operations. Every
// function returns a freshly built buffer and leaves its operands untouched.
// When two operands carry different max channel values, the result uses the
// first operand's.
package compose

import (
	"fmt"

	"textpix/pixbuf"
)

// background pads rows and columns that have no source pixel in Beside and
// Above.
var background = pixbuf.Black

// Blend averages a and b per channel with integer division. The operands
// must have equal width and height; a mismatch is a *pixbuf.ShapeError,
// never a silent pass-through.
func Blend(a, b *pixbuf.Buffer) (*pixbuf.Buffer, error) {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return nil, &pixbuf.ShapeError{
			Msg: fmt.Sprintf("cannot blend %dx%d with %dx%d", a.Width(), a.Height(), b.Width(), b.Height()),
		}
	}

	return a.MapIndexed(func(row, col int, p pixbuf.Pixel) pixbuf.Pixel {
		q := b.At(row, col)
		return pixbuf.Pixel{
			R: uint16((int(p.R) + int(q.R)) / 2),
			G: uint16((int(p.G) + int(q.G)) / 2),
			B: uint16((int(p.B) + int(q.B)) / 2),
		}
	}), nil
}

// Invert maps every channel v to maxVal-v. Channels above the declared max
// (possible only in trusted programmatic buffers) clamp to zero.
func Invert(img *pixbuf.Buffer) *pixbuf.Buffer {
	maxVal := img.MaxVal()
	inv := func(v uint16) uint16 {
		return uint16(max(maxVal-int(v), 0))
	}
	return img.Map(func(p pixbuf.Pixel) pixbuf.Pixel {
		return pixbuf.Pixel{R: inv(p.R), G: inv(p.G), B: inv(p.B)}
	})
}

// FlipHorizontal mirrors column order.
func FlipHorizontal(img *pixbuf.Buffer) *pixbuf.Buffer {
	w := img.Width()
	return img.MapIndexed(func(row, col int, _ pixbuf.Pixel) pixbuf.Pixel {
		return img.At(row, w-1-col)
	})
}

// FlipVertical mirrors row order.
func FlipVertical(img *pixbuf.Buffer) *pixbuf.Buffer {
	h := img.Height()
	return img.MapIndexed(func(row, col int, _ pixbuf.Pixel) pixbuf.Pixel {
		return img.At(h-1-row, col)
	})
}

// Beside places a and b side by side. The result is a.Width+b.Width wide and
// max(a.Height, b.Height) tall; rows past an operand's height are filled
// with the opaque black background rather than rejected.
func Beside(a, b *pixbuf.Buffer) *pixbuf.Buffer {
	w := a.Width() + b.Width()
	h := max(a.Height(), b.Height())

	return pixbuf.Generate(w, h, a.MaxVal(), func(row, col int) pixbuf.Pixel {
		if col < a.Width() {
			if row < a.Height() {
				return a.At(row, col)
			}
			return background
		}
		if row < b.Height() {
			return b.At(row, col-a.Width())
		}
		return background
	})
}

// Above stacks a on top of b, the vertical mirror of Beside with the same
// background padding policy.
func Above(a, b *pixbuf.Buffer) *pixbuf.Buffer {
	w := max(a.Width(), b.Width())
	h := a.Height() + b.Height()

	return pixbuf.Generate(w, h, a.MaxVal(), func(row, col int) pixbuf.Pixel {
		if row < a.Height() {
			if col < a.Width() {
				return a.At(row, col)
			}
			return background
		}
		if col < b.Width() {
			return b.At(row-a.Height(), col)
		}
		return background
	})
}

// TileHorizontal lays n copies of img in a row. n=0 returns img unchanged.
func TileHorizontal(img *pixbuf.Buffer, n int) *pixbuf.Buffer {
	res := img
	for i := 0; i < max(n-1, 0); i++ {
		res = Beside(res, img)
	}
	return res
}

// TileVertical stacks n copies of img. n=0 returns img unchanged.
func TileVertical(img *pixbuf.Buffer, n int) *pixbuf.Buffer {
	res := img
	for i := 0; i < max(n-1, 0); i++ {
		res = Above(res, img)
	}
	return res
}

// Crop extracts the w x h window at (x, y). Coordinates and extents outside
// the source clamp to it, so the result may be smaller than requested but
// the call never fails.
func Crop(img *pixbuf.Buffer, x, y, w, h int) *pixbuf.Buffer {
	x = min(max(x, 0), img.Width())
	y = min(max(y, 0), img.Height())
	outW := max(min(w, img.Width()-x), 0)
	outH := max(min(h, img.Height()-y), 0)

	return pixbuf.Generate(outW, outH, img.MaxVal(), func(row, col int) pixbuf.Pixel {
		return img.At(y+row, x+col)
	})
}

// Scale is a nearest-neighbor integer upscale: every source pixel becomes a
// factor x factor block. Factors below 1 return img unchanged.
func Scale(img *pixbuf.Buffer, factor int) *pixbuf.Buffer {
	if factor < 1 {
		return img
	}

	return pixbuf.Generate(img.Width()*factor, img.Height()*factor, img.MaxVal(), func(row, col int) pixbuf.Pixel {
		return img.At(row/factor, col/factor)
	})
}
