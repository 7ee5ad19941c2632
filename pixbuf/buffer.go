// Package pixbuf holds the in-memory raster image model: a fixed-size
// row-major pixel buffer with validated dimensions and a declared max
// channel value.
package pixbuf

import "fmt"

// MaxChannelDepth is the representational ceiling for channel values and
// max channel values, fixed at 16-bit depth.
const MaxChannelDepth = 65535

// DefaultMaxVal is the max channel value assumed when none is given.
const DefaultMaxVal = 255

// Buffer is an immutable raster image: width*height pixels stored row-major
// (row 0 first, left to right within a row). The only way to obtain a Buffer
// is through the constructors in this package, which are the single
// validation choke point for the length and range invariants; nothing
// re-checks them afterwards.
type Buffer struct {
	width  int
	height int
	maxVal int
	pix    []Pixel
}

// New builds a Buffer from pre-assembled pixel data. It returns a
// *ShapeError when len(pix) differs from width*height and a *RangeError when
// maxVal falls outside 1..65535. The pixel slice is copied, never retained.
func New(width, height, maxVal int, pix []Pixel) (*Buffer, error) {
	if width < 0 || height < 0 {
		return nil, &ShapeError{Msg: fmt.Sprintf("negative dimensions %dx%d", width, height)}
	}
	if len(pix) != width*height {
		return nil, &ShapeError{Msg: fmt.Sprintf("pixel count %d does not match dimensions %dx%d", len(pix), width, height)}
	}
	if maxVal < 1 || maxVal > MaxChannelDepth {
		return nil, &RangeError{MaxVal: maxVal}
	}

	return &Buffer{
		width:  width,
		height: height,
		maxVal: maxVal,
		pix:    append([]Pixel(nil), pix...),
	}, nil
}

// Generate builds a width x height Buffer by evaluating f at every (row,
// col) coordinate in row-major order. It is the trusted constructor for
// programmatic producers and panics on dimensions or maxVal that New would
// reject.
func Generate(width, height, maxVal int, f func(row, col int) Pixel) *Buffer {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("pixbuf: negative dimensions %dx%d", width, height))
	}
	if maxVal < 1 || maxVal > MaxChannelDepth {
		panic(fmt.Sprintf("pixbuf: max channel value %d outside 1..65535", maxVal))
	}

	pix := make([]Pixel, width*height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			pix[row*width+col] = f(row, col)
		}
	}

	return &Buffer{
		width:  width,
		height: height,
		maxVal: maxVal,
		pix:    pix,
	}
}

// Solid builds a uniform buffer of p with max channel value 255.
func Solid(width, height int, p Pixel) *Buffer {
	return SolidMax(width, height, p, DefaultMaxVal)
}

// SolidMax builds a uniform buffer of p with an explicit max channel value.
func SolidMax(width, height int, p Pixel, maxVal int) *Buffer {
	return Generate(width, height, maxVal, func(int, int) Pixel { return p })
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// MaxVal returns the declared max channel value of the buffer.
func (b *Buffer) MaxVal() int { return b.maxVal }

// Get returns the pixel at zero-based (row, col), or an *IndexError if
// either coordinate is out of bounds. There is no clamping.
func (b *Buffer) Get(row, col int) (Pixel, error) {
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		return Pixel{}, &IndexError{Row: row, Col: col, Width: b.width, Height: b.height}
	}
	return b.pix[row*b.width+col], nil
}

// Set overwrites the pixel at zero-based (row, col), with the same bounds
// contract as Get. It is meant for owners of a freshly constructed buffer;
// a buffer handed to other consumers is treated as immutable by convention.
func (b *Buffer) Set(row, col int, p Pixel) error {
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		return &IndexError{Row: row, Col: col, Width: b.width, Height: b.height}
	}
	b.pix[row*b.width+col] = p
	return nil
}

// At is the unchecked accessor for callers that have already proven both
// coordinates in range, such as loops bounded by Width and Height. Use Get
// for checked access.
func (b *Buffer) At(row, col int) Pixel {
	return b.pix[row*b.width+col]
}

// Map returns a new buffer with f applied to every pixel. Shape and max
// channel value carry over.
func (b *Buffer) Map(f func(Pixel) Pixel) *Buffer {
	return Generate(b.width, b.height, b.maxVal, func(row, col int) Pixel {
		return f(b.At(row, col))
	})
}

// MapIndexed is Map with the (row, col) coordinate supplied to f, for
// procedural coordinate-dependent color generation.
func (b *Buffer) MapIndexed(f func(row, col int, p Pixel) Pixel) *Buffer {
	return Generate(b.width, b.height, b.maxVal, func(row, col int) Pixel {
		return f(row, col, b.At(row, col))
	})
}

// Equal reports whether a and b have the same dimensions, max channel value
// and pixel sequence.
func Equal(a, b *Buffer) bool {
	if a.width != b.width || a.height != b.height || a.maxVal != b.maxVal {
		return false
	}
	for i := range a.pix {
		if a.pix[i] != b.pix[i] {
			return false
		}
	}
	return true
}
