// Package canvas is the procedural rasterization surface: a private mutable
// pixel store driven by imperative drawing primitives and frozen into an
// immutable pixbuf.Buffer by Finalize.
//
// Every primitive clips silently at the canvas edges; shapes may extend past
// the bounds without error. That is deliberately the opposite of the strict
// pixbuf accessor contract, which reports out-of-bounds coordinates.
package canvas

import (
	"fmt"
	"math"

	"textpix/pixbuf"
)

// Canvas is a drawing session over a mutable staging buffer. Primitives
// return the receiver so calls can chain. After Finalize the session is
// over; further drawing mutates only the staging copy and is by contract
// not to be relied on.
type Canvas struct {
	width  int
	height int
	maxVal int
	pix    []pixbuf.Pixel
}

// New opens a drawing session with every cell preset to background.
func New(width, height, maxVal int, background pixbuf.Pixel) *Canvas {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("canvas: negative dimensions %dx%d", width, height))
	}
	if maxVal < 1 || maxVal > pixbuf.MaxChannelDepth {
		panic(fmt.Sprintf("canvas: max channel value %d outside 1..65535", maxVal))
	}

	c := &Canvas{
		width:  width,
		height: height,
		maxVal: maxVal,
		pix:    make([]pixbuf.Pixel, width*height),
	}
	return c.Fill(background)
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// SetPixel writes one cell. Off-canvas coordinates are a silent no-op.
func (c *Canvas) SetPixel(x, y int, color pixbuf.Pixel) *Canvas {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		c.pix[y*c.width+x] = color
	}
	return c
}

// Fill overwrites every cell.
func (c *Canvas) Fill(color pixbuf.Pixel) *Canvas {
	for i := range c.pix {
		c.pix[i] = color
	}
	return c
}

// Rect fills the axis-aligned box [x, x+w) x [y, y+h).
func (c *Canvas) Rect(x, y, w, h int, color pixbuf.Pixel) *Canvas {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			c.SetPixel(xx, yy, color)
		}
	}
	return c
}

// Circle fills the disc of the given radius around (cx, cy), testing
// squared distance over the bounding box.
func (c *Canvas) Circle(cx, cy, radius int, color pixbuf.Pixel) *Canvas {
	for yy := cy - radius; yy <= cy+radius; yy++ {
		for xx := cx - radius; xx <= cx+radius; xx++ {
			dx, dy := xx-cx, yy-cy
			if dx*dx+dy*dy <= radius*radius {
				c.SetPixel(xx, yy, color)
			}
		}
	}
	return c
}

// Ellipse fills the axis-aligned ellipse with radii rx, ry around (cx, cy).
func (c *Canvas) Ellipse(cx, cy, rx, ry int, color pixbuf.Pixel) *Canvas {
	for yy := cy - ry; yy <= cy+ry; yy++ {
		for xx := cx - rx; xx <= cx+rx; xx++ {
			dx, dy := xx-cx, yy-cy
			if dx*dx*ry*ry+dy*dy*rx*rx <= rx*rx*ry*ry {
				c.SetPixel(xx, yy, color)
			}
		}
	}
	return c
}

// Border draws the frame of the [x, x+w) x [y, y+h) rectangle: the top and
// bottom thickness rows and the left and right thickness columns, leaving
// the interior untouched.
func (c *Canvas) Border(x, y, w, h, thickness int, color pixbuf.Pixel) *Canvas {
	c.Rect(x, y, w, thickness, color)
	c.Rect(x, y+h-thickness, w, thickness, color)
	c.Rect(x, y, thickness, h, color)
	c.Rect(x+w-thickness, y, thickness, h, color)
	return c
}

// Line draws the integer Bresenham segment from (x1, y1) to (x2, y2)
// inclusive, symmetric in either direction.
func (c *Canvas) Line(x1, y1, x2, y2 int, color pixbuf.Pixel) *Canvas {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx + dy
	x, y := x1, y1
	for {
		c.SetPixel(x, y, color)
		if x == x2 && y == y2 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return c
}

// HorizGradient sweeps from c1 at the left edge to c2 at the right edge.
func (c *Canvas) HorizGradient(c1, c2 pixbuf.Pixel) *Canvas {
	return c.gradient(c1, c2, func(x, _ int) int {
		return spread(x, c.width-1)
	})
}

// VertGradient sweeps from c1 at the top edge to c2 at the bottom edge.
func (c *Canvas) VertGradient(c1, c2 pixbuf.Pixel) *Canvas {
	return c.gradient(c1, c2, func(_, y int) int {
		return spread(y, c.height-1)
	})
}

// DiagGradient sweeps from c1 at the top-left corner to c2 at the
// bottom-right, constant along anti-diagonals.
func (c *Canvas) DiagGradient(c1, c2 pixbuf.Pixel) *Canvas {
	return c.gradient(c1, c2, func(x, y int) int {
		return spread(x+y, c.width+c.height-2)
	})
}

// RadialGradient sweeps from c1 at the center to c2 at the farthest corner.
func (c *Canvas) RadialGradient(c1, c2 pixbuf.Pixel) *Canvas {
	cx := float64(c.width-1) / 2
	cy := float64(c.height-1) / 2
	maxDist := math.Hypot(cx, cy)

	return c.gradient(c1, c2, func(x, y int) int {
		if maxDist == 0 {
			return 0
		}
		t := int(math.Hypot(float64(x)-cx, float64(y)-cy) * 255 / maxDist)
		return min(t, 255)
	})
}

// Checkerboard fills the canvas with cellSize x cellSize squares alternating
// between c1 and c2, c1 first. Cell sizes below 1 are a no-op.
func (c *Canvas) Checkerboard(cellSize int, c1, c2 pixbuf.Pixel) *Canvas {
	if cellSize < 1 {
		return c
	}
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			if (x/cellSize+y/cellSize)%2 == 0 {
				c.SetPixel(x, y, c1)
			} else {
				c.SetPixel(x, y, c2)
			}
		}
	}
	return c
}

// Finalize snapshots the staging buffer into an immutable pixbuf.Buffer.
// The snapshot is non-destructive; it does not observe later drawing.
func (c *Canvas) Finalize() *pixbuf.Buffer {
	return pixbuf.Generate(c.width, c.height, c.maxVal, func(row, col int) pixbuf.Pixel {
		return c.pix[row*c.width+col]
	})
}

// gradient paints every cell with the integer lerp of c1 and c2 at the
// parameter tf yields for it, tf in 0..255.
func (c *Canvas) gradient(c1, c2 pixbuf.Pixel, tf func(x, y int) int) *Canvas {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			c.pix[y*c.width+x] = lerp(c1, c2, tf(x, y))
		}
	}
	return c
}

// spread maps position 0..extent to 0..255, with t=0 on degenerate extents
// so a one-cell axis never divides by zero.
func spread(pos, extent int) int {
	if extent < 1 {
		return 0
	}
	return pos * 255 / extent
}

func lerp(c1, c2 pixbuf.Pixel, t int) pixbuf.Pixel {
	mix := func(a, b uint16) uint16 {
		return uint16((int(a)*(255-t) + int(b)*t) / 255)
	}
	return pixbuf.Pixel{R: mix(c1.R, c2.R), G: mix(c1.G, c2.G), B: mix(c1.B, c2.B)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
