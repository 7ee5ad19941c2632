package pixbuf

// Pixel is an RGB triple with 16-bit channel depth. Channel values are not
// range-constrained by the type itself; buffers enforce their declared max
// channel value at decode boundaries.
type Pixel struct {
	R, G, B uint16
}

var (
	Black = Pixel{0, 0, 0}
	White = Pixel{255, 255, 255}
)

// To8Bit rescales p from the 0..maxVal channel range to 0..255 by rounding
// linear interpolation. It is a pure projection for display and export
// consumers and never touches the source buffer.
func To8Bit(p Pixel, maxVal int) Pixel {
	return Pixel{
		R: rescale255(p.R, maxVal),
		G: rescale255(p.G, maxVal),
		B: rescale255(p.B, maxVal),
	}
}

func rescale255(v uint16, maxVal int) uint16 {
	return uint16((int(v)*255 + maxVal/2) / maxVal)
}
