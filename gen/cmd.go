// Package gen is the procedural generation command: it drives the canvas
// primitives and buffer composition from the command line and writes the
// result as a text pixmap or a binary raster image.
package gen

import (
	"fmt"
	"os"
	"path/filepath"

	"textpix/canvas"
	"textpix/codec"
	"textpix/compose"
	"textpix/export"
	"textpix/pixbuf"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Out    string `help:"Output file" default:"out.ppm" type:"path"`
	Width  int    `help:"Canvas width" default:"256"`
	Height int    `help:"Canvas height" default:"256"`
	MaxVal int    `help:"Max channel value" default:"255"`
	Kind   string `help:"Pattern to draw" enum:"hgradient,vgradient,dgradient,rgradient,checker,disc,rings,demo" default:"demo"`
	From   string `help:"First color as #RGB or #RRGGBB" default:"#000"`
	To     string `help:"Second color as #RGB or #RRGGBB" default:"#FFF"`
	Cell   int    `help:"Checkerboard cell size" default:"8"`
	Tile   int    `help:"Tile the result this many times in each direction" default:"0"`
	Mirror bool   `help:"Append a horizontally mirrored copy"`
	Invert bool   `help:"Invert the final image"`
	Scale  int    `help:"Nearest-neighbor upscale factor" default:"0"`
	Format string `help:"Output encoding" enum:"text,gif,jpeg,png,bmp,tiff" default:"text"`

	c1, c2 pixbuf.Pixel
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("invalid canvas dimensions %dx%d", c.Width, c.Height)
	}
	if c.MaxVal < 1 || c.MaxVal > pixbuf.MaxChannelDepth {
		return fmt.Errorf("invalid max channel value: %d", c.MaxVal)
	}

	var err error
	if c.c1, err = parseHexToPixel(c.From, c.MaxVal); err != nil {
		return err
	}
	if c.c2, err = parseHexToPixel(c.To, c.MaxVal); err != nil {
		return err
	}
	return nil
}

func (c *CLICmd) Run() error {
	buf := c.draw().Finalize()

	if c.Mirror {
		buf = compose.Beside(buf, compose.FlipHorizontal(buf))
	}
	if c.Tile > 0 {
		buf = compose.TileVertical(compose.TileHorizontal(buf, c.Tile), c.Tile)
	}
	if c.Invert {
		buf = compose.Invert(buf)
	}
	if c.Scale > 0 {
		buf = compose.Scale(buf, c.Scale)
	}

	if c.Format == "text" {
		return writeText(c.Out, buf)
	}
	return export.Save(export.ToImage(buf), c.Format, filepath.Dir(c.Out), export.DestName(filepath.Base(c.Out), c.Format))
}

func (c *CLICmd) draw() *canvas.Canvas {
	cv := canvas.New(c.Width, c.Height, c.MaxVal, c.c1)
	cx, cy := c.Width/2, c.Height/2
	radius := min(c.Width, c.Height)/2 - 1

	switch c.Kind {
	case "hgradient":
		cv.HorizGradient(c.c1, c.c2)
	case "vgradient":
		cv.VertGradient(c.c1, c.c2)
	case "dgradient":
		cv.DiagGradient(c.c1, c.c2)
	case "rgradient":
		cv.RadialGradient(c.c1, c.c2)
	case "checker":
		cv.Checkerboard(c.Cell, c.c1, c.c2)
	case "disc":
		cv.Circle(cx, cy, radius, c.c2)
	case "rings":
		for r := radius; r > 0; r -= 2 {
			color := c.c2
			if r/2%2 == 0 {
				color = c.c1
			}
			cv.Circle(cx, cy, r, color)
		}
	case "demo":
		cv.DiagGradient(c.c1, c.c2).
			Ellipse(cx, cy, c.Width/3, c.Height/4, c.c1).
			Circle(cx, cy, min(c.Width, c.Height)/6, c.c2).
			Line(0, 0, c.Width-1, c.Height-1, c.c2).
			Line(0, c.Height-1, c.Width-1, 0, c.c2).
			Border(0, 0, c.Width, c.Height, 2, c.c2)
	}
	return cv
}

func writeText(path string, buf *pixbuf.Buffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create output file %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("could not close output file %q: %w", path, closeErr)
		}
	}()

	if err = codec.Encode(f, buf); err != nil {
		return fmt.Errorf("could not encode pixmap %q: %w", path, err)
	}
	return err
}

// parseHexToPixel reads #RGB or #RRGGBB and rescales the 8-bit channels to
// the canvas max channel value.
func parseHexToPixel(s string, maxVal int) (pixbuf.Pixel, error) {
	var r, g, b uint16
	switch len(s) {
	case 4:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x", &r, &g, &b)
		if err != nil {
			return pixbuf.Pixel{}, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 3 {
			return pixbuf.Pixel{}, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}

		r |= r << 4
		g |= g << 4
		b |= b << 4
	case 7:
		n, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
		if err != nil {
			return pixbuf.Pixel{}, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 3 {
			return pixbuf.Pixel{}, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}
	default:
		return pixbuf.Pixel{}, fmt.Errorf("invalid color %q, should be #RGB or #RRGGBB", s)
	}

	scale := func(v uint16) uint16 {
		return uint16(int(v) * maxVal / 255)
	}
	return pixbuf.Pixel{R: scale(r), G: scale(g), B: scale(b)}, nil
}
