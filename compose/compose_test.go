package compose

import (
	"errors"
	"testing"

	"textpix/pixbuf"
)

var (
	red   = pixbuf.Pixel{R: 255}
	green = pixbuf.Pixel{G: 255}
	blue  = pixbuf.Pixel{B: 255}
)

func TestBlendMeansChannels(t *testing.T) {
	out, err := Blend(pixbuf.Solid(1, 1, red), pixbuf.Solid(1, 1, green))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := out.At(0, 0); got != (pixbuf.Pixel{R: 127, G: 127, B: 0}) {
		t.Errorf("Expected (127,127,0), got %v", got)
	}
}

func TestBlendShapeMismatch(t *testing.T) {
	_, err := Blend(pixbuf.Solid(2, 2, red), pixbuf.Solid(2, 3, green))
	var shapeErr *pixbuf.ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("Expected ShapeError, got %v", err)
	}
}

func TestBlendUsesFirstMaxVal(t *testing.T) {
	a := pixbuf.SolidMax(1, 1, pixbuf.Pixel{R: 1000}, 1000)
	b := pixbuf.SolidMax(1, 1, pixbuf.Pixel{R: 0}, 500)
	out, err := Blend(a, b)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if out.MaxVal() != 1000 {
		t.Errorf("Expected first operand's maxVal 1000, got %d", out.MaxVal())
	}
	if got := out.At(0, 0); got.R != 500 {
		t.Errorf("Expected R=500, got %d", got.R)
	}
}

func TestInvert(t *testing.T) {
	out := Invert(pixbuf.Solid(1, 1, pixbuf.Pixel{R: 255, G: 100, B: 0}))
	if got := out.At(0, 0); got != (pixbuf.Pixel{R: 0, G: 155, B: 255}) {
		t.Errorf("Expected (0,155,255), got %v", got)
	}

	out = Invert(pixbuf.SolidMax(1, 1, pixbuf.Pixel{R: 7}, 1000))
	if got := out.At(0, 0); got.R != 993 {
		t.Errorf("Expected maxVal-relative inversion 993, got %d", got.R)
	}
}

func TestFlips(t *testing.T) {
	src := pixbuf.Generate(3, 2, 255, func(row, col int) pixbuf.Pixel {
		return pixbuf.Pixel{R: uint16(row), G: uint16(col)}
	})

	h := FlipHorizontal(src)
	if got := h.At(0, 0); got != (pixbuf.Pixel{R: 0, G: 2}) {
		t.Errorf("FlipHorizontal: expected col 2 at col 0, got %v", got)
	}

	v := FlipVertical(src)
	if got := v.At(0, 0); got != (pixbuf.Pixel{R: 1, G: 0}) {
		t.Errorf("FlipVertical: expected row 1 at row 0, got %v", got)
	}

	if !pixbuf.Equal(FlipHorizontal(h), src) {
		t.Error("Double horizontal flip should restore the source")
	}
	if !pixbuf.Equal(FlipVertical(v), src) {
		t.Error("Double vertical flip should restore the source")
	}
}

func TestBeside(t *testing.T) {
	out := Beside(pixbuf.Solid(2, 2, red), pixbuf.Solid(3, 2, blue))
	if out.Width() != 5 || out.Height() != 2 {
		t.Fatalf("Expected 5x2, got %dx%d", out.Width(), out.Height())
	}
	if got := out.At(1, 1); got != red {
		t.Errorf("Left half should be red, got %v", got)
	}
	if got := out.At(1, 2); got != blue {
		t.Errorf("Right half should be blue, got %v", got)
	}
}

func TestBesidePadsShorterOperand(t *testing.T) {
	out := Beside(pixbuf.Solid(1, 3, red), pixbuf.Solid(1, 1, blue))
	if out.Width() != 2 || out.Height() != 3 {
		t.Fatalf("Expected 2x3, got %dx%d", out.Width(), out.Height())
	}

	if got := out.At(0, 1); got != blue {
		t.Errorf("Expected blue at (0,1), got %v", got)
	}
	for row := 1; row < 3; row++ {
		if got := out.At(row, 1); got != pixbuf.Black {
			t.Errorf("Row %d past operand height should be black, got %v", row, got)
		}
	}
}

func TestAbove(t *testing.T) {
	out := Above(pixbuf.Solid(2, 2, red), pixbuf.Solid(3, 1, blue))
	if out.Width() != 3 || out.Height() != 3 {
		t.Fatalf("Expected 3x3, got %dx%d", out.Width(), out.Height())
	}

	if got := out.At(0, 0); got != red {
		t.Errorf("Top should be red, got %v", got)
	}
	if got := out.At(0, 2); got != pixbuf.Black {
		t.Errorf("Column past top width should be black, got %v", got)
	}
	if got := out.At(2, 2); got != blue {
		t.Errorf("Bottom should be blue, got %v", got)
	}
}

func TestTile(t *testing.T) {
	src := pixbuf.Solid(2, 3, green)

	if got := TileHorizontal(src, 0); got != src {
		t.Error("TileHorizontal n=0 should return the source unchanged")
	}
	if got := TileVertical(src, 0); got != src {
		t.Error("TileVertical n=0 should return the source unchanged")
	}

	h := TileHorizontal(src, 3)
	if h.Width() != 6 || h.Height() != 3 {
		t.Errorf("Expected 6x3, got %dx%d", h.Width(), h.Height())
	}

	v := TileVertical(src, 2)
	if v.Width() != 2 || v.Height() != 6 {
		t.Errorf("Expected 2x6, got %dx%d", v.Width(), v.Height())
	}
}

func TestCrop(t *testing.T) {
	src := pixbuf.Generate(4, 4, 255, func(row, col int) pixbuf.Pixel {
		return pixbuf.Pixel{R: uint16(row*4 + col)}
	})

	out := Crop(src, 1, 2, 2, 2)
	if out.Width() != 2 || out.Height() != 2 {
		t.Fatalf("Expected 2x2, got %dx%d", out.Width(), out.Height())
	}
	if got := out.At(0, 0); got.R != 9 {
		t.Errorf("Expected source (2,1) value 9, got %d", got.R)
	}
}

func TestCropClamps(t *testing.T) {
	src := pixbuf.Solid(4, 4, red)

	out := Crop(src, 3, 3, 10, 10)
	if out.Width() != 1 || out.Height() != 1 {
		t.Errorf("Expected clamp to 1x1, got %dx%d", out.Width(), out.Height())
	}

	out = Crop(src, 10, 10, 2, 2)
	if out.Width() != 0 || out.Height() != 0 {
		t.Errorf("Expected empty result, got %dx%d", out.Width(), out.Height())
	}

	out = Crop(src, -2, 0, 3, 4)
	if out.Width() != 3 || out.Height() != 4 {
		t.Errorf("Expected negative origin clamped to 3x4, got %dx%d", out.Width(), out.Height())
	}
}

func TestScale(t *testing.T) {
	src := pixbuf.Generate(2, 1, 255, func(_, col int) pixbuf.Pixel {
		return pixbuf.Pixel{R: uint16(col)}
	})

	out := Scale(src, 3)
	if out.Width() != 6 || out.Height() != 3 {
		t.Fatalf("Expected 6x3, got %dx%d", out.Width(), out.Height())
	}
	if got := out.At(2, 2); got.R != 0 {
		t.Errorf("Expected block of source (0,0), got %d", got.R)
	}
	if got := out.At(2, 3); got.R != 1 {
		t.Errorf("Expected block of source (0,1), got %d", got.R)
	}

	if got := Scale(src, 0); got != src {
		t.Error("Scale factor 0 should return the source unchanged")
	}
}

func TestOutputsSatisfyShapeInvariant(t *testing.T) {
	a := pixbuf.Solid(3, 2, red)
	b := pixbuf.Solid(2, 4, blue)

	outputs := []*pixbuf.Buffer{
		Invert(a), FlipHorizontal(a), FlipVertical(a),
		Beside(a, b), Above(a, b),
		TileHorizontal(a, 4), TileVertical(a, 4),
		Crop(a, 1, 1, 5, 5), Scale(a, 2),
	}

	for i, out := range outputs {
		for row := 0; row < out.Height(); row++ {
			for col := 0; col < out.Width(); col++ {
				if _, err := out.Get(row, col); err != nil {
					t.Fatalf("Output %d: cell (%d,%d) inaccessible: %v", i, row, col, err)
				}
			}
		}
	}
}
