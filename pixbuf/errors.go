package pixbuf

import "fmt"

// ShapeError reports pixel data that does not match the declared buffer
// dimensions, or two buffers whose dimensions disagree in a shape-sensitive
// operation.
type ShapeError struct {
	Msg string
}

func (e *ShapeError) Error() string {
	return "shape mismatch: " + e.Msg
}

// RangeError reports a max channel value outside the representable 1..65535
// range.
type RangeError struct {
	MaxVal int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("max channel value %d outside 1..65535", e.MaxVal)
}

// IndexError reports an out-of-bounds coordinate passed to Get or Set.
type IndexError struct {
	Row, Col      int
	Width, Height int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("coordinate (%d,%d) outside %dx%d buffer", e.Row, e.Col, e.Width, e.Height)
}
