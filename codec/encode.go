package codec

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"textpix/pixbuf"
)

// Encode writes b in canonical pixmap text: magic, dimensions and max
// channel value on their own lines, then one row of triples per line.
// Decoding the output reproduces an equal buffer.
func Encode(w io.Writer, b *pixbuf.Buffer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n%d\n", Magic, b.Width(), b.Height(), b.MaxVal())

	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			if col > 0 {
				bw.WriteByte(' ')
			}
			p := b.At(row, col)
			fmt.Fprintf(bw, "%d %d %d", p.R, p.G, p.B)
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not write pixmap text: %w", err)
	}
	return nil
}

// EncodeString is Encode into a string.
func EncodeString(b *pixbuf.Buffer) string {
	var sb strings.Builder
	_ = Encode(&sb, b) // strings.Builder never fails
	return sb.String()
}
