// Package codec reads and writes the ASCII pixmap text format: an optional
// "P3" magic token, width and height, an optional max channel value, then
// width*height RGB triples in row-major order, with #-led line comments and
// free whitespace between tokens.
package codec

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"textpix/pixbuf"
)

// Magic is the optional leading format token. The parser accepts its
// absence; the serializer always emits it.
const Magic = "P3"

// FormatError reports malformed or incomplete pixmap text. It is always
// recoverable and returned to the caller, never raised.
type FormatError struct {
	Msg string
	Err error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// Decode parses pixmap text from r into a validated buffer.
func Decode(r io.Reader) (*pixbuf.Buffer, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &FormatError{Msg: "could not read pixmap text", Err: err}
	}
	return DecodeString(string(raw))
}

// DecodeString parses pixmap text into a validated buffer.
//
// The max channel value token is disambiguated by lookahead: a token after
// the dimensions counts as the max channel value only if it parses into
// 1..65535 and at least width*height*3 tokens remain after it. Otherwise it
// is the first red channel and the max channel value defaults to 255.
// Token counts must match the dimensions exactly; both missing and excess
// channel values are format errors.
func DecodeString(s string) (*pixbuf.Buffer, error) {
	tokens := tokenize(s)
	pos := 0

	if pos < len(tokens) && tokens[pos] == Magic {
		pos++
	}

	width, ok := intToken(tokens, pos)
	if !ok || width < 0 {
		return nil, &FormatError{Msg: "missing width/height"}
	}
	pos++

	height, ok := intToken(tokens, pos)
	if !ok || height < 0 {
		return nil, &FormatError{Msg: "missing width/height"}
	}
	pos++

	need := width * height * 3

	maxVal := pixbuf.DefaultMaxVal
	if v, ok := intToken(tokens, pos); ok && v >= 1 && v <= pixbuf.MaxChannelDepth && len(tokens)-pos-1 >= need {
		maxVal = v
		pos++
	}

	rest := tokens[pos:]
	if len(rest) < need {
		return nil, &FormatError{Msg: fmt.Sprintf("insufficient pixel data: have %d of %d channel values", len(rest), need)}
	}
	if len(rest) > need {
		return nil, &FormatError{Msg: fmt.Sprintf("excess pixel data: %d tokens past %d channel values", len(rest)-need, need)}
	}

	pix := make([]pixbuf.Pixel, width*height)
	for i := range pix {
		var chans [3]uint16
		for c := 0; c < 3; c++ {
			v, err := strconv.Atoi(rest[i*3+c])
			if err != nil {
				return nil, &FormatError{Msg: fmt.Sprintf("pixel %d channel %s: bad token %q", i, channelName(c), rest[i*3+c]), Err: err}
			}
			if v < 0 || v > maxVal {
				return nil, &FormatError{Msg: fmt.Sprintf("pixel %d channel %s: value %d outside 0..%d", i, channelName(c), v, maxVal)}
			}
			chans[c] = uint16(v)
		}
		pix[i] = pixbuf.Pixel{R: chans[0], G: chans[1], B: chans[2]}
	}

	buf, err := pixbuf.New(width, height, maxVal, pix)
	if err != nil {
		return nil, &FormatError{Msg: "could not assemble buffer", Err: err}
	}
	return buf, nil
}

// MustDecode is DecodeString for trusted literals, panicking on any format
// error. It is a convenience wrapper outside the error-returning contract.
func MustDecode(s string) *pixbuf.Buffer {
	buf, err := DecodeString(s)
	if err != nil {
		panic(fmt.Sprintf("codec: invalid pixmap literal: %v", err))
	}
	return buf
}

// tokenize strips #-led comments per line, then splits the whole input on
// whitespace. A comment never spans lines.
func tokenize(s string) []string {
	var sb strings.Builder
	for len(s) > 0 {
		line := s
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			line, s = s[:i+1], s[i+1:]
		} else {
			s = ""
		}
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return strings.Fields(sb.String())
}

func intToken(tokens []string, pos int) (int, bool) {
	if pos >= len(tokens) {
		return 0, false
	}
	v, err := strconv.Atoi(tokens[pos])
	if err != nil {
		return 0, false
	}
	return v, true
}

func channelName(c int) string {
	return [...]string{"red", "green", "blue"}[c]
}
