package pixelsteg

import (
	"fmt"
	"math"
)

// paddedStream is the byte sequence written to a carrier: the payload followed
// by zero fill up to capacity plus one zero terminator. Bytes past the payload
// are produced on demand.
type paddedStream struct {
	payload []byte
	n       int
}

func newPaddedStream(payload []byte, capacity int) paddedStream {
	n := capacity + 1
	if capacity == math.MaxInt {
		n = capacity
	}
	return paddedStream{payload: payload, n: n}
}

// Len returns the number of bytes in the stream: capacity+1, or capacity when
// capacity saturated at math.MaxInt.
func (s paddedStream) Len() int {
	return s.n
}

// At returns byte c of the stream; indexes past the payload read as zero.
func (s paddedStream) At(c int) byte {
	if c < len(s.payload) {
		return s.payload[c]
	}
	return 0
}

// validate rejects ratios and carriers the codec cannot work with.
func validate(g Grid, pixelsPerByte int) error {
	if pixelsPerByte <= 0 {
		return fmt.Errorf("pixels per byte must be positive, got %d: %w", pixelsPerByte, ErrInvalidConfiguration)
	}
	if w, h := g.Width(), g.Height(); w <= 0 || h <= 0 {
		return fmt.Errorf("carrier is %dx%d: %w", w, h, ErrInvalidConfiguration)
	}
	switch m := g.(type) {
	case *RawBuffer:
		return m.check()
	case *ImageGrid:
		return m.check()
	}
	return nil
}

// Encode writes payload into the green channel of g, pixelsPerByte pixels per
// byte, in row-major order. Every pixel up to the end of the padded stream is
// rewritten, including those carrying the zero fill.
//
// Encode fails with ErrInvalidConfiguration for a non-positive ratio or an
// empty carrier, for an ImageGrid whose color model cannot hold 8-bit RGB
// channels, and when a payload byte leaves a partial above 128 (b itself at
// a ratio of 1, b - (b/ratio)*(ratio-1) in general, so bytes above 0x80 can
// fail at ratios from 130 up).
// It fails with ErrCapacityExceeded when len(payload) exceeds
// Capacity(g.Width(), g.Height(), pixelsPerByte). In both cases g is left
// untouched.
//
// A zero byte inside payload is indistinguishable from padding: Decode stops
// at the first one.
func Encode(g Grid, payload []byte, pixelsPerByte int) error {
	if err := validate(g, pixelsPerByte); err != nil {
		return err
	}
	capacity := Capacity(g.Width(), g.Height(), pixelsPerByte)
	if len(payload) > capacity {
		return fmt.Errorf("payload of %d bytes, capacity %d at %d pixels per byte: %w",
			len(payload), capacity, pixelsPerByte, ErrCapacityExceeded)
	}
	for i, b := range payload {
		if !representable(b, pixelsPerByte) {
			return fmt.Errorf("byte %#02x at offset %d cannot be carried at %d pixels per byte: %w",
				b, i, pixelsPerByte, ErrInvalidConfiguration)
		}
	}

	s := newPaddedStream(payload, capacity)
	if raw, ok := g.(*RawBuffer); ok {
		encodeRaw(raw, s, pixelsPerByte)
		return nil
	}
	encodeIndexed(g, s, pixelsPerByte)
	return nil
}

// encodeIndexed addresses every pixel through the Grid interface. The stream
// normally runs one byte past the last whole group; the loop stops at the
// first pixel outside the carrier.
func encodeIndexed(g Grid, s paddedStream, pixelsPerByte int) {
	w, h := g.Width(), g.Height()
	for c := 0; c < s.Len(); c++ {
		b := s.At(c)
		for i := 0; i < pixelsPerByte; i++ {
			p := c*pixelsPerByte + i
			if p/w >= h {
				return
			}
			r, _, bl := g.RGB(p)
			g.SetGreen(p, embedGreen(r, bl, partialAt(b, pixelsPerByte, i)))
		}
	}
}

// encodeRaw walks the buffer row by row, producing the same pixels as
// encodeIndexed.
func encodeRaw(m *RawBuffer, s paddedStream, pixelsPerByte int) {
	w, h := m.Rect.Dx(), m.Rect.Dy()
	c, i := 0, 0
	b := s.At(0)
	for y := 0; y < h; y++ {
		off := y * m.Stride
		for x := 0; x < w; x++ {
			if c >= s.Len() {
				return
			}
			px := m.Pix[off : off+3 : off+3]
			px[1] = embedGreen(px[0], px[2], partialAt(b, pixelsPerByte, i))
			off += m.BytesPerPixel
			if i++; i == pixelsPerByte {
				i = 0
				c++
				b = s.At(c)
			}
		}
	}
}
