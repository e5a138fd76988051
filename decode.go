package pixelsteg

// assembler sums partials into bytes until it meets a zero byte. It keeps a
// running sum rather than the partials themselves, so its size does not
// depend on the ratio.
type assembler struct {
	pixelsPerByte int
	count         int
	sum           int
	out           []byte
}

func newAssembler(pixelsPerByte int) *assembler {
	return &assembler{pixelsPerByte: pixelsPerByte}
}

// add accumulates one partial and reports whether the terminator has been
// read.
func (a *assembler) add(partial int) bool {
	a.sum += partial
	if a.count++; a.count < a.pixelsPerByte {
		return false
	}
	v := byte(a.sum)
	a.count, a.sum = 0, 0
	if v == 0 {
		return true
	}
	a.out = append(a.out, v)
	return false
}

// Decode reads the payload hidden in g by Encode with the same pixelsPerByte.
// It stops at the first zero byte, which is not included in the result, or
// when the pixels run out, returning whatever was assembled.
//
// Decode cannot tell a carrier written with another ratio, or never written
// at all, from a real one; such carriers yield arbitrary bytes, not an error.
// The only failure is ErrInvalidConfiguration for a non-positive ratio, an
// empty carrier or an ImageGrid over an image that is not RGBA-family. g is
// not modified.
func Decode(g Grid, pixelsPerByte int) ([]byte, error) {
	if err := validate(g, pixelsPerByte); err != nil {
		return nil, err
	}
	a := newAssembler(pixelsPerByte)
	if raw, ok := g.(*RawBuffer); ok {
		decodeRaw(raw, a)
	} else {
		decodeIndexed(g, a)
	}
	if a.out == nil {
		return []byte{}, nil
	}
	return a.out, nil
}

func decodeIndexed(g Grid, a *assembler) {
	n := g.Width() * g.Height()
	for p := 0; p < n; p++ {
		if a.add(extractPartial(g.RGB(p))) {
			return
		}
	}
}

func decodeRaw(m *RawBuffer, a *assembler) {
	w, h := m.Rect.Dx(), m.Rect.Dy()
	for y := 0; y < h; y++ {
		off := y * m.Stride
		for x := 0; x < w; x++ {
			if a.add(extractPartial(m.Pix[off], m.Pix[off+1], m.Pix[off+2])) {
				return
			}
			off += m.BytesPerPixel
		}
	}
}
