package pixelsteg

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Grid is a rectangular pixel buffer addressed by linear row-major index, the
// pixel at (x, y) having index y*Width()+x. Channel values are 8-bit.
//
// The codec mutates a Grid in place and keeps no reference to it after a call
// returns. Callers must not share a Grid with another reader or writer for the
// duration of a call.
type Grid interface {
	// Width returns the number of pixels per row.
	Width() int

	// Height returns the number of rows.
	Height() int

	// RGB returns the red, green and blue channels of pixel i.
	RGB(i int) (r, g, b uint8)

	// SetGreen replaces the green channel of pixel i, leaving the other
	// channels untouched.
	SetGreen(i int, g uint8)
}

// ImageGrid is a Grid that reads and writes pixels one at a time through the
// draw.Image interface. The image must use one of the RGBA, NRGBA, RGBA64 or
// NRGBA64 color models; others, such as gray or paletted images, would
// quantise the green channel, and the codec rejects them. For *image.NRGBA
// and *image.RGBA the RawBuffer view is considerably faster and produces the
// same pixels.
type ImageGrid struct {
	img    draw.Image
	bounds image.Rectangle
	// premultiplied is set for images whose stored channels are alpha
	// premultiplied; their channels are read and written as stored.
	premultiplied bool
}

// NewImageGrid creates an indexed Grid over img.
func NewImageGrid(img draw.Image) *ImageGrid {
	return &ImageGrid{
		img:           img,
		bounds:        img.Bounds(),
		premultiplied: img.ColorModel() == color.RGBAModel,
	}
}

// Width returns the width of the image.
func (g *ImageGrid) Width() int {
	return g.bounds.Dx()
}

// Height returns the height of the image.
func (g *ImageGrid) Height() int {
	return g.bounds.Dy()
}

// RGB returns the channels of pixel i.
func (g *ImageGrid) RGB(i int) (r, gr, b uint8) {
	c := g.at(g.point(i))
	return c.R, c.G, c.B
}

// SetGreen replaces the green channel of pixel i.
func (g *ImageGrid) SetGreen(i int, green uint8) {
	x, y := g.point(i)
	c := g.at(x, y)
	c.G = green
	if g.premultiplied {
		g.img.Set(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		return
	}
	g.img.Set(x, y, c)
}

func (g *ImageGrid) point(i int) (x, y int) {
	w := g.bounds.Dx()
	return g.bounds.Min.X + i%w, g.bounds.Min.Y + i/w
}

// at returns the stored channels of the pixel at (x, y). For premultiplied
// images the fields hold the premultiplied values.
func (g *ImageGrid) at(x, y int) color.NRGBA {
	if g.premultiplied {
		c := color.RGBAModel.Convert(g.img.At(x, y)).(color.RGBA)
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	}
	return color.NRGBAModel.Convert(g.img.At(x, y)).(color.NRGBA)
}

// check rejects images whose color model would not store an arbitrary 8-bit
// green channel exactly.
func (g *ImageGrid) check() error {
	switch g.img.ColorModel() {
	case color.RGBAModel, color.NRGBAModel, color.RGBA64Model, color.NRGBA64Model:
		return nil
	}
	return fmt.Errorf("color model of %T cannot hold 8-bit RGB channels: %w", g.img, ErrInvalidConfiguration)
}

// RawBuffer is a Grid backed by an interleaved byte buffer. Pix[0] holds the
// first channel of the pixel at Rect.Min, rows are Stride bytes apart and
// pixels BytesPerPixel bytes apart. The green channel is at offset 1 of each
// pixel and red and blue at offsets 0 and 2, in either order, so RGBA, NRGBA
// and BGRA layouts all qualify.
type RawBuffer struct {
	Pix           []uint8
	Stride        int
	BytesPerPixel int
	Rect          image.Rectangle
}

// NewRawBuffer returns a RawBuffer sharing the pixel memory of img when img
// is an *image.NRGBA or *image.RGBA. Otherwise it returns false.
func NewRawBuffer(img image.Image) (*RawBuffer, bool) {
	switch m := img.(type) {
	case *image.NRGBA:
		return &RawBuffer{Pix: m.Pix, Stride: m.Stride, BytesPerPixel: 4, Rect: m.Rect}, true
	case *image.RGBA:
		return &RawBuffer{Pix: m.Pix, Stride: m.Stride, BytesPerPixel: 4, Rect: m.Rect}, true
	}
	return nil, false
}

// NewGrid returns the raw view of img when one exists and an ImageGrid
// otherwise.
func NewGrid(img draw.Image) Grid {
	if raw, ok := NewRawBuffer(img); ok {
		return raw
	}
	return NewImageGrid(img)
}

// Width returns the number of pixels per row.
func (m *RawBuffer) Width() int {
	return m.Rect.Dx()
}

// Height returns the number of rows.
func (m *RawBuffer) Height() int {
	return m.Rect.Dy()
}

// RGB returns the channels of pixel i.
func (m *RawBuffer) RGB(i int) (r, g, b uint8) {
	off := m.offset(i)
	return m.Pix[off], m.Pix[off+1], m.Pix[off+2]
}

// SetGreen replaces the green channel of pixel i.
func (m *RawBuffer) SetGreen(i int, g uint8) {
	m.Pix[m.offset(i)+1] = g
}

func (m *RawBuffer) offset(i int) int {
	w := m.Rect.Dx()
	return (i/w)*m.Stride + (i%w)*m.BytesPerPixel
}

// check verifies that the buffer holds every pixel of Rect.
func (m *RawBuffer) check() error {
	w, h := m.Rect.Dx(), m.Rect.Dy()
	if m.BytesPerPixel < 3 {
		return fmt.Errorf("%d bytes per pixel, need at least 3: %w", m.BytesPerPixel, ErrInvalidConfiguration)
	}
	if m.Stride < w*m.BytesPerPixel {
		return fmt.Errorf("stride %d shorter than a row of %d pixels: %w", m.Stride, w, ErrInvalidConfiguration)
	}
	if need := (h-1)*m.Stride + w*m.BytesPerPixel; len(m.Pix) < need {
		return fmt.Errorf("buffer of %d bytes, need %d: %w", len(m.Pix), need, ErrInvalidConfiguration)
	}
	return nil
}
