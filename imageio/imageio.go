// Package imageio loads carrier images into memory and writes them back in a
// lossless format.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var (
	// ErrLossyFormat is returned when asked to save in a format that would
	// alter pixel values.
	ErrLossyFormat = errors.New("imageio: lossy format cannot carry a payload")

	// ErrUnsupportedFormat is returned for file extensions with no encoder.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")
)

// Format is a lossless output format.
type Format int

const (
	FormatPNG Format = iota
	FormatBMP
	FormatTIFF
	FormatQOI
)

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	case FormatQOI:
		return "qoi"
	default:
		return "unknown"
	}
}

// FormatFor maps the extension of path to an output format.
func FormatFor(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	case ".qoi":
		return FormatQOI, nil
	case ".jpg", ".jpeg", ".gif":
		return 0, fmt.Errorf("%s: %w", ext, ErrLossyFormat)
	default:
		return 0, fmt.Errorf("%q: %w", ext, ErrUnsupportedFormat)
	}
}

// ToNRGBA copies src into a new *image.NRGBA whose bounds start at (0,0).
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Read decodes an image in any registered format (PNG, BMP, TIFF, QOI, JPEG,
// GIF) and returns it as NRGBA with the format name.
func Read(r io.Reader) (*image.NRGBA, string, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	if m, ok := img.(*image.NRGBA); ok && m.Rect.Min == (image.Point{}) {
		return m, name, nil
	}
	return ToNRGBA(img), name, nil
}

// Load reads the image file at path.
func Load(path string) (*image.NRGBA, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, name, err := Read(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return img, name, nil
}

// Write encodes img in format f.
func Write(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatQOI:
		return qoi.Encode(w, img)
	default:
		return fmt.Errorf("format %d: %w", f, ErrUnsupportedFormat)
	}
}

// Save writes img to path in the format implied by its extension.
func Save(path string, img image.Image) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(out, img, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
