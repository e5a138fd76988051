package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
)

func makeTestImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x * 17) ^ (y * 31)),
				G: uint8((x * 43) + (y * 13)),
				B: uint8((x * 7) ^ (y * 11)),
				A: 255,
			})
		}
	}
	return img
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  error
	}{
		{"a.png", FormatPNG, nil},
		{"dir/A.PNG", FormatPNG, nil},
		{"a.bmp", FormatBMP, nil},
		{"a.tif", FormatTIFF, nil},
		{"a.tiff", FormatTIFF, nil},
		{"a.qoi", FormatQOI, nil},
		{"a.jpg", 0, ErrLossyFormat},
		{"a.jpeg", 0, ErrLossyFormat},
		{"a.gif", 0, ErrLossyFormat},
		{"a.webp", 0, ErrUnsupportedFormat},
		{"noext", 0, ErrUnsupportedFormat},
	}
	for _, tc := range tests {
		got, err := FormatFor(tc.path)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Errorf("FormatFor(%q) error = %v, want %v", tc.path, err, tc.err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("FormatFor(%q) = %v, %v, want %v", tc.path, got, err, tc.want)
		}
	}
}

func TestSaveLoadLossless(t *testing.T) {
	dir := t.TempDir()
	src := makeTestImage(23, 17)
	for _, name := range []string{"c.png", "c.bmp", "c.tiff", "c.qoi"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, src); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, _, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.Bounds() != src.Bounds() {
				t.Fatalf("bounds = %v, want %v", got.Bounds(), src.Bounds())
			}
			for y := 0; y < 17; y++ {
				for x := 0; x < 23; x++ {
					if g, w := got.NRGBAAt(x, y), src.NRGBAAt(x, y); g != w {
						t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, g, w)
					}
				}
			}
		})
	}
}

func TestSaveLossy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.jpg")
	if err := Save(path, makeTestImage(4, 4)); !errors.Is(err, ErrLossyFormat) {
		t.Fatalf("Save error = %v, want ErrLossyFormat", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Save created %s", path)
	}
}

func TestReadJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, makeTestImage(16, 8), nil); err != nil {
		t.Fatal(err)
	}
	img, name, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if name != "jpeg" {
		t.Errorf("format = %q, want jpeg", name)
	}
	if img.Bounds() != image.Rect(0, 0, 16, 8) {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestToNRGBAOrigin(t *testing.T) {
	src := makeTestImage(10, 10).SubImage(image.Rect(2, 3, 8, 9))
	dst := ToNRGBA(src)
	if dst.Bounds() != image.Rect(0, 0, 6, 6) {
		t.Fatalf("bounds = %v", dst.Bounds())
	}
	if got, want := dst.NRGBAAt(0, 0), src.At(2, 3).(color.NRGBA); got != want {
		t.Errorf("pixel (0,0) = %v, want %v", got, want)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.png")); !os.IsNotExist(err) {
		t.Errorf("Load error = %v, want not-exist", err)
	}
}
