package pixelsteg

import (
	"errors"
	"testing"

	"github.com/ericlevine/pixelsteg/charset"
)

func TestTextRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name    string
		text    string
		charset string
		want    string
	}{
		{"ASCII", "hello world", "", "hello world"},
		{"ASCIIReplaces", "héllo wörld", "ASCII", "h?llo w?rld"},
		{"Latin1", "héllo wörld", "ISO-8859-1", "héllo wörld"},
		{"Cp1252", "price: 5€", "windows-1252", "price: 5€"},
		{"Unrepresentable", "日本", "ISO8859_1", "??"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			img := makeTestImage(64, 64)
			if err := EncodeText(NewGrid(img), tc.text, tc.charset, 8); err != nil {
				t.Fatalf("EncodeText: %v", err)
			}
			got, err := DecodeText(NewGrid(img), tc.charset, 8)
			if err != nil {
				t.Fatalf("DecodeText: %v", err)
			}
			if got != tc.want {
				t.Errorf("DecodeText = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDecodeTextGuess(t *testing.T) {
	img := makeTestImage(64, 64)
	if err := EncodeText(NewGrid(img), "naïve café", "latin1", 8); err != nil {
		t.Fatalf("EncodeText: %v", err)
	}
	got, err := DecodeText(NewGrid(img), "", 8)
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if got != "naïve café" {
		t.Errorf("DecodeText = %q, want %q", got, "naïve café")
	}
}

func TestEncodeTextUnknownCharset(t *testing.T) {
	img := makeTestImage(8, 8)
	if err := EncodeText(NewGrid(img), "x", "EBCDIC", 1); !errors.Is(err, charset.ErrUnknownCharset) {
		t.Errorf("EncodeText error = %v, want ErrUnknownCharset", err)
	}
	if _, err := DecodeText(NewGrid(img), "EBCDIC", 1); !errors.Is(err, charset.ErrUnknownCharset) {
		t.Errorf("DecodeText error = %v, want ErrUnknownCharset", err)
	}
}

func TestEncodeTextTooLong(t *testing.T) {
	img := makeGrayImage(64, 64)
	long := make([]byte, 129)
	for i := range long {
		long[i] = 'a'
	}
	if err := EncodeText(NewGrid(img), string(long), "", 32); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("EncodeText error = %v, want ErrCapacityExceeded", err)
	}
}
