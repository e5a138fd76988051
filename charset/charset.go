// Package charset maps text to and from single-byte character sets, one byte
// per character, so that text can be carried as a steganographic payload.
package charset

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrUnknownCharset indicates a character set name with no mapping.
var ErrUnknownCharset = errors.New("charset: unknown character set")

// Replacement is written for characters a character set cannot represent.
const Replacement = '?'

// Charset is a single-byte character set.
type Charset struct {
	Name    string
	Aliases []string

	cm *charmap.Charmap
	// max is the largest byte the set may produce; ASCII is ISO-8859-1
	// restricted to 0x7F.
	max byte
}

// pre-defined character sets
var (
	ASCII      = &Charset{"ASCII", []string{"US-ASCII"}, charmap.ISO8859_1, 0x7F}
	ISO8859_1  = &Charset{"ISO8859_1", []string{"ISO-8859-1", "latin1"}, charmap.ISO8859_1, 0xFF}
	ISO8859_15 = &Charset{"ISO8859_15", []string{"ISO-8859-15", "latin9"}, charmap.ISO8859_15, 0xFF}
	Cp437      = &Charset{"Cp437", []string{"IBM437"}, charmap.CodePage437, 0xFF}
	Cp1250     = &Charset{"Cp1250", []string{"windows-1250"}, charmap.Windows1250, 0xFF}
	Cp1251     = &Charset{"Cp1251", []string{"windows-1251"}, charmap.Windows1251, 0xFF}
	Cp1252     = &Charset{"Cp1252", []string{"windows-1252"}, charmap.Windows1252, 0xFF}
)

var nameToCharset map[string]*Charset

func init() {
	nameToCharset = make(map[string]*Charset)
	all := []*Charset{ASCII, ISO8859_1, ISO8859_15, Cp437, Cp1250, Cp1251, Cp1252}
	for _, cs := range all {
		nameToCharset[strings.ToLower(cs.Name)] = cs
		for _, alias := range cs.Aliases {
			nameToCharset[strings.ToLower(alias)] = cs
		}
	}
}

// Lookup returns the character set registered under name or one of its
// aliases, ignoring case.
func Lookup(name string) (*Charset, error) {
	cs, ok := nameToCharset[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownCharset)
	}
	return cs, nil
}

// Encode converts text to one byte per character. Characters outside the
// set become Replacement.
func (cs *Charset) Encode(text string) []byte {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		b, ok := cs.cm.EncodeRune(r)
		if !ok || b > cs.max {
			b = Replacement
		}
		out = append(out, b)
	}
	return out
}

// Decode converts bytes in the set to a UTF-8 string. Bytes above the set's
// range decode as Replacement.
func (cs *Charset) Decode(data []byte) string {
	if cs.max < 0xFF {
		clean := make([]byte, len(data))
		for i, b := range data {
			if b > cs.max {
				b = Replacement
			}
			clean[i] = b
		}
		data = clean
	}
	decoded, _, err := transform.Bytes(cs.cm.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

// Encode converts text using the character set called name.
func Encode(text, name string) ([]byte, error) {
	cs, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return cs.Encode(text), nil
}

// Decode converts data using the character set called name.
func Decode(data []byte, name string) (string, error) {
	cs, err := Lookup(name)
	if err != nil {
		return "", err
	}
	return cs.Decode(data), nil
}

// Guess picks a character set for data: ASCII when every byte is below 0x80,
// ISO8859_1 when none falls in the C1 control range 0x80-0x9F, and Cp1252
// otherwise.
func Guess(data []byte) *Charset {
	canBeASCII := true
	for _, b := range data {
		if b >= 0x80 && b < 0xA0 {
			return Cp1252
		}
		if b >= 0x80 {
			canBeASCII = false
		}
	}
	if canBeASCII {
		return ASCII
	}
	return ISO8859_1
}
