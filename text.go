package pixelsteg

import "github.com/ericlevine/pixelsteg/charset"

// EncodeText hides text in g, one byte per character in the named character
// set. An empty name selects ASCII; unrepresentable characters become '?'.
func EncodeText(g Grid, text, charsetName string, pixelsPerByte int) error {
	if charsetName == "" {
		charsetName = charset.ASCII.Name
	}
	payload, err := charset.Encode(text, charsetName)
	if err != nil {
		return err
	}
	return Encode(g, payload, pixelsPerByte)
}

// DecodeText recovers text hidden by EncodeText. An empty name guesses the
// character set from the recovered bytes.
func DecodeText(g Grid, charsetName string, pixelsPerByte int) (string, error) {
	payload, err := Decode(g, pixelsPerByte)
	if err != nil {
		return "", err
	}
	if charsetName == "" {
		return charset.Guess(payload).Decode(payload), nil
	}
	return charset.Decode(payload, charsetName)
}
