// Package envelope prepares payloads for a carrier and recovers them: it
// optionally compresses and password-encrypts the plaintext and armors the
// result so it contains no zero bytes.
//
// Sealed layout before armoring:
//
//	version(1) | flags(1) | salt(16) | nonce(12) | body
//
// salt and nonce are present only when the encrypted flag is set. body is the
// plaintext, zstd compressed when the compressed flag is set, then sealed
// with AES-256-GCM when encrypted, the header serving as additional data.
// The whole frame is encoded with standard base64.
package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/pbkdf2"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

const (
	version = 1

	flagCompressed = 1 << 0
	flagEncrypted  = 1 << 1

	headerSize = 2
	saltSize   = 16
	nonceSize  = 12
	keySize    = 32

	// Iterations is the PBKDF2-SHA256 work factor used to derive keys.
	Iterations = 100000

	maxDecodedSize = 64 << 20
)

var (
	// ErrMalformed indicates input that is not a sealed envelope.
	ErrMalformed = errors.New("envelope: malformed input")

	// ErrPassword indicates an encrypted envelope opened with a wrong or
	// empty password, or a tampered one.
	ErrPassword = errors.New("envelope: wrong password or corrupt data")
)

// Options selects the transformations applied by Seal. Open reads them from
// the envelope and only needs the Password.
type Options struct {
	// Password enables AES-256-GCM encryption when non-empty.
	Password string

	// Compress enables zstd compression before encryption.
	Compress bool
}

// Seal transforms plain according to opts and returns base64 text.
func Seal(plain []byte, opts Options) ([]byte, error) {
	frame := []byte{version, 0}
	body := plain
	if opts.Compress {
		frame[1] |= flagCompressed
		compressed, err := compress(plain)
		if err != nil {
			return nil, err
		}
		body = compressed
	}
	if opts.Password != "" {
		frame[1] |= flagEncrypted
		salt := make([]byte, saltSize)
		nonce := make([]byte, nonceSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, err
		}
		if _, err := rand.Read(nonce); err != nil {
			return nil, err
		}
		frame = append(frame, salt...)
		frame = append(frame, nonce...)
		aead, err := newAEAD(opts.Password, salt)
		if err != nil {
			return nil, err
		}
		body = aead.Seal(nil, nonce, body, frame)
	}
	frame = append(frame, body...)

	out := make([]byte, base64.StdEncoding.EncodedLen(len(frame)))
	base64.StdEncoding.Encode(out, frame)
	return out, nil
}

// Open reverses Seal. opts.Compress is ignored; the envelope records it.
func Open(sealed []byte, opts Options) ([]byte, error) {
	frame := make([]byte, base64.StdEncoding.DecodedLen(len(sealed)))
	n, err := base64.StdEncoding.Decode(frame, sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	frame = frame[:n]
	if len(frame) < headerSize {
		return nil, fmt.Errorf("%w: %d byte frame", ErrMalformed, len(frame))
	}
	if frame[0] != version {
		return nil, fmt.Errorf("%w: version %d", ErrMalformed, frame[0])
	}
	flags := frame[1]
	if flags&^(flagCompressed|flagEncrypted) != 0 {
		return nil, fmt.Errorf("%w: flags %#x", ErrMalformed, flags)
	}

	body := frame[headerSize:]
	if flags&flagEncrypted != 0 {
		if len(body) < saltSize+nonceSize {
			return nil, fmt.Errorf("%w: truncated encryption header", ErrMalformed)
		}
		if opts.Password == "" {
			return nil, fmt.Errorf("%w: envelope is encrypted", ErrPassword)
		}
		salt := body[:saltSize]
		nonce := body[saltSize : saltSize+nonceSize]
		aad := frame[:headerSize+saltSize+nonceSize]
		aead, err := newAEAD(opts.Password, salt)
		if err != nil {
			return nil, err
		}
		plain, err := aead.Open(nil, nonce, body[saltSize+nonceSize:], aad)
		if err != nil {
			return nil, ErrPassword
		}
		body = plain
	}
	if flags&flagCompressed != 0 {
		return decompress(body)
	}
	return body, nil
}

func newAEAD(password string, salt []byte) (cipher.AEAD, error) {
	key, err := pbkdf2.Key(sha256.New, password, salt, Iterations, keySize)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecodedSize))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	plain, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", ErrMalformed, err)
	}
	return plain, nil
}
