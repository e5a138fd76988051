// Package pixelsteg hides byte payloads in the green channel of raster images.
//
// Each payload byte is spread over a fixed number of consecutive pixels
// (pixels per byte). Every pixel in a group carries a small partial value
// written as the distance between its green channel and the average of its
// red and blue channels; the partials of a group sum to the byte. The stream
// written to the carrier is the payload padded with zero bytes up to the
// carrier's capacity, so the first zero byte read back ends the payload.
package pixelsteg

import (
	"math"
	"math/bits"
)

// DefaultPixelsPerByte is the ratio used by the command-line tool when none is
// given. Larger values lower capacity and keep each green delta smaller.
const DefaultPixelsPerByte = 32

// Capacity returns the largest payload, in bytes, that a width x height
// carrier can hold at pixelsPerByte pixels per byte. The result saturates at
// math.MaxInt instead of overflowing. Non-positive arguments yield 0.
func Capacity(width, height, pixelsPerByte int) int {
	if width <= 0 || height <= 0 || pixelsPerByte <= 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(width), uint64(height))
	d := uint64(pixelsPerByte)
	if hi >= d {
		// quotient does not fit in 64 bits
		return math.MaxInt
	}
	q, _ := bits.Div64(hi, lo, d)
	if q > math.MaxInt {
		return math.MaxInt
	}
	return int(q)
}
