package pixelsteg

import (
	"math"
	"testing"
)

func TestCapacity(t *testing.T) {
	tests := []struct {
		name                 string
		width, height, ratio int
		want                 int
	}{
		{"Gray64", 64, 64, 32, 128},
		{"OnePixel", 1, 1, 32, 0},
		{"OnePerPixel", 10, 7, 1, 70},
		{"Remainder", 17, 13, 8, 27},
		{"ZeroWidth", 0, 10, 1, 0},
		{"NegativeHeight", 10, -1, 1, 0},
		{"ZeroRatio", 10, 10, 0, 0},
		{"Large", 1 << 40, 1 << 40, 1 << 20, 1 << 60},
		{"Saturated", math.MaxInt, math.MaxInt, 1, math.MaxInt},
		{"SaturatedAfterDivide", math.MaxInt, 4, 2, math.MaxInt},
		{"ExactMax", math.MaxInt, 2, 2, math.MaxInt},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Capacity(tc.width, tc.height, tc.ratio); got != tc.want {
				t.Errorf("Capacity(%d, %d, %d) = %d, want %d", tc.width, tc.height, tc.ratio, got, tc.want)
			}
		})
	}
}
