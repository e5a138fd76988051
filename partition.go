package pixelsteg

// maxPartial is the largest delta that can be applied to any baseline without
// leaving [0,255]: baselines >= 128 are lowered, smaller ones raised.
const maxPartial = 128

// Partials splits b into pixelsPerByte deltas that sum to b. All but the last
// delta equal b/pixelsPerByte; the last absorbs the remainder. It returns nil
// when pixelsPerByte is not positive.
func Partials(b byte, pixelsPerByte int) []int {
	if pixelsPerByte <= 0 {
		return nil
	}
	partials := make([]int, pixelsPerByte)
	for i := range partials {
		partials[i] = partialAt(b, pixelsPerByte, i)
	}
	return partials
}

// Recombine is the inverse of Partials: the sum of the partials truncated to a
// byte.
func Recombine(partials []int) byte {
	var sum int
	for _, p := range partials {
		sum += p
	}
	return byte(sum)
}

// partialAt returns the i-th element of Partials(b, pixelsPerByte) without
// allocating.
func partialAt(b byte, pixelsPerByte, i int) int {
	base := int(b) / pixelsPerByte
	if i == pixelsPerByte-1 {
		return int(b) - base*(pixelsPerByte-1)
	}
	return base
}

// representable reports whether every partial of b can be written to a green
// channel and read back unchanged. Only the last partial can exceed
// maxPartial: at a ratio of 1 it is b itself, and at large ratios, where
// b/pixelsPerByte is small, it keeps most of b.
func representable(b byte, pixelsPerByte int) bool {
	return partialAt(b, pixelsPerByte, pixelsPerByte-1) <= maxPartial
}

func baseline(r, b uint8) int {
	return (int(r) + int(b)) / 2
}

// embedGreen returns the green value carrying partial for a pixel with the
// given red and blue channels.
func embedGreen(r, b uint8, partial int) uint8 {
	base := baseline(r, b)
	if base >= 128 {
		return uint8(base - partial)
	}
	return uint8(base + partial)
}

// extractPartial reads the partial carried by a pixel.
func extractPartial(r, g, b uint8) int {
	d := int(g) - baseline(r, b)
	if d < 0 {
		d = -d
	}
	return d
}
