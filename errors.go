package pixelsteg

import "errors"

var (
	// ErrCapacityExceeded is returned when a payload does not fit in the
	// carrier at the configured pixels-per-byte ratio.
	ErrCapacityExceeded = errors.New("payload exceeds carrier capacity")

	// ErrInvalidConfiguration is returned when the pixels-per-byte ratio or the
	// carrier dimensions cannot be used, or when the ratio cannot represent a
	// payload byte.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
