package board

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedOrientation is matched by every error a builder returns for a
	// side and rotation it cannot be placed with.
	ErrUnsupportedOrientation = errors.New("unsupported orientation")
	// ErrInvalidParameter marks builder or placement parameters that fail their
	// preconditions.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// OrientationError reports the builder and orientation that were rejected.
type OrientationError struct {
	Key      string // cache key of the builder
	Side     Side
	Rotation Rotation
	Reason   string // optional detail
}

// NewOrientationError returns an *OrientationError for the given builder key.
func NewOrientationError(key string, side Side, rot Rotation, reason string) *OrientationError {
	return &OrientationError{Key: key, Side: side, Rotation: rot, Reason: reason}
}

func (e *OrientationError) Error() string {
	msg := fmt.Sprintf("%s: %s side=%s rotation=%s", ErrUnsupportedOrientation, e.Key, e.Side, e.Rotation)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Is makes errors.Is(err, ErrUnsupportedOrientation) hold.
func (e *OrientationError) Is(target error) bool {
	return target == ErrUnsupportedOrientation
}

// Invalidf wraps ErrInvalidParameter with a formatted message.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
