package spritestudio

import (
	"errors"
	"fmt"

	"github.com/tanema/gween/ease"
)

// Interpolation selects the easing curve used between two keyframes.
type Interpolation uint8

const (
	InterpolationLinear       Interpolation = iota // rate = t
	InterpolationStep                              // no blending; rate = 0
	InterpolationAcceleration                      // rate = t²
	InterpolationDeceleration                      // rate = -(t-1)² + 1
	InterpolationHermite                           // not supported
	InterpolationBezier                            // not supported
)

// ErrUnsupportedInterpolation is returned when a keyframe asks for a curve
// that has no implementation (Hermite, Bezier).
var ErrUnsupportedInterpolation = errors.New("spritestudio: unsupported interpolation")

var interpolationNames = [...]string{
	InterpolationLinear:       "linear",
	InterpolationStep:         "step",
	InterpolationAcceleration: "acceleration",
	InterpolationDeceleration: "deceleration",
	InterpolationHermite:      "hermite",
	InterpolationBezier:       "bezier",
}

func (i Interpolation) String() string {
	if int(i) < len(interpolationNames) {
		return interpolationNames[i]
	}
	return fmt.Sprintf("Interpolation(%d)", uint8(i))
}

// ParseInterpolation maps an authored curve name to its Interpolation.
func ParseInterpolation(name string) (Interpolation, error) {
	for i, n := range interpolationNames {
		if n == name {
			return Interpolation(i), nil
		}
	}
	return InterpolationLinear, fmt.Errorf("%w: %q", ErrUnknownInterpolation, name)
}

// CalcRate maps a normalized time t to a blend factor in [0, 1]. t is
// clamped to [0, 1] first. Step always yields 0; callers are expected to use
// stepped sampling for discrete attributes.
func (i Interpolation) CalcRate(t float64) (float64, error) {
	switch {
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}
	ft := float32(t)
	switch i {
	case InterpolationLinear:
		return float64(ease.Linear(ft, 0, 1, 1)), nil
	case InterpolationStep:
		return 0, nil
	case InterpolationAcceleration:
		return float64(ease.InQuad(ft, 0, 1, 1)), nil
	case InterpolationDeceleration:
		return float64(ease.OutQuad(ft, 0, 1, 1)), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedInterpolation, i)
	}
}
