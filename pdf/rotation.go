package pdf

import (
	"fmt"
	"strings"
)

// Rotation is a page rotation option.
type Rotation int

const (
	RotateNone Rotation = iota
	RotateCW            // 90 degrees clockwise
	RotateCCW           // 90 degrees counter-clockwise
	RotateFlip          // 180 degrees (flip vertical)
)

// ParseRotation maps a rotation token (CW, CCW, FV) to a Rotation.
// Matching ignores case; anything unrecognised means no rotation.
func ParseRotation(token string) Rotation {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "CW":
		return RotateCW
	case "CCW":
		return RotateCCW
	case "FV":
		return RotateFlip
	default:
		return RotateNone
	}
}

// Degrees returns the signed rotation delta, clockwise positive.
func (r Rotation) Degrees() int {
	switch r {
	case RotateCW:
		return 90
	case RotateCCW:
		return -90
	case RotateFlip:
		return 180
	default:
		return 0
	}
}

// String returns the command line token for r.
func (r Rotation) String() string {
	switch r {
	case RotateCW:
		return "CW"
	case RotateCCW:
		return "CCW"
	case RotateFlip:
		return "FV"
	default:
		return "NONE"
	}
}

// Label is the human readable option name shown by front ends.
func (r Rotation) Label() string {
	switch r {
	case RotateCW:
		return "90° CW"
	case RotateCCW:
		return "90° CCW"
	case RotateFlip:
		return "Flip Vertical"
	default:
		return "None"
	}
}

// RotationChoices lists the accepted rotation names with their labels,
// e.g. for command line usage text.
func RotationChoices() string {
	choices := make([]string, 0, 3)
	for _, r := range []Rotation{RotateCW, RotateCCW, RotateFlip} {
		choices = append(choices, fmt.Sprintf("%s = %s", r, r.Label()))
	}
	return strings.Join(choices, ", ")
}

// normalizeDegrees folds any multiple of 90 into [0, 360).
func normalizeDegrees(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}
