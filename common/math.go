package common

import "math"

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RotateTowards turns the direction current toward target by at most
// maxRadians. The result is unit length. When the remaining angle fits in the
// step the normalized target is returned as is, so repeated calls against a
// fixed target settle on an identical value.
func RotateTowards(current, target Vec3, maxRadians float64) Vec3 {
	to := target.Normalize()
	if to == (Vec3{}) {
		return current
	}
	from := current.Normalize()
	if from == (Vec3{}) {
		return to
	}

	angle := math.Acos(math.Max(-1, math.Min(1, from.Dot(to))))
	if angle <= maxRadians || angle == 0 {
		return to
	}
	if maxRadians <= 0 {
		return from
	}

	// Rotate inside the plane spanned by from/to. Antiparallel vectors have no
	// unique plane; pick one perpendicular to from.
	axis := from.Cross(to)
	if axis.Length() < 1e-9 {
		axis = from.Cross(Vec3{Y: 1})
		if axis.Length() < 1e-9 {
			axis = from.Cross(Vec3{X: 1})
		}
	}
	axis = axis.Normalize()

	// Rodrigues rotation of from around axis.
	sin, cos := math.Sincos(maxRadians)
	rotated := from.Scale(cos).
		Add(axis.Cross(from).Scale(sin)).
		Add(axis.Scale(axis.Dot(from) * (1 - cos)))
	return rotated.Normalize()
}
