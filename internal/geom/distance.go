package geom

import "math"

// Distance is a scalar distance whose representation is chosen by the
// producer. A non-negative value is a squared distance; a negative value is
// a negated Euclidean distance. Conversions happen on every call.
type Distance float64

// Squared wraps a squared distance.
func Squared(v float64) Distance {
	return Distance(math.Abs(v))
}

// Euclidean wraps a Euclidean distance.
func Euclidean(v float64) Distance {
	return Distance(-math.Abs(v))
}

// IsSquared reports whether the stored value is a squared distance.
func (d Distance) IsSquared() bool { return d >= 0 }

// IsEuclidean reports whether the stored value is a Euclidean distance.
func (d Distance) IsEuclidean() bool { return d < 0 }

// GetSquared returns the squared distance.
func (d Distance) GetSquared() float64 {
	if d.IsEuclidean() {
		return float64(d) * float64(d)
	}
	return float64(d)
}

// GetEuclidean returns the Euclidean distance.
func (d Distance) GetEuclidean() float64 {
	if d.IsEuclidean() {
		return -float64(d)
	}
	return math.Sqrt(float64(d))
}
