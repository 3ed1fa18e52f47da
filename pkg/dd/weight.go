package dd

import "math"

// DefaultEps is the tolerance used by tables created without [WithEps].
// Weights whose components differ by no more than the epsilon are treated
// as equal when interning nodes.
const DefaultEps = 1e-7

// Weight is the value carried by a diagram edge. The underlying complex
// representation covers the real-valued case with a zero imaginary part.
type Weight complex128

// Arithmetic identities for edge weights.
const (
	// Zero is the additive identity; a zero-weight edge contributes nothing.
	Zero Weight = 0
	// One is the multiplicative identity; traversal of an absent level
	// multiplies by One.
	One Weight = 1
)

// Close reports whether a and b are equal within eps on both the real and
// imaginary components. This is the equality predicate the unique table
// approximates with bucketed hashing; see [Table].
func Close(a, b Weight, eps float64) bool {
	return math.Abs(real(a)-real(b)) <= eps && math.Abs(imag(a)-imag(b)) <= eps
}

// IsZero reports whether w is within eps of [Zero].
func IsZero(w Weight, eps float64) bool {
	return Close(w, Zero, eps)
}

// bucket maps one weight component onto the eps grid. Components within eps
// of each other land in the same bucket unless they straddle a grid
// boundary, the documented approximation of tolerance equality.
func bucket(v, eps float64) int64 {
	return int64(math.Round(v / eps))
}
