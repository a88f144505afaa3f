package similarity

import "math"

// Cosine returns the cosine similarity of two vectors in [-1, 1]. It returns
// 0 when either vector has zero magnitude or the vectors are empty;
// mismatched lengths are compared over the shorter prefix.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		av, bv := float64(a[i]), float64(b[i])
		dot += av * bv
		magA += av * av
		magB += bv * bv
	}

	if magA == 0 || magB == 0 {
		return 0
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
