package search

import "math"

// CosineSimilarity computes the cosine similarity of two vectors mapped
// from its natural [-1,1] range into [0,1] via (cos+1)/2.
//
// Malformed input must not abort a whole search, so a length mismatch or
// a zero-norm vector yields 0 rather than an error.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	cos := dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
	return clampScore((cos + 1) / 2)
}

// similarityWithNorm scores a candidate against a query whose norm was
// precomputed, in a single combined pass over the candidate. Semantics
// are identical to CosineSimilarity.
func similarityWithNorm(query []float32, queryNorm float32, candidate []float32) float32 {
	if len(query) != len(candidate) || queryNorm == 0 {
		return 0
	}

	var dot, normC float32
	for i := range candidate {
		dot += query[i] * candidate[i]
		normC += candidate[i] * candidate[i]
	}
	if normC == 0 {
		return 0
	}

	cos := dot / (queryNorm * float32(math.Sqrt(float64(normC))))
	return clampScore((cos + 1) / 2)
}

// vectorNorm returns the Euclidean norm of a vector.
func vectorNorm(v []float32) float32 {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	return float32(math.Sqrt(float64(sum)))
}

// clampScore keeps floating error from pushing a score outside [0,1].
func clampScore(s float32) float32 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
