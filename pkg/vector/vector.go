// Package vector implements the cosine-similarity matching used to pair
// generated flashcards with page images.
//
// Both operations are pure: they perform no I/O and have no side
// effects, so they can be exercised exhaustively in tests.
package vector

import (
	"errors"
	"math"
)

// ErrDimensionMismatch is returned when similarity is computed over
// vectors of unequal length. This is a programming-contract violation,
// not a degradable condition.
var ErrDimensionMismatch = errors.New("vector: dimension mismatch")

// Candidate pairs a reference (typically an image URL) with its
// embedding vector.
type Candidate struct {
	Ref    string
	Vector []float64
}

// Similarity computes the cosine similarity between a and b, in [-1, 1].
// A zero-magnitude vector yields exactly 0 by definition, not a
// division-by-zero error.
func Similarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	if magA == 0 || magB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB)), nil
}

// SelectBestMatch returns the Ref of the candidate most similar to
// target, or "" when candidates is empty. Ties resolve to the
// first-seen candidate (strict improvement required), keeping the
// selection deterministic. Candidates whose similarity cannot be
// computed are skipped.
func SelectBestMatch(target []float64, candidates []Candidate) string {
	best := ""
	bestScore := math.Inf(-1)
	for _, c := range candidates {
		score, err := Similarity(target, c.Vector)
		if err != nil {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = c.Ref
		}
	}
	return best
}
