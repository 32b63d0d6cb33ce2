package watch

import (
	"math"

	levenshtein "github.com/agnivade/levenshtein"
)

// EditDistance returns the minimum number of single-character insertions,
// deletions and substitutions turning a into b. Inputs are compared as
// given; callers normalize first.
func EditDistance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity scores the closeness of two strings as an integer 0..100,
// computed over their normalized forms. Either side normalizing to empty
// yields 0. The score is symmetric and Similarity(x, x) == 100 for any
// non-empty x.
func Similarity(a, b string) int {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	longest := len(na)
	if len(nb) > longest {
		longest = len(nb)
	}
	d := EditDistance(na, nb)
	return int(math.Round(100 * (1 - float64(d)/float64(longest))))
}
