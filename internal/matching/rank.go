package matching

import (
	"sort"

	"swapwise/internal/domain"
)

// Rank ordena de mayor a menor TotalScore sin tocar el slice de entrada.
// Los empates conservan el orden original.
func Rank(scored []domain.ScoredCandidate) []domain.ScoredCandidate {
	out := make([]domain.ScoredCandidate, len(scored))
	copy(out, scored)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalScore > out[j].TotalScore
	})
	return out
}
