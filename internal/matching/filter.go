// Package matching filtra, puntua y ordena candidatos para un estudiante.
package matching

import "swapwise/internal/domain"

// FilterMutual conserva los candidatos con interes reciproco: el solicitante puede
// ensenarle algo que el candidato quiere aprender y viceversa. Mantiene el orden.
func FilterMutual(requester domain.Profile, candidates []domain.Profile) []domain.Profile {
	out := make([]domain.Profile, 0, len(candidates))
	requesterLearns := toSet(requester.Learn)
	for _, c := range candidates {
		if !intersects(requester.Teach, toSet(c.Learn)) {
			continue
		}
		if !intersects(c.Teach, requesterLearns) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func toSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

func intersects(tags []string, set map[string]struct{}) bool {
	for _, t := range tags {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}
