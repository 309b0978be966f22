package matching

import (
	"context"
	"math"

	"swapwise/internal/domain"
	"swapwise/internal/geo"
)

const (
	DefaultMaxDistanceKm = 10000.0
	DefaultMaxRating     = 5.0
)

// Weights pondera los tres sub-scores. Deben sumar 1 para que el total quede en [0,1].
type Weights struct {
	Location   float64
	Preference float64
	Rating     float64
}

// DefaultWeights: 40% ubicacion, 30% hobbies, 30% rating.
var DefaultWeights = Weights{Location: 0.4, Preference: 0.3, Rating: 0.3}

// Combine devuelve la suma ponderada de los sub-scores.
func (w Weights) Combine(location, preference, rating float64) float64 {
	return w.Location*location + w.Preference*preference + w.Rating*rating
}

// LocationScore decae linealmente de 1 (0 km) a 0 (maxDistanceKm o mas).
func LocationScore(distanceKm, maxDistanceKm float64) float64 {
	if maxDistanceKm <= 0 || distanceKm < 0 || math.IsNaN(distanceKm) {
		return 0
	}
	if distanceKm > maxDistanceKm {
		return 0
	}
	return clamp01(1 - distanceKm/maxDistanceKm)
}

// PreferenceScore es la similitud de Jaccard entre dos sets de hobbies.
// Si alguno esta vacio no hay base de comparacion y devuelve 0.
func PreferenceScore(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	inter := 0
	for h := range setA {
		if _, ok := setB[h]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

// RatingScore normaliza el rating a [0,1]; ratings por encima del maximo se recortan.
func RatingScore(rating, maxRating float64) float64 {
	if maxRating <= 0 {
		maxRating = DefaultMaxRating
	}
	if !(rating > 0) {
		return 0
	}
	return clamp01(rating / maxRating)
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// CoordinateResolver resuelve una ubicacion; false si no se pudo.
type CoordinateResolver interface {
	Resolve(ctx context.Context, loc domain.Location) (domain.Coordinate, bool)
}

// Scorer calcula el score de un candidato frente a un solicitante.
type Scorer struct {
	Resolver      CoordinateResolver
	Weights       Weights
	MaxDistanceKm float64
	MaxRating     float64
}

// NewScorer arma un Scorer con pesos y limites por defecto.
func NewScorer(resolver CoordinateResolver) *Scorer {
	return &Scorer{
		Resolver:      resolver,
		Weights:       DefaultWeights,
		MaxDistanceKm: DefaultMaxDistanceKm,
		MaxRating:     DefaultMaxRating,
	}
}

// LocationScore resuelve ambas ubicaciones y aplica el decaimiento lineal.
// Cualquier falla de resolucion vale 0; el segundo valor es la distancia si se conocio.
func (s *Scorer) LocationScore(ctx context.Context, requester, candidate domain.Profile) (float64, *float64) {
	if s.Resolver == nil {
		return 0, nil
	}
	from, ok := s.Resolver.Resolve(ctx, requester.Location)
	if !ok {
		return 0, nil
	}
	to, ok := s.Resolver.Resolve(ctx, candidate.Location)
	if !ok {
		return 0, nil
	}
	d := geo.DistanceKm(from, to)
	return LocationScore(d, s.maxDistance()), &d
}

// Score combina los tres sub-scores del candidato.
func (s *Scorer) Score(ctx context.Context, requester, candidate domain.Profile) domain.ScoredCandidate {
	location, distance := s.LocationScore(ctx, requester, candidate)
	preference := PreferenceScore(requester.Hobbies, candidate.Hobbies)
	rating := RatingScore(candidate.Rating, s.MaxRating)

	return domain.ScoredCandidate{
		Profile:    candidate,
		TotalScore: s.Weights.Combine(location, preference, rating),
		Breakdown: domain.ScoreBreakdown{
			Location:   location,
			Preference: preference,
			Rating:     rating,
			DistanceKm: distance,
		},
	}
}

func (s *Scorer) maxDistance() float64 {
	if s.MaxDistanceKm <= 0 {
		return DefaultMaxDistanceKm
	}
	return s.MaxDistanceKm
}
