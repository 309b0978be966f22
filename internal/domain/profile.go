package domain

import (
	"math"
	"strings"
	"time"
)

// Location identifica el distrito y la provincia declarados por un estudiante.
type Location struct {
	District string `json:"district"`
	Province string `json:"province"`
}

// IsZero indica que la ubicacion no alcanza para geocodificar.
func (l Location) IsZero() bool {
	return strings.TrimSpace(l.District) == "" || strings.TrimSpace(l.Province) == ""
}

// Coordinate es un par latitud/longitud en grados.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Profile agrupa los atributos de un estudiante relevantes para el matching.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Teach     []string  `json:"teach"`
	Learn     []string  `json:"learn"`
	Hobbies   []string  `json:"hobbies"`
	Rating    float64   `json:"rating"`
	Location  Location  `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProfile construye un perfil ya normalizado.
func NewProfile(id string, teach, learn, hobbies []string, rating float64, loc Location) Profile {
	return Profile{
		ID:       id,
		Teach:    teach,
		Learn:    learn,
		Hobbies:  hobbies,
		Rating:   rating,
		Location: loc,
	}.Normalize()
}

// Normalize devuelve una copia con sets sin nil ni duplicados y rating no negativo.
// El scoring asume perfiles que pasaron por aca.
func (p Profile) Normalize() Profile {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Teach = NormalizeTags(p.Teach)
	p.Learn = NormalizeTags(p.Learn)
	p.Hobbies = NormalizeTags(p.Hobbies)
	if p.Rating < 0 || math.IsNaN(p.Rating) || math.IsInf(p.Rating, 0) {
		p.Rating = 0
	}
	p.Location = Location{
		District: strings.TrimSpace(p.Location.District),
		Province: strings.TrimSpace(p.Location.Province),
	}
	return p
}

// NormalizeTags recorta espacios, descarta vacios y duplicados manteniendo el orden.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// ScoreBreakdown detalla los sub-scores que componen el total.
type ScoreBreakdown struct {
	Location   float64  `json:"location"`
	Preference float64  `json:"preference"`
	Rating     float64  `json:"rating"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// ScoredCandidate es un perfil candidato con su score para un solicitante concreto.
type ScoredCandidate struct {
	Profile    Profile        `json:"profile"`
	TotalScore float64        `json:"total_score"`
	Breakdown  ScoreBreakdown `json:"breakdown"`
}
