package domain

import "time"

// PeerRating es la calificacion que un usuario le da a otro con quien tiene match.
// Profile.Rating es el promedio de las PeerRating recibidas.
type PeerRating struct {
	RaterID   string    `json:"rater_id"`
	TargetID  string    `json:"target_id"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
