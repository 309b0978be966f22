package domain

import "time"

// Like registra un swipe a la derecha de FromUserID sobre ToUserID.
type Like struct {
	ID         string    `json:"id"`
	FromUserID string    `json:"from_user_id"`
	ToUserID   string    `json:"to_user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Match se crea cuando dos usuarios se dieron like mutuamente.
// UserA < UserB para que cada par exista una sola vez.
type Match struct {
	ID        string    `json:"id"`
	UserA     string    `json:"user_a"`
	UserB     string    `json:"user_b"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderedPair devuelve los ids en orden lexicografico.
func OrderedPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// Other devuelve el otro participante del match.
func (m Match) Other(userID string) string {
	if m.UserA == userID {
		return m.UserB
	}
	return m.UserA
}
