package domain

import "time"

// OnlineLocation es la ubicacion que se guarda para reuniones virtuales.
const OnlineLocation = "Online"

// ReminderOptions son los avisos permitidos, en minutos antes del inicio.
var ReminderOptions = []int{5, 10, 15, 30, 60, 120}

// Meeting es una sesion de tutoria agendada entre usuarios con match.
type Meeting struct {
	ID              string    `json:"id"`
	OrganizerID     string    `json:"organizer_id"`
	Category        string    `json:"category"`
	Subject         string    `json:"subject"`
	Online          bool      `json:"online"`
	Location        string    `json:"location"`
	MeetLink        string    `json:"meet_link,omitempty"`
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	ReminderMinutes int       `json:"reminder_minutes"`
	Attendees       []string  `json:"attendees"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Involves indica si userID organiza o asiste a la reunion.
func (m Meeting) Involves(userID string) bool {
	if m.OrganizerID == userID {
		return true
	}
	for _, id := range m.Attendees {
		if id == userID {
			return true
		}
	}
	return false
}

// ValidReminder indica si minutes es una de las ReminderOptions.
func ValidReminder(minutes int) bool {
	for _, opt := range ReminderOptions {
		if opt == minutes {
			return true
		}
	}
	return false
}
