package models

// ReminderPayload is queued for delivery ahead of an appointment.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Selection string `json:"selection"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// User is the identity behind an authenticated session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

const RoleAdmin = "admin"

// IsAdmin reports whether the user may manage the catalog.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
