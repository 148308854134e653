package model

// Booking is a persisted reservation. A (Date, Time) pair is held by at most
// one booking; the repository enforces that on insert.
type Booking struct {
	ID        string `json:"id,omitempty" validate:"omitempty"`
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=3,max=30"`
	Date      string `json:"date" validate:"required,resdate"`
	Time      string `json:"time" validate:"required,restime"`
	Guests    int    `json:"guests" validate:"required,min=1,max=10"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// AvailabilitySummary describes one calendar date's slot occupancy. It is
// derived on every request and never persisted.
type AvailabilitySummary struct {
	Date           string   `json:"date"`
	HasSlots       bool     `json:"hasSlots"`
	AvailableSlots int      `json:"availableSlots"`
	AvailableTimes []string `json:"availableTimes"`
}
