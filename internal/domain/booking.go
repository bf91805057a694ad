package domain

import "time"

// BookingKind selects what the booking simulator produces
type BookingKind string

const (
	BookingCab         BookingKind = "cab"
	BookingPharmacy    BookingKind = "pharmacy"
	BookingAppointment BookingKind = "appointment"
)

// BookingResult is a synthesized confirmation. It is never persisted.
type BookingResult struct {
	Kind           BookingKind
	ConfirmationID string

	// Provider is the assigned driver, pharmacy or doctor
	Provider string
	Vehicle  string
	Plate    string
	Contact  string
	Fare     int
	ETA      time.Duration

	// ScheduledAt is the pickup time for cabs and the appointment date
	ScheduledAt time.Time
	Slot        string

	MapsURL string
	RideURL string
}
