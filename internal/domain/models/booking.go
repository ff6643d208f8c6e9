package models

import "time"

// BookingStatus is the lifecycle state of a booking. Valid transitions are
// unpaid -> paid and unpaid -> cancelled; paid and cancelled are terminal.
type BookingStatus string

const (
	StatusUnpaid    BookingStatus = "unpaid"
	StatusPaid      BookingStatus = "paid"
	StatusCancelled BookingStatus = "cancelled"
)

// Valid reports whether the status is part of the lifecycle taxonomy.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusUnpaid, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine permits moving from the
// receiver to the target status.
func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	if s != StatusUnpaid {
		return false
	}
	return to == StatusPaid || to == StatusCancelled
}

// Booking is the persisted, authoritative record of a confirmed reservation.
// It belongs exclusively to the user that created it.
type Booking struct {
	ID             int64         `json:"id"`
	Ref            string        `json:"ref"`
	UserID         int64         `json:"user_id"`
	TripID         int64         `json:"trip_id"`
	SelectedSeats  []string      `json:"selected_seats"`
	TotalAmount    int64         `json:"total_amount"`
	Status         BookingStatus `json:"status"`
	BoardingPoint  string        `json:"boarding_point"`
	DroppingPoint  string        `json:"dropping_point"`
	PassengerCount int           `json:"passenger_count"`
	LuggageCount   int           `json:"luggage_count"`
	CreatedAt      time.Time     `json:"created_at"`
}
