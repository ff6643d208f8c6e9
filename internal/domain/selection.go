package domain

import (
	"transportease/internal/domain/models"
)

// LuggageUnitRate is the flat charge per luggage unit.
const LuggageUnitRate int64 = 5

const (
	MinPassengers = 1
	MaxPassengers = 10
)

// Selection is the session-local record of an in-progress seat/trip choice.
// It is owned by a single interaction stream and never shared, so no locking
// is involved; every mutator returns the updated value.
type Selection struct {
	TripID         int64    `json:"trip_id"`
	SelectedSeats  []string `json:"selected_seats"`
	PassengerCount int      `json:"passenger_count"`
	LuggageCount   int      `json:"luggage_count"`
}

// NewSelection starts an empty selection for a trip with a single passenger.
func NewSelection(tripID int64) Selection {
	return Selection{TripID: tripID, PassengerCount: MinPassengers}
}

// HasSeat reports whether seatID is part of the current selection.
func (s Selection) HasSeat(seatID string) bool {
	for _, seat := range s.SelectedSeats {
		if seat == seatID {
			return true
		}
	}
	return false
}

// ToggleSeat removes seatID when already selected, otherwise adds it while
// the selection has room. Adding to a full selection is a no-op rather than
// an error: capacity is a soft UI constraint and the caller is expected to
// have disabled further selection.
func (s Selection) ToggleSeat(seatID string) Selection {
	if s.HasSeat(seatID) {
		kept := make([]string, 0, len(s.SelectedSeats)-1)
		for _, seat := range s.SelectedSeats {
			if seat != seatID {
				kept = append(kept, seat)
			}
		}
		s.SelectedSeats = kept
		return s
	}
	if len(s.SelectedSeats) >= s.PassengerCount {
		return s
	}
	seats := make([]string, len(s.SelectedSeats), len(s.SelectedSeats)+1)
	copy(seats, s.SelectedSeats)
	s.SelectedSeats = append(seats, seatID)
	return s
}

// SetPassengerCount clamps n to [MinPassengers, MaxPassengers]. Reducing the
// count below the number of selected seats clears the selection entirely;
// dropping an arbitrary subset would be ambiguous.
func (s Selection) SetPassengerCount(n int) Selection {
	if n < MinPassengers {
		n = MinPassengers
	}
	if n > MaxPassengers {
		n = MaxPassengers
	}
	s.PassengerCount = n
	if n < len(s.SelectedSeats) {
		s.SelectedSeats = nil
	}
	return s
}

// SetLuggageCount clamps n at zero.
func (s Selection) SetLuggageCount(n int) Selection {
	if n < 0 {
		n = 0
	}
	s.LuggageCount = n
	return s
}

// ComputeTotal derives the fare for a selection against a trip. Pure: equal
// inputs always yield equal totals.
func ComputeTotal(sel Selection, trip models.TripOption) int64 {
	return trip.FarePerSeat*int64(len(sel.SelectedSeats)) + int64(sel.LuggageCount)*LuggageUnitRate
}
