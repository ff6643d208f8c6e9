package services

import (
	"fmt"
	"strings"

	"transportease/internal/domain"
	"transportease/internal/domain/models"
	"transportease/internal/utils"

	"github.com/google/uuid"
)

// BookingService owns the booking lifecycle: create in unpaid, confirm
// payment to paid, cancel from unpaid. No other transitions exist.
type BookingService struct {
	Bookings  BookingStore
	Trips     TripStore
	RequestID string
}

// CreateBooking converts a selection into a persisted unpaid booking. The
// total is computed server-side from the trip fare; the insert is issued at
// most once, and after a failure the caller must not assume a partial
// booking exists.
func (s BookingService) CreateBooking(userID int64, sel domain.Selection, trip models.TripOption) (models.Booking, error) {
	if userID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "user_id", Msg: "authentication required"}
	}
	if len(sel.SelectedSeats) == 0 {
		return models.Booking{}, domain.ValidationError{Field: "selected_seats", Msg: "select at least one seat"}
	}
	if trip.TripID != sel.TripID {
		return models.Booking{}, domain.ValidationError{Field: "trip_id", Msg: "selection does not match trip"}
	}
	if len(sel.SelectedSeats) > sel.PassengerCount {
		return models.Booking{}, domain.ValidationError{Field: "selected_seats", Msg: "more seats than passengers"}
	}
	if trip.SeatsLeft <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "trip_id", Msg: "trip is sold out"}
	}

	layout, err := domain.VehicleSeatMap(trip.ServiceType)
	if err != nil {
		return models.Booking{}, err
	}
	for _, seat := range sel.SelectedSeats {
		if !layout.Has(seat) {
			return models.Booking{}, domain.ValidationError{
				Field: "selected_seats",
				Msg:   fmt.Sprintf("seat %s does not exist on this vehicle", seat),
			}
		}
	}

	booking := models.Booking{
		Ref:            newBookingRef(),
		UserID:         userID,
		TripID:         trip.TripID,
		SelectedSeats:  sel.SelectedSeats,
		TotalAmount:    domain.ComputeTotal(sel, trip),
		Status:         models.StatusUnpaid,
		BoardingPoint:  trip.BoardingPoint,
		DroppingPoint:  trip.DroppingPoint,
		PassengerCount: sel.PassengerCount,
		LuggageCount:   sel.LuggageCount,
	}

	created, err := s.Bookings.Insert(booking)
	if err != nil {
		return models.Booking{}, domain.PersistenceError{Op: "booking", Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d ref=%s trip_id=%d total=%d", created.ID, created.Ref, created.TripID, created.TotalAmount))
	return created, nil
}

// ConfirmPayment transitions an unpaid booking to paid. Re-invocation on an
// already paid booking is a safe no-op returning the current record.
func (s BookingService) ConfirmPayment(bookingID int64) (models.Booking, error) {
	b, err := s.fetch(bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	switch b.Status {
	case models.StatusPaid:
		return b, nil
	case models.StatusCancelled:
		utils.LogEvent(s.RequestID, "booking", "confirm_payment",
			fmt.Sprintf("booking_id=%d rejected: cancelled", bookingID))
		return models.Booking{}, domain.InvalidTransitionError{From: string(b.Status), To: string(models.StatusPaid)}
	}

	return s.transition(bookingID, models.StatusPaid)
}

// CancelBooking moves an unpaid booking to the terminal cancelled state.
func (s BookingService) CancelBooking(bookingID int64) (models.Booking, error) {
	b, err := s.fetch(bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	switch b.Status {
	case models.StatusCancelled:
		return b, nil
	case models.StatusPaid:
		utils.LogEvent(s.RequestID, "booking", "cancel",
			fmt.Sprintf("booking_id=%d rejected: paid", bookingID))
		return models.Booking{}, domain.InvalidTransitionError{From: string(b.Status), To: string(models.StatusCancelled)}
	}

	return s.transition(bookingID, models.StatusCancelled)
}

// FetchBooking is the read-only projection used for ticket display.
func (s BookingService) FetchBooking(bookingID int64) (models.Booking, error) {
	return s.fetch(bookingID)
}

// ListUserBookings returns the user's booking history, newest first.
func (s BookingService) ListUserBookings(userID int64) ([]models.Booking, error) {
	if userID <= 0 {
		return nil, domain.ValidationError{Field: "user_id", Msg: "authentication required"}
	}
	var out []models.Booking
	var lastErr error
	for attempt := 1; attempt <= readAttempts; attempt++ {
		out, lastErr = s.Bookings.ListByUser(userID)
		if lastErr == nil {
			break
		}
	}
	if lastErr != nil {
		return nil, domain.LookupError{Op: "bookings", Err: lastErr}
	}
	return out, nil
}

// transition performs the guarded unpaid->to flip. A lost compare-and-set is
// resolved by re-reading: a concurrent confirm of the same target is treated
// as the idempotent no-op, anything else is an invalid transition.
func (s BookingService) transition(bookingID int64, to models.BookingStatus) (models.Booking, error) {
	ok, err := s.Bookings.UpdateStatus(bookingID, models.StatusUnpaid, to)
	if err != nil {
		return models.Booking{}, domain.PersistenceError{Op: "booking status", Err: err}
	}
	if !ok {
		current, err := s.fetch(bookingID)
		if err != nil {
			return models.Booking{}, err
		}
		if current.Status == to {
			return current, nil
		}
		return models.Booking{}, domain.InvalidTransitionError{From: string(current.Status), To: string(to)}
	}
	utils.LogEvent(s.RequestID, "booking", "status",
		fmt.Sprintf("booking_id=%d status=%s", bookingID, to))
	return s.fetch(bookingID)
}

func (s BookingService) fetch(bookingID int64) (models.Booking, error) {
	if bookingID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "booking_id", Msg: "must be positive"}
	}
	var b models.Booking
	var lastErr error
	for attempt := 1; attempt <= readAttempts; attempt++ {
		b, lastErr = s.Bookings.GetByID(bookingID)
		if lastErr == nil || domain.IsNotFound(lastErr) {
			break
		}
	}
	if lastErr != nil {
		if domain.IsNotFound(lastErr) {
			return models.Booking{}, lastErr
		}
		return models.Booking{}, domain.LookupError{Op: "booking", Err: lastErr}
	}
	return b, nil
}

func newBookingRef() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TE-" + strings.ToUpper(raw[:10])
}
