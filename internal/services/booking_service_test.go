package services

import (
	"errors"
	"testing"

	"transportease/internal/domain"
	"transportease/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectionFor(trip models.TripOption, seats []string, passengers, luggage int) domain.Selection {
	return domain.Selection{
		TripID:         trip.TripID,
		SelectedSeats:  seats,
		PassengerCount: passengers,
		LuggageCount:   luggage,
	}
}

func TestCreateBookingPersistsUnpaid(t *testing.T) {
	trip := tripAt(7, "2024-06-01 08:30:00", "Springfield", "Capital City", 30, 4)
	store := newFakeBookingStore()
	svc := BookingService{Bookings: store, Trips: newFakeTripStore(trip)}

	booking, err := svc.CreateBooking(42, selectionFor(trip, []string{"A1", "A2"}, 2, 1), trip)
	require.NoError(t, err)

	assert.Equal(t, models.StatusUnpaid, booking.Status)
	assert.Equal(t, int64(65), booking.TotalAmount)
	assert.Equal(t, int64(42), booking.UserID)
	assert.Equal(t, trip.TripID, booking.TripID)
	assert.Equal(t, []string{"A1", "A2"}, booking.SelectedSeats)
	assert.Equal(t, trip.BoardingPoint, booking.BoardingPoint)
	assert.Equal(t, trip.DroppingPoint, booking.DroppingPoint)
	assert.NotZero(t, booking.ID)
	assert.NotEmpty(t, booking.Ref)
	assert.False(t, booking.CreatedAt.IsZero())
}

func TestCreateBookingValidations(t *testing.T) {
	trip := tripAt(7, "2024-06-01 08:30:00", "Springfield", "Capital City", 30, 4)
	soldOut := tripAt(8, "2024-06-01 09:30:00", "Springfield", "Capital City", 30, 0)
	store := newFakeBookingStore()
	svc := BookingService{Bookings: store, Trips: newFakeTripStore(trip, soldOut)}

	cases := []struct {
		name   string
		userID int64
		sel    domain.Selection
		trip   models.TripOption
	}{
		{"unauthenticated", 0, selectionFor(trip, []string{"A1"}, 1, 0), trip},
		{"no seats", 42, selectionFor(trip, nil, 2, 0), trip},
		{"trip mismatch", 42, selectionFor(soldOut, []string{"A1"}, 1, 0), trip},
		{"more seats than passengers", 42, selectionFor(trip, []string{"A1", "A2"}, 1, 0), trip},
		{"sold out", 42, selectionFor(soldOut, []string{"A1"}, 1, 0), soldOut},
		{"seat not on vehicle", 42, selectionFor(trip, []string{"Z9"}, 1, 0), trip},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateBooking(tc.userID, tc.sel, tc.trip)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err), "want validation error, got %v", err)
		})
	}
	assert.Zero(t, store.insertions, "validation failures must not reach the store")
}

func TestCreateBookingPersistenceFailureIsNotRetried(t *testing.T) {
	trip := tripAt(7, "2024-06-01 08:30:00", "Springfield", "Capital City", 30, 4)
	store := newFakeBookingStore()
	store.insertErr = errors.New("deadlock")
	svc := BookingService{Bookings: store, Trips: newFakeTripStore(trip)}

	_, err := svc.CreateBooking(42, selectionFor(trip, []string{"A1"}, 1, 0), trip)
	require.Error(t, err)
	assert.True(t, domain.IsPersistence(err))
	assert.Equal(t, 1, store.insertions, "insert must be issued at most once")
	assert.Empty(t, store.bookings, "no partial booking after failure")
}

func TestConfirmPaymentFlipsUnpaidToPaid(t *testing.T) {
	trip := tripAt(7, "2024-06-01 08:30:00", "Springfield", "Capital City", 30, 4)
	store := newFakeBookingStore()
	svc := BookingService{Bookings: store, Trips: newFakeTripStore(trip)}

	created, err := svc.CreateBooking(42, selectionFor(trip, []string{"A1"}, 1, 0), trip)
	require.NoError(t, err)

	paid, err := svc.ConfirmPayment(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, paid.Status)
}

func TestConfirmPaymentIsIdempotent(t *testing.T) {
	trip := tripAt(7, "2024-06-01 08:30:00", "Springfield", "Capital City", 30, 4)
	store := newFakeBookingStore()
	svc := BookingService{Bookings: store, Trips: newFakeTripStore(trip)}

	created, err := svc.CreateBooking(42, selectionFor(trip, []string{"A1", "A2"}, 2, 1), trip)
	require.NoError(t, err)

	first, err := svc.ConfirmPayment(created.ID)
	require.NoError(t, err)
	again, err := svc.ConfirmPayment(created.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPaid, again.Status)
	assert.Equal(t, first.TotalAmount, again.TotalAmount)
	assert.Equal(t, first.SelectedSeats, again.SelectedSeats)
	assert.Equal(t, first.CreatedAt, again.CreatedAt)
}

func TestConfirmPaymentUnknownBookingLeavesNoRecord(t *testing.T) {
	store := newFakeBookingStore()
	svc := BookingService{Bookings: store, Trips: newFakeTripStore()}

	_, err := svc.ConfirmPayment(12345)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Empty(t, store.bookings)
}

func TestConfirmPaymentOnCancelledBookingFails(t *testing.T) {
	trip := tripAt(7, "2024-06-01 08:30:00", "Springfield", "Capital City", 30, 4)
	store := newFakeBookingStore()
	svc := BookingService{Bookings: store, Trips: newFakeTripStore(trip)}

	created, err := svc.CreateBooking(42, selectionFor(trip, []string{"A1"}, 1, 0), trip)
	require.NoError(t, err)
	_, err = svc.CancelBooking(created.ID)
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(created.ID)
	require.Error(t, err)
	assert.True(t, domain.IsInvalidTransition(err))
}

func TestConfirmPaymentLostRaceResolvesIdempotently(t *testing.T) {
	trip := tripAt(7, "2024-06-01 08:30:00", "Springfield", "Capital City", 30, 4)
	store := newFakeBookingStore()
	svc := BookingService{Bookings: store, Trips: newFakeTripStore(trip)}

	created, err := svc.CreateBooking(42, selectionFor(trip, []string{"A1"}, 1, 0), trip)
	require.NoError(t, err)

	// Another confirm wins between our read and our guarded update.
	store.beforeCAS = func(f *fakeBookingStore, id int64) {
		b := f.bookings[id]
		b.Status = models.StatusPaid
		f.bookings[id] = b
	}

	paid, err := svc.ConfirmPayment(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, paid.Status)
}

func TestCancelBookingFromPaidFails(t *testing.T) {
	trip := tripAt(7, "2024-06-01 08:30:00", "Springfield", "Capital City", 30, 4)
	store := newFakeBookingStore()
	svc := BookingService{Bookings: store, Trips: newFakeTripStore(trip)}

	created, err := svc.CreateBooking(42, selectionFor(trip, []string{"A1"}, 1, 0), trip)
	require.NoError(t, err)
	_, err = svc.ConfirmPayment(created.ID)
	require.NoError(t, err)

	_, err = svc.CancelBooking(created.ID)
	require.Error(t, err)
	assert.True(t, domain.IsInvalidTransition(err))
}

func TestFetchBookingRetriesTransientReadFailure(t *testing.T) {
	trip := tripAt(7, "2024-06-01 08:30:00", "Springfield", "Capital City", 30, 4)
	store := newFakeBookingStore()
	svc := BookingService{Bookings: store, Trips: newFakeTripStore(trip)}

	created, err := svc.CreateBooking(42, selectionFor(trip, []string{"A1"}, 1, 0), trip)
	require.NoError(t, err)

	store.getErrs = []error{errors.New("timeout")}
	got, err := svc.FetchBooking(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestListUserBookingsOnlyReturnsOwn(t *testing.T) {
	trip := tripAt(7, "2024-06-01 08:30:00", "Springfield", "Capital City", 30, 4)
	store := newFakeBookingStore()
	svc := BookingService{Bookings: store, Trips: newFakeTripStore(trip)}

	_, err := svc.CreateBooking(42, selectionFor(trip, []string{"A1"}, 1, 0), trip)
	require.NoError(t, err)
	_, err = svc.CreateBooking(43, selectionFor(trip, []string{"A2"}, 1, 0), trip)
	require.NoError(t, err)

	mine, err := svc.ListUserBookings(42)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(42), mine[0].UserID)
}

// Full search -> select -> book -> pay journey.
func TestBookingJourneyEndToEnd(t *testing.T) {
	tripStore := newFakeTripStore(
		tripAt(1, "2024-06-01 08:30:00", "Springfield Central", "Capital City Terminal", 30, 10),
		tripAt(2, "2024-06-01 14:00:00", "Springfield North", "Capital City South", 45, 8),
	)
	bookingStore := newFakeBookingStore()
	search := SearchService{Trips: tripStore}
	bookings := BookingService{Bookings: bookingStore, Trips: tripStore}

	trips, err := search.SearchTrips("Springfield", "Capital City", "2024-06-01")
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, int64(30), trips[0].FarePerSeat, "earliest departure first")
	assert.Equal(t, int64(45), trips[1].FarePerSeat)
	for _, trip := range trips {
		assert.Greater(t, trip.SeatsLeft, 0)
	}

	chosen := trips[0]
	sel := domain.NewSelection(chosen.TripID).
		SetPassengerCount(2).
		ToggleSeat("A1").
		ToggleSeat("A2").
		SetLuggageCount(1)
	assert.Equal(t, int64(65), domain.ComputeTotal(sel, chosen))

	created, err := bookings.CreateBooking(42, sel, chosen)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnpaid, created.Status)
	assert.Equal(t, int64(65), created.TotalAmount)

	paid, err := bookings.ConfirmPayment(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, paid.Status)
	assert.Equal(t, int64(65), paid.TotalAmount)
}
