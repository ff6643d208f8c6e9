package services

import (
	"sort"
	"strings"
	"time"

	"transportease/internal/domain"
	"transportease/internal/domain/models"
)

// fakeTripStore mimics the external trip source, including its matching
// policy, so service tests run without a database.
type fakeTripStore struct {
	trips       map[int64]models.TripOption
	searchErrs  []error
	getErrs     []error
	searchCalls int
	getCalls    int
}

func newFakeTripStore(trips ...models.TripOption) *fakeTripStore {
	f := &fakeTripStore{trips: map[int64]models.TripOption{}}
	for _, t := range trips {
		f.trips[t.TripID] = t
	}
	return f
}

func (f *fakeTripStore) Search(origin, destination string, date time.Time) ([]models.TripOption, error) {
	f.searchCalls++
	if len(f.searchErrs) > 0 {
		err := f.searchErrs[0]
		f.searchErrs = f.searchErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	day := date.Format("2006-01-02")
	out := []models.TripOption{}
	for _, t := range f.trips {
		if !strings.Contains(strings.ToLower(t.BoardingPoint), strings.ToLower(origin)) {
			continue
		}
		if !strings.Contains(strings.ToLower(t.DroppingPoint), strings.ToLower(destination)) {
			continue
		}
		if t.DepartureTime.Format("2006-01-02") != day {
			continue
		}
		if t.SeatsLeft <= 0 {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DepartureTime.Before(out[j].DepartureTime)
	})
	return out, nil
}

func (f *fakeTripStore) GetByID(id int64) (models.TripOption, error) {
	f.getCalls++
	if len(f.getErrs) > 0 {
		err := f.getErrs[0]
		f.getErrs = f.getErrs[1:]
		if err != nil {
			return models.TripOption{}, err
		}
	}
	t, ok := f.trips[id]
	if !ok {
		return models.TripOption{}, domain.NotFoundError{Resource: "trip"}
	}
	return t, nil
}

// fakeBookingStore is an in-memory booking table with the same guarded
// status update the SQL repository performs.
type fakeBookingStore struct {
	nextID     int64
	bookings   map[int64]models.Booking
	insertErr  error
	getErrs    []error
	beforeCAS  func(f *fakeBookingStore, id int64)
	insertions int
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: map[int64]models.Booking{}}
}

func (f *fakeBookingStore) Insert(b models.Booking) (models.Booking, error) {
	f.insertions++
	if f.insertErr != nil {
		return models.Booking{}, f.insertErr
	}
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now().UTC().Truncate(time.Second)
	f.bookings[b.ID] = b
	return b, nil
}

func (f *fakeBookingStore) GetByID(id int64) (models.Booking, error) {
	if len(f.getErrs) > 0 {
		err := f.getErrs[0]
		f.getErrs = f.getErrs[1:]
		if err != nil {
			return models.Booking{}, err
		}
	}
	b, ok := f.bookings[id]
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}

func (f *fakeBookingStore) ListByUser(userID int64) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeBookingStore) UpdateStatus(id int64, from, to models.BookingStatus) (bool, error) {
	if f.beforeCAS != nil {
		hook := f.beforeCAS
		f.beforeCAS = nil
		hook(f, id)
	}
	b, ok := f.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	f.bookings[id] = b
	return true, nil
}
