package services

import (
	"time"

	"transportease/internal/domain/models"
)

// TripStore is the external trip data source. Satisfied by
// repositories.TripRepo; tests substitute an in-memory fake.
type TripStore interface {
	Search(origin, destination string, date time.Time) ([]models.TripOption, error)
	GetByID(id int64) (models.TripOption, error)
}

// BookingStore is the booking persistence port. Satisfied by
// repositories.BookingRepo; tests substitute an in-memory fake.
type BookingStore interface {
	Insert(b models.Booking) (models.Booking, error)
	GetByID(id int64) (models.Booking, error)
	ListByUser(userID int64) ([]models.Booking, error)
	UpdateStatus(id int64, from, to models.BookingStatus) (bool, error)
}

// readAttempts bounds transparent retries of read operations. Writes are
// never retried: a blind re-insert risks duplicate bookings.
const readAttempts = 2
