package repositories

import (
	"database/sql"
	"errors"

	"transportease/internal/domain"
	"transportease/internal/domain/models"
	"transportease/internal/utils"
)

type BookingRepo struct {
	DB *sql.DB
}

const bookingColumns = `
	id, ref, user_id, trip_id, selected_seats, total_amount, status,
	boarding_point, dropping_point, passenger_count, luggage_count, created_at`

// Insert persists a new booking and returns the stored record including the
// server-assigned id and created_at. The insert is issued exactly once.
func (r BookingRepo) Insert(b models.Booking) (models.Booking, error) {
	res, err := r.DB.Exec(`
		INSERT INTO bookings
			(ref, user_id, trip_id, selected_seats, total_amount, status,
			 boarding_point, dropping_point, passenger_count, luggage_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.Ref, b.UserID, b.TripID, utils.JoinSeatList(b.SelectedSeats), b.TotalAmount,
		string(b.Status), b.BoardingPoint, b.DroppingPoint, b.PassengerCount, b.LuggageCount)
	if err != nil {
		return models.Booking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Booking{}, err
	}
	return r.GetByID(id)
}

// GetByID fetches one booking.
func (r BookingRepo) GetByID(id int64) (models.Booking, error) {
	var b models.Booking
	err := scanBooking(r.DB.QueryRow(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE id = ?
		LIMIT 1
	`, id).Scan, &b)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	if err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

// ListByUser returns the user's bookings, newest first.
func (r BookingRepo) ListByUser(userID int64) ([]models.Booking, error) {
	rows, err := r.DB.Query(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := scanBooking(rows.Scan, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateStatus flips status from `from` to `to` as a compare-and-set. The
// WHERE clause on the prior status is what makes confirm/cancel safe against
// concurrent writers; a false return means the row was absent or no longer
// in the expected state.
func (r BookingRepo) UpdateStatus(id int64, from, to models.BookingStatus) (bool, error) {
	res, err := r.DB.Exec(`
		UPDATE bookings SET status = ? WHERE id = ? AND status = ?
	`, string(to), id, string(from))
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanBooking(scan func(dest ...any) error, b *models.Booking) error {
	var seats, status string
	if err := scan(
		&b.ID,
		&b.Ref,
		&b.UserID,
		&b.TripID,
		&seats,
		&b.TotalAmount,
		&status,
		&b.BoardingPoint,
		&b.DroppingPoint,
		&b.PassengerCount,
		&b.LuggageCount,
		&b.CreatedAt,
	); err != nil {
		return err
	}
	b.SelectedSeats = utils.SplitSeatList(seats)
	b.Status = models.BookingStatus(status)
	return nil
}
