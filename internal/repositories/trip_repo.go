package repositories

import (
	"database/sql"
	"errors"
	"time"

	"transportease/internal/domain"
	"transportease/internal/domain/models"
)

type TripRepo struct {
	DB *sql.DB
}

const tripColumns = `
	trip_id, departure_time, arrival_time, duration,
	boarding_point, dropping_point, service_type,
	fare, seats_left, cancellation_policy`

// Search matches origin/destination as case-insensitive substrings against
// boarding and dropping point, restricted to the travel date and to trips
// with seats remaining. Results come back ordered by departure time.
func (r TripRepo) Search(origin, destination string, date time.Time) ([]models.TripOption, error) {
	rows, err := r.DB.Query(`
		SELECT `+tripColumns+`
		FROM transport_options
		WHERE LOWER(boarding_point) LIKE CONCAT('%', LOWER(?), '%')
		  AND LOWER(dropping_point) LIKE CONCAT('%', LOWER(?), '%')
		  AND DATE(departure_time) = ?
		  AND seats_left > 0
		ORDER BY departure_time ASC
	`, origin, destination, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TripOption{}
	for rows.Next() {
		var t models.TripOption
		if err := scanTrip(rows.Scan, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetByID fetches one trip offer regardless of remaining capacity.
func (r TripRepo) GetByID(id int64) (models.TripOption, error) {
	var t models.TripOption
	err := scanTrip(r.DB.QueryRow(`
		SELECT `+tripColumns+`
		FROM transport_options
		WHERE trip_id = ?
		LIMIT 1
	`, id).Scan, &t)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TripOption{}, domain.NotFoundError{Resource: "trip", Err: err}
	}
	if err != nil {
		return models.TripOption{}, err
	}
	return t, nil
}

// Create inserts a trip offer into the catalogue (admin path).
func (r TripRepo) Create(t models.TripOption) (models.TripOption, error) {
	res, err := r.DB.Exec(`
		INSERT INTO transport_options
			(departure_time, arrival_time, duration, boarding_point, dropping_point,
			 service_type, fare, seats_left, cancellation_policy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.DepartureTime, t.ArrivalTime, t.Duration, t.BoardingPoint, t.DroppingPoint,
		string(t.ServiceType), t.FarePerSeat, t.SeatsLeft, t.CancellationPolicy)
	if err != nil {
		return models.TripOption{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.TripOption{}, err
	}
	t.TripID = id
	return t, nil
}

// Update replaces a trip offer in place.
func (r TripRepo) Update(id int64, t models.TripOption) error {
	res, err := r.DB.Exec(`
		UPDATE transport_options
		SET departure_time=?, arrival_time=?, duration=?, boarding_point=?,
			dropping_point=?, service_type=?, fare=?, seats_left=?, cancellation_policy=?
		WHERE trip_id=?
	`, t.DepartureTime, t.ArrivalTime, t.Duration, t.BoardingPoint, t.DroppingPoint,
		string(t.ServiceType), t.FarePerSeat, t.SeatsLeft, t.CancellationPolicy, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

// Delete removes a trip offer from the catalogue.
func (r TripRepo) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM transport_options WHERE trip_id=?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

func scanTrip(scan func(dest ...any) error, t *models.TripOption) error {
	var service string
	if err := scan(
		&t.TripID,
		&t.DepartureTime,
		&t.ArrivalTime,
		&t.Duration,
		&t.BoardingPoint,
		&t.DroppingPoint,
		&service,
		&t.FarePerSeat,
		&t.SeatsLeft,
		&t.CancellationPolicy,
	); err != nil {
		return err
	}
	t.ServiceType = models.ServiceType(service)
	return nil
}
