package services

import (
	"fmt"
	"strings"

	"transportease/internal/domain"
	"transportease/internal/domain/models"
	"transportease/internal/utils"
)

// SearchService answers trip searches against the external trip source.
type SearchService struct {
	Trips     TripStore
	RequestID string
}

// SearchTrips returns trips whose boarding point matches origin and dropping
// point matches destination (case-insensitive substrings) on the given
// travel date, sold-out trips excluded, ordered by departure time. Input
// validation happens before any lookup is issued.
func (s SearchService) SearchTrips(origin, destination, date string) ([]models.TripOption, error) {
	origin = utils.TrimOrEmpty(origin)
	destination = utils.TrimOrEmpty(destination)
	if origin == "" {
		return nil, domain.ValidationError{Field: "origin", Msg: "required"}
	}
	if destination == "" {
		return nil, domain.ValidationError{Field: "destination", Msg: "required"}
	}
	if utils.TrimOrEmpty(date) == "" {
		return nil, domain.ValidationError{Field: "date", Msg: "required"}
	}
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "must be a valid YYYY-MM-DD date", Err: err}
	}

	var trips []models.TripOption
	var lastErr error
	for attempt := 1; attempt <= readAttempts; attempt++ {
		trips, lastErr = s.Trips.Search(origin, destination, day)
		if lastErr == nil {
			break
		}
		utils.LogEvent(s.RequestID, "search", "retry",
			fmt.Sprintf("attempt=%d err=%v", attempt, lastErr))
	}
	if lastErr != nil {
		return nil, domain.LookupError{Op: "trip search", Err: lastErr}
	}

	utils.LogEvent(s.RequestID, "search", "trips",
		fmt.Sprintf("origin=%s destination=%s date=%s results=%d",
			origin, destination, utils.FormatDate(day), len(trips)))
	return trips, nil
}

// GetTrip fetches one trip offer by id, retrying the read once.
func (s SearchService) GetTrip(id int64) (models.TripOption, error) {
	if id <= 0 {
		return models.TripOption{}, domain.ValidationError{Field: "trip_id", Msg: "must be positive"}
	}
	var trip models.TripOption
	var lastErr error
	for attempt := 1; attempt <= readAttempts; attempt++ {
		trip, lastErr = s.Trips.GetByID(id)
		if lastErr == nil || domain.IsNotFound(lastErr) {
			break
		}
	}
	if lastErr != nil {
		if domain.IsNotFound(lastErr) {
			return models.TripOption{}, lastErr
		}
		return models.TripOption{}, domain.LookupError{Op: "trip", Err: lastErr}
	}
	return trip, nil
}

// SeatMapForTrip resolves the seat layout for a trip's vehicle. Compartment
// narrows train layouts and is ignored for other service types.
func (s SearchService) SeatMapForTrip(trip models.TripOption, compartment string) (domain.SeatMap, error) {
	if !trip.ServiceType.Valid() {
		return domain.SeatMap{}, domain.ValidationError{Field: "service_type", Msg: "unknown service type"}
	}
	if trip.ServiceType != models.ServiceTrain {
		compartment = ""
	}
	return domain.SeatMapFor(trip.ServiceType, strings.TrimSpace(compartment))
}
