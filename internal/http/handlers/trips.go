package handlers

import (
	"net/http"
	"strconv"

	"transportease/internal/domain"
	"transportease/internal/domain/models"
	"transportease/internal/utils"

	"github.com/gin-gonic/gin"
)

// SearchTrips handles GET /api/trips/search?origin=&destination=&date=.
func (a API) SearchTrips(c *gin.Context) {
	trips, err := a.search(c).SearchTrips(
		c.Query("origin"),
		c.Query("destination"),
		c.Query("date"),
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"trips": trips,
		"count": len(trips),
	})
}

// GetSeatMap handles GET /api/trips/:id/seatmap?compartment=. Train trips
// additionally list their compartments so the client can offer the choice.
func (a API) GetSeatMap(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	svc := a.search(c)
	trip, err := svc.GetTrip(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	seatMap, err := svc.SeatMapForTrip(trip, c.Query("compartment"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	resp := gin.H{
		"trip_id":      trip.TripID,
		"service_type": trip.ServiceType,
		"seat_map":     seatMap,
	}
	if trip.ServiceType == models.ServiceTrain {
		resp["compartments"] = domain.TrainCompartments()
	}
	c.JSON(http.StatusOK, resp)
}

type tripRequest struct {
	DepartureTime      string `json:"departure_time"`
	ArrivalTime        string `json:"arrival_time"`
	Duration           string `json:"duration"`
	BoardingPoint      string `json:"boarding_point"`
	DroppingPoint      string `json:"dropping_point"`
	ServiceType        string `json:"service_type"`
	Fare               int64  `json:"fare"`
	SeatsLeft          int    `json:"seats_left"`
	CancellationPolicy string `json:"cancellation_policy"`
}

func (r tripRequest) toTripOption() (models.TripOption, error) {
	depart, err := utils.ParseDateTime(r.DepartureTime)
	if err != nil {
		return models.TripOption{}, domain.ValidationError{Field: "departure_time", Msg: "must be YYYY-MM-DD HH:MM:SS", Err: err}
	}
	arrive, err := utils.ParseDateTime(r.ArrivalTime)
	if err != nil {
		return models.TripOption{}, domain.ValidationError{Field: "arrival_time", Msg: "must be YYYY-MM-DD HH:MM:SS", Err: err}
	}
	service := models.ServiceType(utils.TrimOrEmpty(r.ServiceType))
	if !service.Valid() {
		return models.TripOption{}, domain.ValidationError{Field: "service_type", Msg: "must be Bus, Train or Car"}
	}
	if r.Fare <= 0 {
		return models.TripOption{}, domain.ValidationError{Field: "fare", Msg: "must be positive"}
	}
	if r.SeatsLeft < 0 {
		return models.TripOption{}, domain.ValidationError{Field: "seats_left", Msg: "must not be negative"}
	}
	if utils.TrimOrEmpty(r.BoardingPoint) == "" || utils.TrimOrEmpty(r.DroppingPoint) == "" {
		return models.TripOption{}, domain.ValidationError{Field: "route", Msg: "boarding and dropping point are required"}
	}
	return models.TripOption{
		DepartureTime:      depart,
		ArrivalTime:        arrive,
		Duration:           utils.TrimOrEmpty(r.Duration),
		BoardingPoint:      utils.TrimOrEmpty(r.BoardingPoint),
		DroppingPoint:      utils.TrimOrEmpty(r.DroppingPoint),
		ServiceType:        service,
		FarePerSeat:        r.Fare,
		SeatsLeft:          r.SeatsLeft,
		CancellationPolicy: utils.TrimOrEmpty(r.CancellationPolicy),
	}, nil
}

// CreateTrip handles POST /api/trips (admin catalogue management).
func (a API) CreateTrip(c *gin.Context) {
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", "invalid payload", nil)
		return
	}
	trip, err := req.toTripOption()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	created, err := a.Trips.Create(trip)
	if err != nil {
		RespondDomainError(c, domain.PersistenceError{Op: "trip", Err: err})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateTrip handles PUT /api/trips/:id.
func (a API) UpdateTrip(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", "invalid payload", nil)
		return
	}
	trip, err := req.toTripOption()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := a.Trips.Update(id, trip); err != nil {
		if domain.IsNotFound(err) {
			RespondDomainError(c, err)
			return
		}
		RespondDomainError(c, domain.PersistenceError{Op: "trip", Err: err})
		return
	}
	trip.TripID = id
	c.JSON(http.StatusOK, trip)
}

// DeleteTrip handles DELETE /api/trips/:id.
func (a API) DeleteTrip(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := a.Trips.Delete(id); err != nil {
		if domain.IsNotFound(err) {
			RespondDomainError(c, err)
			return
		}
		RespondDomainError(c, domain.PersistenceError{Op: "trip", Err: err})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid id", nil)
		return 0, false
	}
	return id, true
}
