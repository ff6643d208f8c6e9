package handlers

import (
	"database/sql"

	"transportease/internal/config"
	"transportease/internal/domain/models"
	"transportease/internal/http/middleware"
	"transportease/internal/services"

	"github.com/gin-gonic/gin"
)

// TripCatalogue extends the read-side trip store with the admin write
// operations. Satisfied by repositories.TripRepo.
type TripCatalogue interface {
	services.TripStore
	Create(t models.TripOption) (models.TripOption, error)
	Update(id int64, t models.TripOption) error
	Delete(id int64) error
}

// API bundles the injected dependencies behind every handler. Stores are
// interfaces so tests can swap in fakes without a database.
type API struct {
	Env      config.Env
	DB       *sql.DB
	Trips    TripCatalogue
	Bookings services.BookingStore
}

func (a API) search(c *gin.Context) services.SearchService {
	return services.SearchService{Trips: a.Trips, RequestID: middleware.GetRequestID(c)}
}

func (a API) booking(c *gin.Context) services.BookingService {
	return services.BookingService{Bookings: a.Bookings, Trips: a.Trips, RequestID: middleware.GetRequestID(c)}
}

func (a API) ticket(c *gin.Context) services.TicketService {
	return services.TicketService{Bookings: a.Bookings, Trips: a.Trips, RequestID: middleware.GetRequestID(c)}
}
