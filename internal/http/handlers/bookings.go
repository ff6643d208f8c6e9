package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"transportease/internal/domain"
	"transportease/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type selectionRequest struct {
	TripID         int64    `json:"trip_id"`
	SelectedSeats  []string `json:"selected_seats"`
	PassengerCount int      `json:"passenger_count"`
	LuggageCount   int      `json:"luggage_count"`
}

func (r selectionRequest) toSelection() (domain.Selection, error) {
	if r.TripID <= 0 {
		return domain.Selection{}, domain.ValidationError{Field: "trip_id", Msg: "must be positive"}
	}
	if r.PassengerCount < domain.MinPassengers || r.PassengerCount > domain.MaxPassengers {
		return domain.Selection{}, domain.ValidationError{
			Field: "passenger_count",
			Msg:   fmt.Sprintf("must be between %d and %d", domain.MinPassengers, domain.MaxPassengers),
		}
	}
	if r.LuggageCount < 0 {
		return domain.Selection{}, domain.ValidationError{Field: "luggage_count", Msg: "must not be negative"}
	}

	seen := map[string]bool{}
	seats := make([]string, 0, len(r.SelectedSeats))
	for _, raw := range r.SelectedSeats {
		seat := strings.ToUpper(strings.TrimSpace(raw))
		if seat == "" {
			continue
		}
		if seen[seat] {
			return domain.Selection{}, domain.ValidationError{Field: "selected_seats", Msg: "duplicate seat " + seat}
		}
		seen[seat] = true
		seats = append(seats, seat)
	}

	return domain.Selection{
		TripID:         r.TripID,
		SelectedSeats:  seats,
		PassengerCount: r.PassengerCount,
		LuggageCount:   r.LuggageCount,
	}, nil
}

// Quote handles POST /api/quote: the running fare total for a selection,
// recomputed server-side so the client never does money math.
func (a API) Quote(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", "invalid payload", nil)
		return
	}
	sel, err := req.toSelection()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	trip, err := a.search(c).GetTrip(sel.TripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	seatsTotal := trip.FarePerSeat * int64(len(sel.SelectedSeats))
	luggageTotal := int64(sel.LuggageCount) * domain.LuggageUnitRate
	c.JSON(http.StatusOK, gin.H{
		"trip_id":       trip.TripID,
		"fare_per_seat": trip.FarePerSeat,
		"seats_total":   seatsTotal,
		"luggage_total": luggageTotal,
		"total":         domain.ComputeTotal(sel, trip),
	})
}

// CreateBooking handles POST /api/bookings.
func (a API) CreateBooking(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", "invalid payload", nil)
		return
	}
	sel, err := req.toSelection()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	trip, err := a.search(c).GetTrip(sel.TripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	booking, err := a.booking(c).CreateBooking(middleware.GetUserID(c), sel, trip)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetBooking handles GET /api/bookings/:id.
func (a API) GetBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	booking, err := a.booking(c).FetchBooking(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !canAccess(c, booking.UserID) {
		respondError(c, http.StatusForbidden, "forbidden", "booking belongs to another user", nil)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListMyBookings handles GET /api/me/bookings.
func (a API) ListMyBookings(c *gin.Context) {
	bookings, err := a.booking(c).ListUserBookings(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// PayBooking handles POST /api/bookings/:id/pay. The payment gateway itself
// is out of scope; this endpoint marks the booking paid and is idempotent.
func (a API) PayBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	svc := a.booking(c)
	booking, err := svc.FetchBooking(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !canAccess(c, booking.UserID) {
		respondError(c, http.StatusForbidden, "forbidden", "booking belongs to another user", nil)
		return
	}
	paid, err := svc.ConfirmPayment(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": paid,
	})
}

// CancelBooking handles POST /api/bookings/:id/cancel.
func (a API) CancelBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	svc := a.booking(c)
	booking, err := svc.FetchBooking(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !canAccess(c, booking.UserID) {
		respondError(c, http.StatusForbidden, "forbidden", "booking belongs to another user", nil)
		return
	}
	cancelled, err := svc.CancelBooking(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": cancelled,
	})
}

// GetTicketPDF handles GET /api/bookings/:id/ticket.
func (a API) GetTicketPDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	booking, err := a.booking(c).FetchBooking(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !canAccess(c, booking.UserID) {
		respondError(c, http.StatusForbidden, "forbidden", "booking belongs to another user", nil)
		return
	}
	data, filename, err := a.ticket(c).GenerateTicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func canAccess(c *gin.Context, ownerID int64) bool {
	if middleware.GetUserRole(c) == "admin" {
		return true
	}
	return middleware.GetUserID(c) == ownerID
}
