package services

import (
	"bytes"
	"fmt"
	"strings"

	"transportease/internal/domain"
	"transportease/internal/domain/models"
	"transportease/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// TicketService renders the downloadable e-ticket for a paid booking.
type TicketService struct {
	Bookings  BookingStore
	Trips     TripStore
	RequestID string
}

// GenerateTicket builds the PDF for a booking and returns the document plus
// a suggested filename. Only paid bookings have a ticket.
func (s TicketService) GenerateTicket(bookingID int64) ([]byte, string, error) {
	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, "", err
		}
		return nil, "", domain.LookupError{Op: "booking", Err: err}
	}
	if booking.Status != models.StatusPaid {
		return nil, "", domain.ValidationError{Field: "status", Msg: "ticket is available after payment"}
	}

	// Trip details enrich the ticket but their absence does not block it.
	trip, tripErr := s.Trips.GetByID(booking.TripID)
	if tripErr != nil {
		utils.LogEvent(s.RequestID, "ticket", "trip_lookup", fmt.Sprintf("booking_id=%d err=%v", bookingID, tripErr))
		trip = models.TripOption{}
	}

	utils.LogEvent(s.RequestID, "ticket", "generate", fmt.Sprintf("booking_id=%d ref=%s", booking.ID, booking.Ref))
	return buildTicketPDF(booking, trip)
}

func buildTicketPDF(b models.Booking, trip models.TripOption) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRANSPORTEASE E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking Ref    : %s", b.Ref),
		fmt.Sprintf("Booking ID     : #%d", b.ID),
		fmt.Sprintf("From           : %s", safe(b.BoardingPoint, "-")),
		fmt.Sprintf("To             : %s", safe(b.DroppingPoint, "-")),
		fmt.Sprintf("Seats          : %s", safe(strings.Join(b.SelectedSeats, ", "), "-")),
		fmt.Sprintf("Passengers     : %d", b.PassengerCount),
		fmt.Sprintf("Luggage        : %d", b.LuggageCount),
		fmt.Sprintf("Amount Paid    : %s", utils.FormatAmount(b.TotalAmount)),
		fmt.Sprintf("Booked At      : %s", utils.FormatDateTime(b.CreatedAt)),
	}
	if trip.TripID != 0 {
		lines = append(lines,
			fmt.Sprintf("Service        : %s", safe(string(trip.ServiceType), "-")),
			fmt.Sprintf("Departure      : %s", utils.FormatDateTime(trip.DepartureTime)),
			fmt.Sprintf("Arrival        : %s", utils.FormatDateTime(trip.ArrivalTime)),
		)
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this e-ticket at boarding. It covers every seat listed above.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s.pdf", safeFilenamePart(b.Ref))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
