package domain

import (
	"transportease/internal/domain/models"
)

// SeatMap is the 2-D seat arrangement of one vehicle. Cells hold a seat
// identifier, the empty string for an aisle, or a placeholder such as the
// driver position. Seat identifiers are unique within the full layout.
type SeatMap struct {
	Rows [][]string `json:"rows"`
}

// Compartment is one selectable sub-section of a train layout.
type Compartment struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Map  SeatMap `json:"seat_map"`
}

// CellDriver marks the driver position in car layouts. It is rendered but
// never selectable.
const CellDriver = "DRIVER"

var busLayout = SeatMap{Rows: [][]string{
	{"A1", "A2", "", "A3", "A4"},
	{"B1", "B2", "", "B3", "B4"},
	{"C1", "C2", "", "C3", "C4"},
	{"D1", "D2", "", "D3", "D4"},
}}

var carLayout = SeatMap{Rows: [][]string{
	{"", CellDriver, ""},
	{"A1", "", "A2"},
	{"B1", "", "B2"},
}}

var trainCompartments = []Compartment{
	{
		ID:   "c1",
		Name: "Compartment 1",
		Map: SeatMap{Rows: [][]string{
			{"A1", "A2", "A3", "A4", "", "A5", "A6", "A7", "A8"},
			{"B1", "B2", "B3", "B4", "", "B5", "B6", "B7", "B8"},
			{"C1", "C2", "C3", "C4", "", "C5", "C6", "C7", "C8"},
		}},
	},
	{
		ID:   "c2",
		Name: "Compartment 2",
		Map: SeatMap{Rows: [][]string{
			{"D1", "D2", "D3", "D4", "", "D5", "D6", "D7", "D8"},
			{"E1", "E2", "E3", "E4", "", "E5", "E6", "E7", "E8"},
			{"F1", "F2", "F3", "F4", "", "F5", "F6", "F7", "F8"},
		}},
	},
}

// IsSeat reports whether a cell is a selectable seat rather than an aisle or
// placeholder.
func IsSeat(cell string) bool {
	return cell != "" && cell != CellDriver
}

// Seats returns the seat identifiers of the layout in row order.
func (m SeatMap) Seats() []string {
	var out []string
	for _, row := range m.Rows {
		for _, cell := range row {
			if IsSeat(cell) {
				out = append(out, cell)
			}
		}
	}
	return out
}

// Has reports whether seatID exists in the layout.
func (m SeatMap) Has(seatID string) bool {
	for _, row := range m.Rows {
		for _, cell := range row {
			if IsSeat(cell) && cell == seatID {
				return true
			}
		}
	}
	return false
}

// TrainCompartments lists the selectable train sub-sections.
func TrainCompartments() []Compartment {
	return trainCompartments
}

// SeatMapFor returns the layout for a service type. For trains, compartment
// selects the sub-section; empty compartment returns the first one.
func SeatMapFor(service models.ServiceType, compartment string) (SeatMap, error) {
	switch service {
	case models.ServiceBus:
		return busLayout, nil
	case models.ServiceCar:
		return carLayout, nil
	case models.ServiceTrain:
		if compartment == "" {
			return trainCompartments[0].Map, nil
		}
		for _, c := range trainCompartments {
			if c.ID == compartment {
				return c.Map, nil
			}
		}
		return SeatMap{}, NotFoundError{Resource: "compartment"}
	}
	return SeatMap{}, ValidationError{Field: "service_type", Msg: "unknown service type"}
}

// VehicleSeatMap returns the full selectable layout of a vehicle, spanning
// every compartment for trains. Used to validate selected seats.
func VehicleSeatMap(service models.ServiceType) (SeatMap, error) {
	if service == models.ServiceTrain {
		var rows [][]string
		for _, c := range trainCompartments {
			rows = append(rows, c.Map.Rows...)
		}
		return SeatMap{Rows: rows}, nil
	}
	return SeatMapFor(service, "")
}
