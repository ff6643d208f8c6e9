package models

import "time"

// ServiceType identifies the vehicle category of a trip offer.
type ServiceType string

const (
	ServiceBus   ServiceType = "Bus"
	ServiceTrain ServiceType = "Train"
	ServiceCar   ServiceType = "Car"
)

// Valid reports whether the service type is one of the supported modes.
func (s ServiceType) Valid() bool {
	switch s {
	case ServiceBus, ServiceTrain, ServiceCar:
		return true
	}
	return false
}

// TripOption is one externally sourced trip offer returned by search.
// SeatsLeft is read at search time only; this service never decrements it.
type TripOption struct {
	TripID             int64       `json:"trip_id"`
	DepartureTime      time.Time   `json:"departure_time"`
	ArrivalTime        time.Time   `json:"arrival_time"`
	Duration           string      `json:"duration"`
	BoardingPoint      string      `json:"boarding_point"`
	DroppingPoint      string      `json:"dropping_point"`
	ServiceType        ServiceType `json:"service_type"`
	FarePerSeat        int64       `json:"fare"`
	SeatsLeft          int         `json:"seats_left"`
	CancellationPolicy string      `json:"cancellation_policy"`
}
