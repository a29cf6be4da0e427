package models

import "fmt"

// DeliveryStatus is the dispatch state of a delivery.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryInTransit DeliveryStatus = "in-transit"
	DeliveryDelivered DeliveryStatus = "delivered"
)

// ParseDeliveryStatus validates a status string.
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	switch st := DeliveryStatus(s); st {
	case DeliveryPending, DeliveryInTransit, DeliveryDelivered:
		return st, nil
	}
	return "", fmt.Errorf("unknown delivery status %q", s)
}

// Delivery is one vehicle dispatch.
type Delivery struct {
	// ID is the unique identifier for the delivery (UUID format).
	ID string

	VehicleNumber string
	DriverName    string

	// Date is the delivery date, "2006-01-02"; Time is "15:04".
	Date string
	Time string

	Destination string

	// LoadDetails is free text (e.g., "25 M/TON coal"). Optional.
	LoadDetails string

	Status DeliveryStatus
}
