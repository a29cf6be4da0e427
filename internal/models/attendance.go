package models

import "fmt"

// WorkLocation is where an employee worked for the day.
type WorkLocation string

const (
	LocationOffice    WorkLocation = "office"
	LocationWarehouse WorkLocation = "warehouse"
	LocationField     WorkLocation = "field"
)

// ParseWorkLocation validates a location string.
func ParseWorkLocation(s string) (WorkLocation, error) {
	switch l := WorkLocation(s); l {
	case LocationOffice, LocationWarehouse, LocationField:
		return l, nil
	}
	return "", fmt.Errorf("unknown work location %q", s)
}

// AttendanceRecord is one employee's attendance for one day.
type AttendanceRecord struct {
	// ID is the unique identifier for the record (UUID format).
	ID string

	EmployeeID   string
	EmployeeName string

	// Date is the calendar day, "2006-01-02".
	Date string

	// CheckIn is the time of day the employee arrived, "15:04:05".
	CheckIn string

	// CheckOut is empty until the employee checks out.
	CheckOut string

	WorkLocation WorkLocation

	// TotalHours is CheckOut − CheckIn in hours, rounded to 2 decimals.
	// Zero until checked out.
	TotalHours float64
}

// CheckedOut reports whether the employee has checked out.
func (r *AttendanceRecord) CheckedOut() bool {
	return r.CheckOut != ""
}
