package models

// Employee is a member of staff who checks in for attendance.
type Employee struct {
	// ID is the unique identifier for the employee (UUID format).
	ID string

	Name       string
	Department string
	Email      string
}

// Client is a customer invoices are raised against.
type Client struct {
	// ID is the unique identifier for the client (UUID format).
	ID string

	// Name is the company name (e.g., "Niazi Bricks").
	Name string

	// Contact is the person dealt with at the company.
	Contact string

	Address string
}

// DashboardStats summarises the store for the landing page.
type DashboardStats struct {
	TotalEmployees   int
	TodayAttendance  int
	TotalInvoices    int
	ActiveDeliveries int

	// StorageKB is the size of the database file in kilobytes.
	StorageKB int64
}
