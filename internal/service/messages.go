package service

// Wire messages for the Connect services. Money and hours travel unrounded;
// the *Display fields carry the two-decimal rendering.

type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total,omitempty"`
}

type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	TaxAmount      float64 `json:"tax_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	GrandTotal     float64 `json:"grand_total"`
	Display        string  `json:"display"`
	Words          string  `json:"words"`
}

type Invoice struct {
	ID              string        `json:"id"`
	Number          string        `json:"invoice_number"`
	ClientID        string        `json:"client_id"`
	ClientName      string        `json:"client_name"`
	Date            string        `json:"date"`
	Items           []InvoiceItem `json:"items,omitempty"`
	TaxPercent      float64       `json:"tax_percent"`
	DiscountPercent float64       `json:"discount_percent"`
	Totals          Totals        `json:"totals"`
	Status          string        `json:"status"`
	CreatedAt       int64         `json:"created_at"`
}

type PreviewInvoiceRequest struct {
	Items           []InvoiceItem `json:"items"`
	TaxPercent      float64       `json:"tax_percent"`
	DiscountPercent float64       `json:"discount_percent"`
}

type PreviewInvoiceResponse struct {
	Items  []InvoiceItem `json:"items"`
	Totals Totals        `json:"totals"`
}

type CreateInvoiceRequest struct {
	ClientID        string        `json:"client_id"`
	Number          string        `json:"invoice_number"`
	Date            string        `json:"date,omitempty"` // defaults to today
	Items           []InvoiceItem `json:"items"`
	TaxPercent      float64       `json:"tax_percent"`
	DiscountPercent float64       `json:"discount_percent"`
}

type CreateInvoiceResponse struct {
	Invoice *Invoice `json:"invoice"`
}

type GetInvoiceRequest struct {
	ID string `json:"id"`
}

type GetInvoiceResponse struct {
	Invoice *Invoice `json:"invoice"`
}

type ListInvoicesRequest struct{}

type ListInvoicesResponse struct {
	Invoices []*Invoice `json:"invoices"`
}

type UpdateInvoiceStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type UpdateInvoiceStatusResponse struct{}

type DeleteInvoiceRequest struct {
	ID string `json:"id"`
}

type DeleteInvoiceResponse struct{}

type AttendanceRecord struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	CheckIn      string  `json:"check_in"`
	CheckOut     string  `json:"check_out,omitempty"`
	WorkLocation string  `json:"work_location"`
	TotalHours   float64 `json:"total_hours"`
}

type TodayStats struct {
	Total      int `json:"total"`
	CheckedOut int `json:"checked_out"`
	Office     int `json:"office"`
	Warehouse  int `json:"warehouse"`
	Field      int `json:"field"`
}

type CheckInRequest struct {
	EmployeeID   string `json:"employee_id"`
	WorkLocation string `json:"work_location"`
}

type CheckInResponse struct {
	Record *AttendanceRecord `json:"record"`
}

type CheckOutRequest struct {
	RecordID string `json:"record_id"`
}

type CheckOutResponse struct {
	Record *AttendanceRecord `json:"record"`
}

type ListAttendanceRequest struct {
	Date string `json:"date,omitempty"` // defaults to today
}

type ListAttendanceResponse struct {
	Records []*AttendanceRecord `json:"records"`
	Stats   TodayStats          `json:"stats"`
}

type Delivery struct {
	ID            string `json:"id"`
	VehicleNumber string `json:"vehicle_number"`
	DriverName    string `json:"driver_name"`
	Date          string `json:"delivery_date"`
	Time          string `json:"delivery_time"`
	Destination   string `json:"destination"`
	LoadDetails   string `json:"load_details,omitempty"`
	Status        string `json:"status"`
}

type DeliveryStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	InTransit int `json:"in_transit"`
	Delivered int `json:"delivered"`
}

type CreateDeliveryRequest struct {
	Delivery Delivery `json:"delivery"`
}

type CreateDeliveryResponse struct {
	Delivery *Delivery `json:"delivery"`
}

type ListDeliveriesRequest struct{}

type ListDeliveriesResponse struct {
	Deliveries []*Delivery    `json:"deliveries"`
	Stats      DeliveryStats `json:"stats"`
}

type UpdateDeliveryStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type UpdateDeliveryStatusResponse struct{}

type DeleteDeliveryRequest struct {
	ID string `json:"id"`
}

type DeleteDeliveryResponse struct{}

type Employee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Email      string `json:"email"`
}

type Client struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

type ListEmployeesRequest struct{}

type ListEmployeesResponse struct {
	Employees []*Employee `json:"employees"`
}

type ListClientsRequest struct{}

type ListClientsResponse struct {
	Clients []*Client `json:"clients"`
}

type GetDashboardRequest struct{}

type GetDashboardResponse struct {
	TotalEmployees   int   `json:"total_employees"`
	TodayAttendance  int   `json:"today_attendance"`
	TotalInvoices    int   `json:"total_invoices"`
	ActiveDeliveries int   `json:"active_deliveries"`
	StorageKB        int64 `json:"storage_kb"`
}

type Operator struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse answers both Register and Login.
type AuthResponse struct {
	Operator *Operator `json:"operator"`
	Token    string    `json:"token"`
}
