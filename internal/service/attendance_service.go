package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/atcommodities/erp/internal/calculator"
	"github.com/atcommodities/erp/internal/metrics"
	"github.com/atcommodities/erp/internal/models"
	"github.com/atcommodities/erp/internal/storage"
)

// AttendanceService implements the Connect AttendanceService.
type AttendanceService struct {
	store storage.Store
	now   func() time.Time
}

// NewAttendanceService creates a new AttendanceService with the given storage backend.
func NewAttendanceService(store storage.Store) *AttendanceService {
	return &AttendanceService{store: store, now: time.Now}
}

// CheckIn records an employee's arrival at the current time.
// An employee can check in once per day.
func (s *AttendanceService) CheckIn(ctx context.Context, req *connect.Request[CheckInRequest]) (*connect.Response[CheckInResponse], error) {
	slog.Info("CheckIn request received",
		"employee_id", req.Msg.EmployeeID,
		"work_location", req.Msg.WorkLocation,
	)

	location, err := models.ParseWorkLocation(req.Msg.WorkLocation)
	if err != nil {
		return nil, toConnectError(fmt.Errorf("%w: %v", errInvalid, err))
	}

	employee, err := s.store.GetEmployee(ctx, req.Msg.EmployeeID)
	if err != nil {
		slog.Error("CheckIn failed - employee lookup", "employee_id", req.Msg.EmployeeID, "error", err)
		return nil, toConnectError(err)
	}

	now := s.now()
	record := &models.AttendanceRecord{
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		Date:         now.Format(time.DateOnly),
		CheckIn:      now.Format(calculator.ClockLayout),
		WorkLocation: location,
	}
	if err := s.store.CreateAttendance(ctx, record); err != nil {
		slog.Warn("CheckIn rejected", "employee", employee.Name, "error", err)
		return nil, toConnectError(err)
	}
	metrics.IncCheckIn(string(location))

	slog.Info("Employee checked in", "employee", employee.Name, "record_id", record.ID, "check_in", record.CheckIn)
	return connect.NewResponse(&CheckInResponse{Record: attendanceMessage(record)}), nil
}

// CheckOut closes a record at the current time and stores the worked hours.
func (s *AttendanceService) CheckOut(ctx context.Context, req *connect.Request[CheckOutRequest]) (*connect.Response[CheckOutResponse], error) {
	slog.Info("CheckOut request received", "record_id", req.Msg.RecordID)

	record, err := s.store.GetAttendance(ctx, req.Msg.RecordID)
	if err != nil {
		slog.Error("CheckOut failed - record lookup", "record_id", req.Msg.RecordID, "error", err)
		return nil, toConnectError(err)
	}
	if record.CheckedOut() {
		return nil, toConnectError(
			fmt.Errorf("record %s: %w at %s", record.ID, storage.ErrAlreadyCheckedOut, record.CheckOut))
	}

	checkOut := s.now().Format(calculator.ClockLayout)
	hours, err := calculator.WorkedHours(record.CheckIn, checkOut)
	if err != nil {
		slog.Warn("CheckOut rejected", "record_id", record.ID, "check_in", record.CheckIn, "check_out", checkOut, "error", err)
		return nil, toConnectError(err)
	}

	if err := s.store.CheckOut(ctx, record.ID, checkOut, hours); err != nil {
		slog.Error("CheckOut failed", "record_id", record.ID, "error", err)
		return nil, toConnectError(err)
	}
	record.CheckOut = checkOut
	record.TotalHours = hours

	slog.Info("Employee checked out", "employee", record.EmployeeName, "total_hours", hours)
	return connect.NewResponse(&CheckOutResponse{Record: attendanceMessage(record)}), nil
}

// ListAttendance returns one day's records with summary counts.
func (s *AttendanceService) ListAttendance(ctx context.Context, req *connect.Request[ListAttendanceRequest]) (*connect.Response[ListAttendanceResponse], error) {
	date := req.Msg.Date
	if date == "" {
		date = s.now().Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, date); err != nil {
		return nil, toConnectError(fmt.Errorf("%w: date %q is not YYYY-MM-DD", errInvalid, date))
	}

	records, err := s.store.ListAttendanceByDate(ctx, date)
	if err != nil {
		slog.Error("ListAttendance failed", "date", date, "error", err)
		return nil, toConnectError(err)
	}

	resp := &ListAttendanceResponse{
		Records: make([]*AttendanceRecord, len(records)),
		Stats:   todayStats(records),
	}
	for i, r := range records {
		resp.Records[i] = attendanceMessage(r)
	}
	return connect.NewResponse(resp), nil
}

func todayStats(records []*models.AttendanceRecord) TodayStats {
	stats := TodayStats{Total: len(records)}
	for _, r := range records {
		if r.CheckedOut() {
			stats.CheckedOut++
		}
		switch r.WorkLocation {
		case models.LocationOffice:
			stats.Office++
		case models.LocationWarehouse:
			stats.Warehouse++
		case models.LocationField:
			stats.Field++
		}
	}
	return stats
}

func attendanceMessage(r *models.AttendanceRecord) *AttendanceRecord {
	return &AttendanceRecord{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Date:         r.Date,
		CheckIn:      r.CheckIn,
		CheckOut:     r.CheckOut,
		WorkLocation: string(r.WorkLocation),
		TotalHours:   r.TotalHours,
	}
}
