package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/atcommodities/erp/internal/models"
	"github.com/atcommodities/erp/internal/storage"
)

// DeliveryService implements the Connect DeliveryService.
type DeliveryService struct {
	store storage.Store
}

// NewDeliveryService creates a new DeliveryService with the given storage backend.
func NewDeliveryService(store storage.Store) *DeliveryService {
	return &DeliveryService{store: store}
}

// CreateDelivery logs a vehicle dispatch. Status defaults to pending.
func (s *DeliveryService) CreateDelivery(ctx context.Context, req *connect.Request[CreateDeliveryRequest]) (*connect.Response[CreateDeliveryResponse], error) {
	in := req.Msg.Delivery
	slog.Info("CreateDelivery request received",
		"vehicle_number", in.VehicleNumber,
		"destination", in.Destination,
	)

	d, err := deliveryFromMessage(in)
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.CreateDelivery(ctx, d); err != nil {
		slog.Error("CreateDelivery failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Delivery created", "delivery_id", d.ID)
	return connect.NewResponse(&CreateDeliveryResponse{Delivery: deliveryMessage(d)}), nil
}

// ListDeliveries returns the delivery log, latest first, with counts by status.
func (s *DeliveryService) ListDeliveries(ctx context.Context, req *connect.Request[ListDeliveriesRequest]) (*connect.Response[ListDeliveriesResponse], error) {
	deliveries, err := s.store.ListDeliveries(ctx)
	if err != nil {
		slog.Error("ListDeliveries failed", "error", err)
		return nil, toConnectError(err)
	}

	resp := &ListDeliveriesResponse{
		Deliveries: make([]*Delivery, len(deliveries)),
		Stats:      DeliveryStats{Total: len(deliveries)},
	}
	for i, d := range deliveries {
		resp.Deliveries[i] = deliveryMessage(d)
		switch d.Status {
		case models.DeliveryPending:
			resp.Stats.Pending++
		case models.DeliveryInTransit:
			resp.Stats.InTransit++
		case models.DeliveryDelivered:
			resp.Stats.Delivered++
		}
	}
	return connect.NewResponse(resp), nil
}

// UpdateDeliveryStatus moves a delivery between pending, in-transit and delivered.
func (s *DeliveryService) UpdateDeliveryStatus(ctx context.Context, req *connect.Request[UpdateDeliveryStatusRequest]) (*connect.Response[UpdateDeliveryStatusResponse], error) {
	status, err := models.ParseDeliveryStatus(req.Msg.Status)
	if err != nil {
		return nil, toConnectError(fmt.Errorf("%w: %v", errInvalid, err))
	}
	if err := s.store.UpdateDeliveryStatus(ctx, req.Msg.ID, status); err != nil {
		slog.Error("UpdateDeliveryStatus failed", "delivery_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("Delivery status updated", "delivery_id", req.Msg.ID, "status", status)
	return connect.NewResponse(&UpdateDeliveryStatusResponse{}), nil
}

// DeleteDelivery removes a delivery from the log.
func (s *DeliveryService) DeleteDelivery(ctx context.Context, req *connect.Request[DeleteDeliveryRequest]) (*connect.Response[DeleteDeliveryResponse], error) {
	if err := s.store.DeleteDelivery(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteDelivery failed", "delivery_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("Delivery deleted", "delivery_id", req.Msg.ID)
	return connect.NewResponse(&DeleteDeliveryResponse{}), nil
}

func deliveryFromMessage(in Delivery) (*models.Delivery, error) {
	required := []struct{ field, value string }{
		{"vehicle_number", in.VehicleNumber},
		{"driver_name", in.DriverName},
		{"delivery_date", in.Date},
		{"delivery_time", in.Time},
		{"destination", in.Destination},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, fmt.Errorf("%w: %s required", errInvalid, r.field)
		}
	}
	if _, err := time.Parse(time.DateOnly, in.Date); err != nil {
		return nil, fmt.Errorf("%w: delivery_date %q is not YYYY-MM-DD", errInvalid, in.Date)
	}
	if _, err := time.Parse("15:04", in.Time); err != nil {
		return nil, fmt.Errorf("%w: delivery_time %q is not HH:MM", errInvalid, in.Time)
	}

	status := models.DeliveryPending
	if in.Status != "" {
		var err error
		if status, err = models.ParseDeliveryStatus(in.Status); err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalid, err)
		}
	}

	return &models.Delivery{
		VehicleNumber: strings.ToUpper(strings.TrimSpace(in.VehicleNumber)),
		DriverName:    strings.TrimSpace(in.DriverName),
		Date:          in.Date,
		Time:          in.Time,
		Destination:   strings.TrimSpace(in.Destination),
		LoadDetails:   strings.TrimSpace(in.LoadDetails),
		Status:        status,
	}, nil
}

func deliveryMessage(d *models.Delivery) *Delivery {
	return &Delivery{
		ID:            d.ID,
		VehicleNumber: d.VehicleNumber,
		DriverName:    d.DriverName,
		Date:          d.Date,
		Time:          d.Time,
		Destination:   d.Destination,
		LoadDetails:   d.LoadDetails,
		Status:        string(d.Status),
	}
}
