package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/atcommodities/erp/internal/calculator"
	"github.com/atcommodities/erp/internal/metrics"
	"github.com/atcommodities/erp/internal/models"
	"github.com/atcommodities/erp/internal/storage"
)

// InvoiceService implements the Connect InvoiceService.
type InvoiceService struct {
	store storage.Store
	now   func() time.Time
}

// NewInvoiceService creates a new InvoiceService with the given storage backend.
func NewInvoiceService(store storage.Store) *InvoiceService {
	return &InvoiceService{store: store, now: time.Now}
}

// PreviewInvoice computes totals and words without saving anything.
func (s *InvoiceService) PreviewInvoice(ctx context.Context, req *connect.Request[PreviewInvoiceRequest]) (*connect.Response[PreviewInvoiceResponse], error) {
	lines := toLineItems(req.Msg.Items)
	totals, err := calculator.ComputeTotals(lines, req.Msg.TaxPercent, req.Msg.DiscountPercent)
	if err != nil {
		return nil, toConnectError(err)
	}

	items := make([]InvoiceItem, len(lines))
	for i, li := range lines {
		items[i] = InvoiceItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Total:       li.LineTotal(),
		}
	}

	return connect.NewResponse(&PreviewInvoiceResponse{
		Items:  items,
		Totals: totalsMessage(totals),
	}), nil
}

// CreateInvoice validates the request, computes totals and persists the invoice.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req *connect.Request[CreateInvoiceRequest]) (*connect.Response[CreateInvoiceResponse], error) {
	msg := req.Msg
	slog.Info("CreateInvoice request received",
		"invoice_number", msg.Number,
		"client_id", msg.ClientID,
		"items_count", len(msg.Items),
	)

	if err := validateInvoiceRequest(msg); err != nil {
		return nil, toConnectError(err)
	}

	client, err := s.store.GetClient(ctx, msg.ClientID)
	if err != nil {
		slog.Error("CreateInvoice failed - client lookup", "client_id", msg.ClientID, "error", err)
		return nil, toConnectError(err)
	}

	lines := toLineItems(msg.Items)
	totals, err := calculator.ComputeTotals(lines, msg.TaxPercent, msg.DiscountPercent)
	if err != nil {
		return nil, toConnectError(err)
	}

	date := msg.Date
	if date == "" {
		date = s.now().Format(time.DateOnly)
	}

	inv := &models.Invoice{
		Number:          strings.TrimSpace(msg.Number),
		ClientID:        client.ID,
		ClientName:      client.Name,
		Date:            date,
		Items:           make([]models.InvoiceItem, len(msg.Items)),
		TaxPercent:      msg.TaxPercent,
		DiscountPercent: msg.DiscountPercent,
		Subtotal:        totals.Subtotal,
		Tax:             totals.TaxAmount,
		Discount:        totals.DiscountAmount,
		Total:           totals.GrandTotal,
		Status:          models.InvoiceDraft,
	}
	for i, li := range lines {
		inv.Items[i] = models.InvoiceItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Total:       li.LineTotal(),
		}
	}

	if err := s.store.CreateInvoice(ctx, inv); err != nil {
		slog.Error("CreateInvoice failed", "invoice_number", inv.Number, "error", err)
		return nil, toConnectError(err)
	}
	metrics.InvoiceCreated(inv.Total)

	slog.Info("Invoice created", "invoice_id", inv.ID, "invoice_number", inv.Number, "total", calculator.FormatAmount(inv.Total))

	return connect.NewResponse(&CreateInvoiceResponse{Invoice: invoiceMessage(inv)}), nil
}

// GetInvoice retrieves an invoice with its items and words.
func (s *InvoiceService) GetInvoice(ctx context.Context, req *connect.Request[GetInvoiceRequest]) (*connect.Response[GetInvoiceResponse], error) {
	inv, err := s.store.GetInvoice(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("GetInvoice failed", "invoice_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&GetInvoiceResponse{Invoice: invoiceMessage(inv)}), nil
}

// ListInvoices returns every invoice, newest first, without items.
func (s *InvoiceService) ListInvoices(ctx context.Context, req *connect.Request[ListInvoicesRequest]) (*connect.Response[ListInvoicesResponse], error) {
	invoices, err := s.store.ListInvoices(ctx)
	if err != nil {
		slog.Error("ListInvoices failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*Invoice, len(invoices))
	for i, inv := range invoices {
		out[i] = invoiceMessage(inv)
	}

	slog.Info("ListInvoices successful", "count", len(out))
	return connect.NewResponse(&ListInvoicesResponse{Invoices: out}), nil
}

// UpdateInvoiceStatus moves an invoice between draft, sent and paid.
func (s *InvoiceService) UpdateInvoiceStatus(ctx context.Context, req *connect.Request[UpdateInvoiceStatusRequest]) (*connect.Response[UpdateInvoiceStatusResponse], error) {
	status, err := models.ParseInvoiceStatus(req.Msg.Status)
	if err != nil {
		return nil, toConnectError(fmt.Errorf("%w: %v", errInvalid, err))
	}
	if err := s.store.UpdateInvoiceStatus(ctx, req.Msg.ID, status); err != nil {
		slog.Error("UpdateInvoiceStatus failed", "invoice_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("Invoice status updated", "invoice_id", req.Msg.ID, "status", status)
	return connect.NewResponse(&UpdateInvoiceStatusResponse{}), nil
}

// DeleteInvoice removes an invoice and its items.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, req *connect.Request[DeleteInvoiceRequest]) (*connect.Response[DeleteInvoiceResponse], error) {
	if err := s.store.DeleteInvoice(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteInvoice failed", "invoice_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("Invoice deleted", "invoice_id", req.Msg.ID)
	return connect.NewResponse(&DeleteInvoiceResponse{}), nil
}

func validateInvoiceRequest(msg *CreateInvoiceRequest) error {
	if strings.TrimSpace(msg.Number) == "" {
		return fmt.Errorf("%w: invoice_number required", errInvalid)
	}
	if msg.ClientID == "" {
		return fmt.Errorf("%w: client_id required", errInvalid)
	}
	if len(msg.Items) == 0 {
		return fmt.Errorf("%w: at least one item required", errInvalid)
	}
	for i, item := range msg.Items {
		if strings.TrimSpace(item.Description) == "" {
			return fmt.Errorf("%w: item %d description required", errInvalid, i+1)
		}
	}
	if msg.Date != "" {
		if _, err := time.Parse(time.DateOnly, msg.Date); err != nil {
			return fmt.Errorf("%w: date %q is not YYYY-MM-DD", errInvalid, msg.Date)
		}
	}
	return nil
}

func toLineItems(items []InvoiceItem) []calculator.LineItem {
	out := make([]calculator.LineItem, len(items))
	for i, item := range items {
		out[i] = calculator.LineItem{
			Description: strings.TrimSpace(item.Description),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return out
}

// totalsMessage renders totals for the wire. Words are left empty for a
// negative grand total, which the renderer does not accept.
func totalsMessage(t calculator.InvoiceTotals) Totals {
	words, err := calculator.TotalToWords(t.GrandTotal)
	if err != nil {
		words = ""
	}
	return Totals{
		Subtotal:       t.Subtotal,
		TaxAmount:      t.TaxAmount,
		DiscountAmount: t.DiscountAmount,
		GrandTotal:     t.GrandTotal,
		Display:        calculator.FormatAmount(t.GrandTotal),
		Words:          words,
	}
}

func invoiceMessage(inv *models.Invoice) *Invoice {
	msg := &Invoice{
		ID:              inv.ID,
		Number:          inv.Number,
		ClientID:        inv.ClientID,
		ClientName:      inv.ClientName,
		Date:            inv.Date,
		TaxPercent:      inv.TaxPercent,
		DiscountPercent: inv.DiscountPercent,
		Totals: totalsMessage(calculator.InvoiceTotals{
			Subtotal:       inv.Subtotal,
			TaxAmount:      inv.Tax,
			DiscountAmount: inv.Discount,
			GrandTotal:     inv.Total,
		}),
		Status:    string(inv.Status),
		CreatedAt: inv.CreatedAt,
	}
	for _, item := range inv.Items {
		msg.Items = append(msg.Items, InvoiceItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}
	return msg
}
