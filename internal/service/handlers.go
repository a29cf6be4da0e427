package service

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// Fully-qualified service names.
const (
	InvoiceServiceName    = "atcommodities.erp.v1.InvoiceService"
	AttendanceServiceName = "atcommodities.erp.v1.AttendanceService"
	DeliveryServiceName   = "atcommodities.erp.v1.DeliveryService"
	DirectoryServiceName  = "atcommodities.erp.v1.DirectoryService"
	AuthServiceName       = "atcommodities.erp.v1.AuthService"
)

// Procedure paths, "/<service>/<method>".
const (
	PreviewInvoiceProcedure      = "/" + InvoiceServiceName + "/PreviewInvoice"
	CreateInvoiceProcedure       = "/" + InvoiceServiceName + "/CreateInvoice"
	GetInvoiceProcedure          = "/" + InvoiceServiceName + "/GetInvoice"
	ListInvoicesProcedure        = "/" + InvoiceServiceName + "/ListInvoices"
	UpdateInvoiceStatusProcedure = "/" + InvoiceServiceName + "/UpdateInvoiceStatus"
	DeleteInvoiceProcedure       = "/" + InvoiceServiceName + "/DeleteInvoice"

	CheckInProcedure        = "/" + AttendanceServiceName + "/CheckIn"
	CheckOutProcedure       = "/" + AttendanceServiceName + "/CheckOut"
	ListAttendanceProcedure = "/" + AttendanceServiceName + "/ListAttendance"

	CreateDeliveryProcedure       = "/" + DeliveryServiceName + "/CreateDelivery"
	ListDeliveriesProcedure       = "/" + DeliveryServiceName + "/ListDeliveries"
	UpdateDeliveryStatusProcedure = "/" + DeliveryServiceName + "/UpdateDeliveryStatus"
	DeleteDeliveryProcedure       = "/" + DeliveryServiceName + "/DeleteDelivery"

	ListEmployeesProcedure = "/" + DirectoryServiceName + "/ListEmployees"
	ListClientsProcedure   = "/" + DirectoryServiceName + "/ListClients"
	GetDashboardProcedure  = "/" + DirectoryServiceName + "/GetDashboard"

	RegisterProcedure = "/" + AuthServiceName + "/Register"
	LoginProcedure    = "/" + AuthServiceName + "/Login"
)

// CodecOption makes handlers and clients speak JSON over plain structs.
func CodecOption() connect.Option {
	return connect.WithCodec(jsonCodec{})
}

func unary[Req, Res any](mux *http.ServeMux, procedure string, fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error), opts []connect.HandlerOption) {
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{CodecOption()}, opts...)
}

// NewInvoiceServiceHandler builds an HTTP handler for the service and
// returns the path prefix it should be mounted on.
func NewInvoiceServiceHandler(svc *InvoiceService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	unary(mux, PreviewInvoiceProcedure, svc.PreviewInvoice, opts)
	unary(mux, CreateInvoiceProcedure, svc.CreateInvoice, opts)
	unary(mux, GetInvoiceProcedure, svc.GetInvoice, opts)
	unary(mux, ListInvoicesProcedure, svc.ListInvoices, opts)
	unary(mux, UpdateInvoiceStatusProcedure, svc.UpdateInvoiceStatus, opts)
	unary(mux, DeleteInvoiceProcedure, svc.DeleteInvoice, opts)
	return "/" + InvoiceServiceName + "/", mux
}

// NewAttendanceServiceHandler builds an HTTP handler for the attendance service.
func NewAttendanceServiceHandler(svc *AttendanceService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	unary(mux, CheckInProcedure, svc.CheckIn, opts)
	unary(mux, CheckOutProcedure, svc.CheckOut, opts)
	unary(mux, ListAttendanceProcedure, svc.ListAttendance, opts)
	return "/" + AttendanceServiceName + "/", mux
}

// NewDeliveryServiceHandler builds an HTTP handler for the delivery service.
func NewDeliveryServiceHandler(svc *DeliveryService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	unary(mux, CreateDeliveryProcedure, svc.CreateDelivery, opts)
	unary(mux, ListDeliveriesProcedure, svc.ListDeliveries, opts)
	unary(mux, UpdateDeliveryStatusProcedure, svc.UpdateDeliveryStatus, opts)
	unary(mux, DeleteDeliveryProcedure, svc.DeleteDelivery, opts)
	return "/" + DeliveryServiceName + "/", mux
}

// NewDirectoryServiceHandler builds an HTTP handler for the directory service.
func NewDirectoryServiceHandler(svc *DirectoryService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	unary(mux, ListEmployeesProcedure, svc.ListEmployees, opts)
	unary(mux, ListClientsProcedure, svc.ListClients, opts)
	unary(mux, GetDashboardProcedure, svc.GetDashboard, opts)
	return "/" + DirectoryServiceName + "/", mux
}

// NewAuthServiceHandler builds an HTTP handler for the auth service.
func NewAuthServiceHandler(svc *AuthService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	unary(mux, RegisterProcedure, svc.Register, opts)
	unary(mux, LoginProcedure, svc.Login, opts)
	return "/" + AuthServiceName + "/", mux
}
