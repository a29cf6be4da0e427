// Package metrics exposes Prometheus counters for the back office.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "erp_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	rpcTotal   *prometheus.CounterVec
	rpcLatency *prometheus.HistogramVec

	invoicesCreated prometheus.Counter
	invoiceAmount   prometheus.Counter

	checkIns *prometheus.CounterVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec
)

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		rpcTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "rpc_requests_total",
				Help: "Total RPC calls by procedure and code",
			},
			[]string{"procedure", "code"},
		)
		rpcLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "rpc_latency_seconds",
				Help:    "RPC latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"procedure"},
		)

		invoicesCreated = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "invoices_created_total",
				Help: "Total invoices created",
			},
		)
		invoiceAmount = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "invoiced_amount_rupees_total",
				Help: "Sum of grand totals of created invoices",
			},
		)

		checkIns = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "attendance_checkins_total",
				Help: "Total attendance check-ins by work location",
			},
			[]string{"location"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total document exports by report, format and result",
			},
			[]string{"report", "format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Document export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"report", "format"},
		)

		prometheus.MustRegister(
			rpcTotal,
			rpcLatency,
			invoicesCreated,
			invoiceAmount,
			checkIns,
			exportTotal,
			exportLatency,
		)
	})
}

// ObserveRPC records one RPC call.
func ObserveRPC(procedure, code string, duration time.Duration) {
	if code == "" {
		code = "ok"
	}
	if rpcTotal != nil {
		rpcTotal.WithLabelValues(procedure, code).Inc()
	}
	if rpcLatency != nil {
		rpcLatency.WithLabelValues(procedure).Observe(duration.Seconds())
	}
}

// InvoiceCreated counts a new invoice and its grand total.
// Negative totals (discount above 100%) are counted but not summed.
func InvoiceCreated(total float64) {
	if invoicesCreated != nil {
		invoicesCreated.Inc()
	}
	if invoiceAmount != nil && total > 0 {
		invoiceAmount.Add(total)
	}
}

// IncCheckIn counts an attendance check-in.
func IncCheckIn(location string) {
	if location == "" {
		location = "unknown"
	}
	if checkIns != nil {
		checkIns.WithLabelValues(location).Inc()
	}
}

// ObserveExport records one document export.
func ObserveExport(report, format string, err error, duration time.Duration) {
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(report, format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(report, format).Observe(duration.Seconds())
	}
}
