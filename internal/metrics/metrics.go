package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	StoreOpens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_store_opens_total",
			Help: "Certificate store open attempts",
		},
		[]string{"scope", "store", "result"},
	)

	CertificatesEnumerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_certificates_enumerated_total",
			Help: "Certificates read from stores before filtering",
		},
		[]string{"scope", "store"},
	)

	NoiseDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_noise_dropped_total",
			Help: "Certificates discarded by the noise filter",
		},
		[]string{"reason"},
	)

	DuplicatesCollapsed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: Namespace + "_duplicates_collapsed_total",
			Help: "Records removed because a later-expiring record had the same issuer and subject",
		},
	)

	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    Namespace + "_pipeline_duration_seconds",
			Help:    "Time to collect, reduce and format the inventory",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	InventoryRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: Namespace + "_records",
			Help: "Records in the latest inventory by expiration status",
		},
		[]string{"status"},
	)

	TransportSends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_report_sends_total",
			Help: "Report uploads by result",
		},
		[]string{"result"},
	)

	TransportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    Namespace + "_report_send_duration_seconds",
			Help:    "Time to upload a report",
			Buckets: prometheus.DefBuckets,
		},
	)

	ReportsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_reports_received_total",
			Help: "Reports accepted by the upload endpoint",
		},
		[]string{"sink", "result"},
	)
)
