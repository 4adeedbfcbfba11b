package metrics

import (
	"github.com/bondit-dk/dnscheck/evt"
	"github.com/bondit-dk/dnscheck/log"

	"github.com/prometheus/client_golang/prometheus"
)

// RegisterEventListeners registers all metric handlers by the event bus
func RegisterEventListeners() {
	registerValidationEventListeners()
	registerApplicationEventListeners()
}

func registerApplicationEventListeners() {
	v := versionNumberGauge()
	RegisterMetric(v)

	subscribe(evt.ApplicationStarted, func(version, buildTime string) {
		v.WithLabelValues(version, buildTime).Set(1)
	})
}

func versionNumberGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dnscheck_build_info",
			Help: "Version number and build info",
		}, []string{"version", "build_time"},
	)
}

func registerValidationEventListeners() {
	lastValidation := lastValidationGauge()
	durationHistogram := validationDurationHistogram()
	fallbackCnt := fallbackCounter()
	tlsaCnt := tlsaStatusCounter()

	RegisterMetric(lastValidation)
	RegisterMetric(durationHistogram)
	RegisterMetric(fallbackCnt)
	RegisterMetric(tlsaCnt)

	subscribe(evt.ValidationFinished, func(domain, status string, durationMs int64) {
		lastValidation.WithLabelValues(status).SetToCurrentTime()
		durationHistogram.WithLabelValues(status).Observe(float64(durationMs))
	})

	subscribe(evt.ValidationFallbackUsed, func(requested, validated string) {
		fallbackCnt.Inc()
	})

	subscribe(evt.TLSAValidationFinished, func(domain, status string) {
		tlsaCnt.WithLabelValues(status).Inc()
	})
}

func validationDurationHistogram() *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dnscheck_validation_duration_ms",
			Help:    "Validation duration in milliseconds per status",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"status"},
	)
}

func lastValidationGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dnscheck_last_validation_timestamp_seconds",
			Help: "Timestamp of last validation per status",
		}, []string{"status"},
	)
}

func fallbackCounter() prometheus.Counter {
	return prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dnscheck_fallback_total",
			Help: "Number of validations which fell back to the root domain",
		},
	)
}

func tlsaStatusCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dnscheck_tlsa_validation_total",
			Help: "Number of TLSA validations by status",
		}, []string{"status"},
	)
}

func subscribe(topic string, fn interface{}) {
	if err := evt.Bus().Subscribe(topic, fn); err != nil {
		log.Log().Fatalf("can't subscribe topic '%s': %v", topic, err)
	}
}
