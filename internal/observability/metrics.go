package observability

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

var (
	registerOnce sync.Once

	protocolExchanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eyefictl",
			Subsystem: "protocol",
			Name:      "exchanges_total",
			Help:      "Request/response exchanges by subcommand and outcome.",
		},
		[]string{"subcommand", "outcome"},
	)
	exchangeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "eyefictl",
			Subsystem: "protocol",
			Name:      "exchange_duration_seconds",
			Help:      "Exchange duration in seconds, poll loop included.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"subcommand", "outcome"},
	)
	pollRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "eyefictl",
			Subsystem: "protocol",
			Name:      "poll_retries_total",
			Help:      "Response-control polls beyond the first attempt.",
		},
	)
	majorFaults = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "eyefictl",
			Subsystem: "diag",
			Name:      "major_page_faults",
			Help:      "Major page faults of the current process (diagnostic only).",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(protocolExchanges, exchangeDuration, pollRetries, majorFaults)
	})
}

func RecordExchange(subcommand, outcome string, duration time.Duration) {
	RegisterMetrics()
	protocolExchanges.WithLabelValues(subcommand, outcome).Inc()
	exchangeDuration.WithLabelValues(subcommand, outcome).Observe(duration.Seconds())
}

func AddPollRetries(n int) {
	RegisterMetrics()
	pollRetries.Add(float64(n))
}

// SampleMajorFaults refreshes the page-fault gauge from the kernel and
// returns the current count.
func SampleMajorFaults() (int64, error) {
	RegisterMetrics()
	n, err := MajorFaults()
	if err != nil {
		return 0, err
	}
	majorFaults.Set(float64(n))
	return n, nil
}

// DumpMetrics writes all registered metric families as Prometheus text.
// There is no exposition listener; the protocol has no network surface.
func DumpMetrics(w io.Writer) error {
	RegisterMetrics()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, fam := range families {
		if err := enc.Encode(fam); err != nil {
			return fmt.Errorf("encode metric family %q: %w", fam.GetName(), err)
		}
	}
	return nil
}
