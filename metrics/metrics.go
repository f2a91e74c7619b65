// Package metrics records engine counters and latencies.
package metrics

import "time"

// Metric names
const (
	PriceRefreshOK     = "price_refresh_ok"
	PriceRefreshFailed = "price_refresh_failed"
	PaymentSent        = "payment_sent"
	PaymentFailed      = "payment_failed"
	AdvisorySigned     = "advisory_signed"
	AdvisoryDeclined   = "advisory_declined"

	OpSubmit       = "submit"
	OpPriceRefresh = "price_refresh"
)

// Recorder receives engine metrics. Labels are optional; implementations
// read only the keys they export.
type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
	SetGauge(name string, value float64, labels map[string]string)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

var _ Recorder = NoopRecorder{}

func (NoopRecorder) IncCounter(string, map[string]string)                    {}
func (NoopRecorder) ObserveLatency(string, time.Duration, map[string]string) {}
func (NoopRecorder) SetGauge(string, float64, map[string]string)             {}

// OrNoop returns r, or a NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
