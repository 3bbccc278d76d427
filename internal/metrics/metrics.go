package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	DealsOpened = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "bazaar_deals_opened_total", Help: "Total deals opened"},
	)
	DealsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "bazaar_deals_completed_total", Help: "Total deals completed"},
	)
	DealsCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "bazaar_deals_cancelled_total", Help: "Total deals cancelled"},
	)
	OTPValidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bazaar_otp_validations_total", Help: "OTP validation attempts by result"},
		[]string{"result"},
	)
	ServiceErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bazaar_service_errors_total", Help: "Expected service errors by operation and kind"},
		[]string{"op", "kind"},
	)
)

func Register() {
	prometheus.MustRegister(DealsOpened, DealsCompleted, DealsCancelled, OTPValidations, ServiceErrors)
}

// Collector satisfies the deal service's MetricsCollector interface.
type Collector struct{}

func (Collector) RecordDealOpened()    { DealsOpened.Inc() }
func (Collector) RecordDealCompleted() { DealsCompleted.Inc() }
func (Collector) RecordDealCancelled() { DealsCancelled.Inc() }

func (Collector) RecordOTPValidation(result string) {
	OTPValidations.WithLabelValues(result).Inc()
}

func (Collector) RecordError(op, kind string) {
	ServiceErrors.WithLabelValues(op, kind).Inc()
}
