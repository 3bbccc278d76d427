package deal

// MetricsCollector records deal lifecycle outcomes. Implementations must be
// safe for concurrent use.
type MetricsCollector interface {
	RecordDealOpened()
	RecordDealCompleted()
	RecordDealCancelled()
	RecordOTPValidation(result string)
	RecordError(op, kind string)
}

// NoopMetricsCollector is used when no metrics backend is configured.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordDealOpened()                  {}
func (NoopMetricsCollector) RecordDealCompleted()               {}
func (NoopMetricsCollector) RecordDealCancelled()               {}
func (NoopMetricsCollector) RecordOTPValidation(result string)  {}
func (NoopMetricsCollector) RecordError(op, kind string)        {}
