package interfaces

// ILifecycleMetrics records lifecycle outcomes.
type ILifecycleMetrics interface {
	RFQSubmitted()
	QuoteSubmitted()
	QuoteAccepted(superseded int)
	PaymentRecorded()
	Conflict(operation string)
}
