package model

// ReportPublisher defines a generic interface for pushing a finished
// analysis to an external consumer.
type ReportPublisher interface {
	// Publish takes an analysis payload and sends it.
	// The implementation is expected to know how to handle the payload type it receives.
	Publish(payload interface{}) error

	// Close releases the underlying connection.
	Close()
}
