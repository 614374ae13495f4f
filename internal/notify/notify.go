// Package notify decouples the pipelines from any specific user
// feedback mechanism. The storefront front-end shows toasts; on the
// server side the same sink is a log line or an event, injected where
// the pipelines need to report an outcome.
package notify

import "log"

// Notifier is the notification sink capability passed to each pipeline.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// LogNotifier writes notifications to the process log.
type LogNotifier struct{}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Success logs a success notification.
func (n *LogNotifier) Success(msg string) {
	log.Printf("[notify] success: %s", msg)
}

// Failure logs a failure notification.
func (n *LogNotifier) Failure(msg string) {
	log.Printf("[notify] failure: %s", msg)
}

// NopNotifier discards all notifications. Useful in tests.
type NopNotifier struct{}

// Success discards the notification.
func (NopNotifier) Success(string) {}

// Failure discards the notification.
func (NopNotifier) Failure(string) {}
