// Package events publishes structured pipeline events. Domain services emit
// through the helper in this package; sinks (Kafka, log) are swappable so
// tests and broker-less deployments keep working.
package events

import "time"

// Category groups events by the part of the system that produced them.
type Category string

const (
	CategoryPipeline   Category = "pipeline"
	CategoryReport     Category = "report"
	CategoryOperations Category = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	ID        string            `json:"id"`
	Category  Category          `json:"category"`
	Action    string            `json:"action"`
	Subject   string            `json:"subject,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}
