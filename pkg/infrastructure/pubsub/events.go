package pubsub

import (
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/runtimeexceptions/server/pkg/types"
)

// CloudEvent URNs carried on enrichment job messages.
const (
	EventSourceWebhook     = "urn:runtimeexceptions:webhook"
	EventTypeEnrichmentJob = "urn:runtimeexceptions:event:enrichment-job"
)

// NewCloudEvent creates a standardized CloudEvent v1.0
func NewCloudEvent(source, eventType string, data interface{}) (cloudevents.Event, error) {
	e := cloudevents.NewEvent()
	e.SetSpecVersion("1.0")
	e.SetType(eventType)
	e.SetSource(source)

	if err := e.SetData(cloudevents.ApplicationJSON, data); err != nil {
		return e, err
	}

	return e, nil
}

// NewEnrichmentJobEvent wraps a job payload in the standard envelope.
func NewEnrichmentJobEvent(job *types.EnrichmentJob) (cloudevents.Event, error) {
	return NewCloudEvent(EventSourceWebhook, EventTypeEnrichmentJob, job)
}
