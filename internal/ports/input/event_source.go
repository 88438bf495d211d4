package input

import (
	"applebot/internal/domain/entities"
)

// EventSource is the inbound contract through which platform glue pushes
// event lifecycle changes into the reminder core. The platform may deliver
// duplicates or out-of-order updates; implementations must stay idempotent.
type EventSource interface {
	Upsert(event entities.Event)
	Remove(eventID string)
}
