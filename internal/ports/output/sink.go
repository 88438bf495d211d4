package output

import "context"

// NotificationSink delivers one fired reminder to the outside world. The core
// hands over identifiers only; building the human-readable message is the
// sink's job. The context carries the per-send timeout.
type NotificationSink interface {
	Send(ctx context.Context, eventID string, offsetMinutes int) error
}
