package output

import (
	"context"

	"applebot/internal/domain/reminder"
)

// SnapshotStore persists the reminder state across process restarts. Save
// replaces the previous snapshot wholesale; Load returns what the last Save
// wrote, exactly.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot []reminder.EventSnapshot) error
	Load(ctx context.Context) ([]reminder.EventSnapshot, error)
}
