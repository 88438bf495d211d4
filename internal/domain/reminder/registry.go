package reminder

import (
	"log"
	"sort"
	"sync"
	"time"

	"applebot/internal/domain"
	"applebot/internal/domain/entities"
)

// Work is one due reminder: an event and the offset to notify for.
type Work struct {
	EventID string
	Offset  int
}

// EventSnapshot is the persisted reminder state for one event. Save/Load of
// the full snapshot round-trips exactly through Registry.Snapshot/Restore.
type EventSnapshot struct {
	EventID      string    `json:"event_id"`
	StartTime    time.Time `json:"start_time"`
	FiredOffsets []int     `json:"fired_offsets"`
}

type entry struct {
	event entities.Event
	plan  *Plan
}

// Registry is the single piece of shared mutable state of the reminder core.
// It owns every tracked event and its plan; every read-modify-write goes
// through the internal lock, so the platform glue may push event updates
// while the scheduler is mid-tick.
type Registry struct {
	mu      sync.Mutex
	offsets []int // normalized process-wide configuration
	entries map[string]*entry
}

// NewRegistry validates the offset configuration once, at boot. An offset
// list that normalizes to nothing is fatal here rather than on the first
// event.
func NewRegistry(offsetsMinutes []int) (*Registry, error) {
	probe, err := NewPlan(time.Unix(0, 0), offsetsMinutes)
	if err != nil {
		return nil, err
	}
	return &Registry{
		offsets: probe.offsets,
		entries: make(map[string]*entry),
	}, nil
}

// Upsert applies an event lifecycle change. Deliveries may be duplicated or
// out of order; malformed events are logged and dropped without touching
// existing entries. A malformed event never crashes the loop.
func (r *Registry) Upsert(event entities.Event) {
	if event.IsMalformed() {
		log.Printf("⚠️ %v, ignoré (id=%q)", domain.ErrMalformedEvent, event.ID)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[event.ID]
	if !ok {
		// Tracked from first sight while still scheduled; a cancelled or
		// completed event we never saw needs no reminders.
		if event.Status != entities.StatusScheduled {
			return
		}
		plan, err := NewPlan(event.StartTime, r.offsets)
		if err != nil {
			log.Printf("⚠️ Plan de rappel impossible pour l'événement %s: %v", event.ID, err)
			return
		}
		r.entries[event.ID] = &entry{event: event, plan: plan}
		return
	}

	// startTime is frozen once the event has started.
	if e.event.Status == entities.StatusScheduled && !e.event.StartTime.Equal(event.StartTime) {
		e.plan.Rebase(event.StartTime)
	} else {
		event.StartTime = e.event.StartTime
	}
	e.event = event
}

// Remove drops an event from the registry. Idempotent.
func (r *Registry) Remove(eventID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, eventID)
}

// Get returns a copy of a tracked event.
func (r *Registry) Get(eventID string) (entities.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[eventID]
	if !ok {
		return entities.Event{}, false
	}
	return e.event, true
}

// Len returns the number of tracked events.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// DueWork returns every due (event, offset) pair: events in ascending start
// time order, offsets within an event descending. The order is deterministic
// for a given now, so two runs over the same state fire identically.
func (r *Registry) DueWork(now time.Time) []Work {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := r.entries[ids[i]], r.entries[ids[j]]
		if !a.event.StartTime.Equal(b.event.StartTime) {
			return a.event.StartTime.Before(b.event.StartTime)
		}
		return ids[i] < ids[j]
	})

	var work []Work
	for _, id := range ids {
		for _, offset := range r.entries[id].plan.DueOffsets(now) {
			work = append(work, Work{EventID: id, Offset: offset})
		}
	}
	return work
}

// MarkFired records a successful notification. Idempotent; unknown events
// are ignored (the event may have been removed between tick and send).
func (r *Registry) MarkFired(eventID string, offset int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[eventID]; ok {
		e.plan.MarkFired(offset)
	}
}

// PruneExpired removes cancelled and completed events, and events whose plan
// is exhausted once their start time has passed.
func (r *Registry) PruneExpired(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.entries {
		switch {
		case e.event.Status == entities.StatusCancelled,
			e.event.Status == entities.StatusCompleted,
			e.plan.IsExhausted() && !e.event.StartTime.After(now):
			delete(r.entries, id)
		}
	}
}

// RetainOnly drops every tracked event whose id is not in ids. Called after a
// restart, once the live event list has been re-fetched, to clear restored
// state for events deleted while the process was down.
func (r *Registry) RetainOnly(ids []string) {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range r.entries {
		if !keep[id] {
			delete(r.entries, id)
		}
	}
}

// Snapshot exports the state needed to survive a restart, sorted by event id.
func (r *Registry) Snapshot() []EventSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]EventSnapshot, 0, len(r.entries))
	for id, e := range r.entries {
		out = append(out, EventSnapshot{
			EventID:      id,
			StartTime:    e.event.StartTime,
			FiredOffsets: e.plan.FiredOffsets(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventID < out[j].EventID })
	return out
}

// Restore rebuilds registry state from a snapshot taken by a previous run.
// Restored entries carry only the persisted fields; the next Upsert from the
// platform fills in the rest. Offsets fired under an older start time stay
// fired even if the event has since been rescheduled.
func (r *Registry) Restore(snapshot []EventSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range snapshot {
		if s.EventID == "" || s.StartTime.IsZero() {
			log.Printf("⚠️ Entrée de snapshot mal formée ignorée (id=%q)", s.EventID)
			continue
		}
		plan, err := NewPlan(s.StartTime, r.offsets)
		if err != nil {
			continue
		}
		for _, offset := range s.FiredOffsets {
			plan.MarkFired(offset)
		}
		r.entries[s.EventID] = &entry{
			event: entities.Event{
				ID:        s.EventID,
				StartTime: s.StartTime,
				Status:    entities.StatusScheduled,
			},
			plan: plan,
		}
	}
}
