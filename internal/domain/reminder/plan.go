package reminder

import (
	"sort"
	"time"

	"applebot/internal/domain"
)

// Plan tracks which reminder offsets have fired for a single event. Offsets
// are minutes of lead time before the event start. A Plan owns no goroutine
// and is not safe for concurrent use; the Registry serializes access to it.
type Plan struct {
	startTime time.Time
	offsets   []int // descending, deduplicated, non-negative
	fired     map[int]bool
}

// NewPlan builds a plan from the process-wide offset configuration. Negative
// values are dropped, duplicates collapsed and the order forced descending,
// largest lead time first. An empty result is a configuration error.
func NewPlan(startTime time.Time, offsetsMinutes []int) (*Plan, error) {
	seen := make(map[int]bool, len(offsetsMinutes))
	offsets := make([]int, 0, len(offsetsMinutes))
	for _, m := range offsetsMinutes {
		if m < 0 || seen[m] {
			continue
		}
		seen[m] = true
		offsets = append(offsets, m)
	}
	if len(offsets) == 0 {
		return nil, domain.ErrInvalidConfiguration
	}
	sort.Sort(sort.Reverse(sort.IntSlice(offsets)))
	return &Plan{
		startTime: startTime,
		offsets:   offsets,
		fired:     make(map[int]bool, len(offsets)),
	}, nil
}

// FiringInstant is the absolute time at which offset becomes due.
func (p *Plan) FiringInstant(offset int) time.Time {
	return p.startTime.Add(-time.Duration(offset) * time.Minute)
}

// DueOffsets returns every unfired offset whose firing instant has passed,
// largest lead time first, so callers process the oldest due reminder first.
// Computing against startTime rather than "time since last tick" is what lets
// a late tick catch up on everything it missed.
func (p *Plan) DueOffsets(now time.Time) []int {
	var due []int
	for _, m := range p.offsets {
		if p.fired[m] {
			continue
		}
		if !p.FiringInstant(m).After(now) {
			due = append(due, m)
		}
	}
	return due
}

// MarkFired records that offset has been notified. Idempotent; offsets that
// are not part of the plan are ignored.
func (p *Plan) MarkFired(offset int) {
	for _, m := range p.offsets {
		if m == offset {
			p.fired[offset] = true
			return
		}
	}
}

// IsExhausted reports whether every offset of the plan has fired.
func (p *Plan) IsExhausted() bool {
	return len(p.fired) == len(p.offsets)
}

// Rebase moves the plan to a new start time. Offsets that already fired stay
// fired: the "60 minute warning" was tied to the instant it was sent, so a
// rescheduled event never re-sends it.
func (p *Plan) Rebase(startTime time.Time) {
	p.startTime = startTime
}

// FiredOffsets returns the fired set in descending order.
func (p *Plan) FiredOffsets() []int {
	out := make([]int, 0, len(p.fired))
	for _, m := range p.offsets {
		if p.fired[m] {
			out = append(out, m)
		}
	}
	return out
}
