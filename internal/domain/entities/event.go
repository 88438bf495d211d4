package entities

import "time"

// EventStatus is the lifecycle state of a guild scheduled event.
type EventStatus string

const (
	StatusScheduled EventStatus = "scheduled"
	StatusStarted   EventStatus = "started"
	StatusCancelled EventStatus = "cancelled"
	StatusCompleted EventStatus = "completed"
)

// Event is a guild scheduled event as seen by the reminder core.
type Event struct {
	ID          string
	GuildID     string
	Name        string
	Description string
	ChannelID   string // salon vocal de l'événement (vide si lieu externe)
	Location    string // lieu externe, utilisé quand ChannelID est vide
	URL         string
	StartTime   time.Time
	Status      EventStatus
}

// IsMalformed reports whether the event is missing the fields the reminder
// core cannot work without.
func (e Event) IsMalformed() bool {
	return e.ID == "" || e.StartTime.IsZero()
}
