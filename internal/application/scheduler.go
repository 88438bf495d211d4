package application

import (
	"context"
	"log"
	"sync"
	"time"

	"applebot/internal/domain/reminder"
	"applebot/internal/ports/output"
)

// Scheduler drives the reminder core. Ticks are strictly sequential; a tick
// fires every due (event, offset) pair exactly once on the success path and
// leaves failed sends due so they are retried on the next tick.
type Scheduler struct {
	clock       reminder.Clock
	registry    *reminder.Registry
	sink        output.NotificationSink
	store       output.SnapshotStore // nil = persistence désactivée
	interval    time.Duration
	sendTimeout time.Duration

	mu   sync.Mutex // serializes Tick
	wake chan struct{}
}

func NewScheduler(
	clock reminder.Clock,
	registry *reminder.Registry,
	sink output.NotificationSink,
	store output.SnapshotStore,
	interval time.Duration,
	sendTimeout time.Duration,
) *Scheduler {
	return &Scheduler{
		clock:       clock,
		registry:    registry,
		sink:        sink,
		store:       store,
		interval:    interval,
		sendTimeout: sendTimeout,
		wake:        make(chan struct{}, 1),
	}
}

// Wake requests a tick ahead of the next interval boundary, typically because
// a new event just arrived. Non-blocking; a pending wake is enough.
func (s *Scheduler) Wake() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Run ticks until ctx is cancelled. Shutdown is cooperative: the tick in
// progress always completes, so a send is never abandoned mid-flight.
func (s *Scheduler) Run(ctx context.Context) {
	log.Printf("⏰ Boucle de rappels démarrée (intervalle: %s)", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Println("🛑 Boucle de rappels arrêtée.")
			return
		case <-ticker.C:
		case <-s.wake:
		}
		s.Tick(ctx)
	}
}

// Tick runs one due-work pass: read the clock, fire due reminders oldest
// first, prune finished events, persist the snapshot. Concurrent calls are
// serialized so the same (event, offset) can never be sent twice.
func (s *Scheduler) Tick(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	failed := make(map[string]bool)
	for _, w := range s.registry.DueWork(now) {
		// A smaller offset never fires before a larger one of the same
		// event: once a send fails, the event's remaining offsets wait for
		// the next tick.
		if failed[w.EventID] {
			continue
		}
		if err := s.send(ctx, w); err != nil {
			// Left unfired on purpose: the offset stays due until a send
			// succeeds or the event is pruned.
			log.Printf("❌ Envoi du rappel échoué (event=%s, offset=%d min): %v", w.EventID, w.Offset, err)
			failed[w.EventID] = true
			continue
		}
		s.registry.MarkFired(w.EventID, w.Offset)
	}
	s.registry.PruneExpired(now)
	s.persist(ctx)
}

// send calls the sink under a bounded timeout. The timeout context is
// detached from the run context: cancelling the loop must not interrupt a
// send already in flight.
func (s *Scheduler) send(ctx context.Context, w reminder.Work) error {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sendTimeout)
	defer cancel()
	return s.sink.Send(sendCtx, w.EventID, w.Offset)
}

func (s *Scheduler) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sendTimeout)
	defer cancel()
	if err := s.store.Save(saveCtx, s.registry.Snapshot()); err != nil {
		log.Printf("⚠️ Sauvegarde du snapshot échouée: %v", err)
	}
}
