package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"applebot/internal/domain/reminder"
	"applebot/internal/ports/output"
)

var _ output.SnapshotStore = (*SnapshotRepository)(nil)

// SnapshotRepository persists the reminder registry snapshot in PostgreSQL.
// Each Save replaces the previous snapshot wholesale, inside one transaction,
// so Load always observes a state some tick actually produced.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

func (r *SnapshotRepository) Save(ctx context.Context, snapshot []reminder.EventSnapshot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin snapshot save: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM reminder_state`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	batch := &pgx.Batch{}
	for _, s := range snapshot {
		batch.Queue(
			`INSERT INTO reminder_state (event_id, start_time, fired_offsets) VALUES ($1, $2, $3)`,
			s.EventID, s.StartTime, intsToInt32(s.FiredOffsets),
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot save: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) Load(ctx context.Context) ([]reminder.EventSnapshot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT event_id, start_time, fired_offsets FROM reminder_state ORDER BY event_id`)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	defer rows.Close()

	var out []reminder.EventSnapshot
	for rows.Next() {
		var s reminder.EventSnapshot
		var fired []int32
		if err := rows.Scan(&s.EventID, &s.StartTime, &fired); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		s.FiredOffsets = int32ToInts(fired)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read snapshot rows: %w", err)
	}
	return out, nil
}

func intsToInt32(in []int) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = int32(v)
	}
	return out
}

func int32ToInts(in []int32) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}
