package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/vokabel/internal/mastery"
	"github.com/abhisek/vokabel/internal/vocab"
)

// transitionRepo implements TransitionRepo as an append-only table.
type transitionRepo struct {
	drv *entsql.Driver
}

func (r *transitionRepo) Append(ctx context.Context, events []TransitionEvent) error {
	if len(events) == 0 {
		return nil
	}

	insert := builder().
		Insert(transitionTable).
		Columns("item_key", "level", "outcome", "from_phase", "to_phase", "trigger_name", "learned", "created_at")
	for _, e := range events {
		ts := e.Timestamp
		if ts.IsZero() {
			ts = time.Now()
		}
		insert.Values(e.Key.String(), string(e.Level), e.Outcome, string(e.From), string(e.To), e.Trigger, e.Learned, ts.Unix())
	}

	query, args := insert.Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("append transitions: %w", err)
	}
	return nil
}

func (r *transitionRepo) Recent(ctx context.Context, key vocab.ItemKey, limit int) ([]TransitionEvent, error) {
	sel := builder().
		Select("id", "item_key", "level", "outcome", "from_phase", "to_phase", "trigger_name", "learned", "created_at").
		From(entsql.Table(transitionTable)).
		Where(entsql.EQ("item_key", key.String())).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query transitions: %w", err)
	}
	defer rows.Close()

	var events []TransitionEvent
	for rows.Next() {
		var (
			e                       TransitionEvent
			rawKey, level, from, to string
			createdAt               int64
		)
		if err := rows.Scan(&e.ID, &rawKey, &level, &e.Outcome, &from, &to, &e.Trigger, &e.Learned, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		k, err := vocab.ParseItemKey(rawKey)
		if err != nil {
			return nil, fmt.Errorf("transition %d: %w", e.ID, err)
		}
		e.Key = k
		e.Level = vocab.Level(level)
		e.From = mastery.Phase(from)
		e.To = mastery.Phase(to)
		e.Timestamp = time.Unix(createdAt, 0)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read transitions: %w", err)
	}
	return events, nil
}
