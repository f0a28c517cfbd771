package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/samber/lo"

	"github.com/abhisek/vokabel/internal/mastery"
	"github.com/abhisek/vokabel/internal/vocab"
)

// statsBatchSize bounds the rows per upsert statement to stay under
// SQLite's bound-variable limit.
const statsBatchSize = 400

// statsRepo implements StatsRepo with one row per item.
type statsRepo struct {
	drv *entsql.Driver
}

func (r *statsRepo) Load(ctx context.Context, level vocab.Level) (mastery.Stats, error) {
	query, args := builder().
		Select("item_key", "data").
		From(entsql.Table(statsTable)).
		Where(entsql.EQ("level", string(level))).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query stats %s: %w", level, err)
	}
	defer rows.Close()

	stats := make(mastery.Stats)
	for rows.Next() {
		var rawKey, data string
		if err := rows.Scan(&rawKey, &data); err != nil {
			return nil, fmt.Errorf("scan stats %s: %w", level, err)
		}
		key, err := vocab.ParseItemKey(rawKey)
		if err != nil {
			return nil, fmt.Errorf("stats %s: %w", level, err)
		}
		st := mastery.NewState()
		if err := json.Unmarshal([]byte(data), st); err != nil {
			return nil, fmt.Errorf("decode stats %s: %w", rawKey, err)
		}
		st.Normalize()
		stats[key] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read stats %s: %w", level, err)
	}
	return stats, nil
}

func (r *statsRepo) Save(ctx context.Context, level vocab.Level, stats mastery.Stats) error {
	keys := lo.Keys(lo.PickBy(stats, func(_ vocab.ItemKey, st *mastery.ItemState) bool { return st != nil }))
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	now := time.Now().Unix()

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	for _, chunk := range lo.Chunk(keys, statsBatchSize) {
		insert := builder().
			Insert(statsTable).
			Columns("level", "item_key", "data", "updated_at")
		for _, key := range chunk {
			data, err := json.Marshal(stats[key])
			if err != nil {
				tx.Rollback()
				return fmt.Errorf("encode stats %s: %w", key, err)
			}
			insert.Values(string(level), key.String(), string(data), now)
		}
		insert.OnConflict(
			entsql.ConflictColumns("level", "item_key"),
			entsql.ResolveWithNewValues(),
		)

		query, args := insert.Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert stats %s: %w", level, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit stats %s: %w", level, err)
	}
	return nil
}
