package selection

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/abhisek/vokabel/internal/mastery"
	"github.com/abhisek/vokabel/internal/priority"
	"github.com/abhisek/vokabel/internal/vocab"
)

// Quota tracks how many items each level may still introduce today.
type Quota struct {
	limit    int
	used     map[vocab.Level]int
	reviewed map[vocab.ItemKey]bool
}

// NewQuota builds the quota from the items already seen today, per level.
func NewQuota(limit int, seenToday map[vocab.Level][]vocab.ItemKey) *Quota {
	q := &Quota{
		limit:    limit,
		used:     make(map[vocab.Level]int, len(seenToday)),
		reviewed: make(map[vocab.ItemKey]bool),
	}
	for lvl, keys := range seenToday {
		keys = lo.Uniq(keys)
		q.used[lvl] = len(keys)
		for _, k := range keys {
			q.reviewed[k] = true
		}
	}
	return q
}

// Slots returns the number of new items lvl may still introduce today.
func (q *Quota) Slots(lvl vocab.Level) int {
	return max(q.limit-q.used[lvl], 0)
}

// SeenToday reports whether key was already quizzed today at any level.
func (q *Quota) SeenToday(key vocab.ItemKey) bool {
	return q.reviewed[key]
}

// Pool holds the due candidates: reviews are always eligible, new items are
// bounded per level by the quota.
type Pool struct {
	Reviews []Candidate
	New     map[vocab.Level][]Candidate
}

// Filter scores the due items and splits them into reviews and new items.
// Items whose level has no stats partition are dropped.
func Filter(items []vocab.Item, stats map[vocab.Level]mastery.Stats, q *Quota, now time.Time) Pool {
	pool := Pool{New: make(map[vocab.Level][]Candidate)}
	for _, it := range items {
		partition, ok := stats[it.Level]
		if !ok {
			continue
		}
		st := snapshot(partition, it.Key())
		if !st.IsDue(now) {
			continue
		}
		c := Candidate{Item: it, State: st, Priority: priority.Score(st, it, now)}
		if q.SeenToday(it.Key()) {
			pool.Reviews = append(pool.Reviews, c)
		} else {
			pool.New[it.Level] = append(pool.New[it.Level], c)
		}
	}
	return pool
}

// Eligible returns the reviews plus, per level, at most Slots new items
// drawn by priority.
func (p Pool) Eligible(q *Quota, s *Sampler) []Candidate {
	out := append([]Candidate(nil), p.Reviews...)

	levels := lo.Keys(p.New)
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })
	for _, lvl := range levels {
		slots := q.Slots(lvl)
		if slots == 0 {
			continue
		}
		out = append(out, s.Sample(p.New[lvl], slots)...)
	}
	return out
}

func snapshot(stats mastery.Stats, key vocab.ItemKey) *mastery.ItemState {
	if st, ok := stats[key]; ok && st != nil {
		c := st.Clone()
		c.Normalize()
		return c
	}
	return mastery.NewState()
}
