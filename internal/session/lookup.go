package session

import (
	"context"
	"fmt"

	"github.com/abhisek/vokabel/internal/mastery"
	"github.com/abhisek/vokabel/internal/priority"
	"github.com/abhisek/vokabel/internal/report"
	"github.com/abhisek/vokabel/internal/vocab"
)

// ItemStats is the stored state of one item with its current priority.
type ItemStats struct {
	Key      vocab.ItemKey      `json:"item_key"`
	Level    vocab.Level        `json:"level"`
	Phase    mastery.Phase      `json:"phase"`
	State    *mastery.ItemState `json:"stats"`
	Priority priority.Breakdown `json:"priority"`
}

// LookupStats returns the stored state of each key in scope. Keys without
// stored state are omitted.
func (s *Service) LookupStats(ctx context.Context, scope string, keys []vocab.ItemKey) ([]ItemStats, error) {
	sc, err := vocab.ResolveScope(scope, s.index.Levels())
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	now := s.clock()
	stats := s.readStats(ctx, sc.Levels)

	var out []ItemStats
	for _, key := range keys {
		for _, lvl := range sc.Levels {
			st, ok := stats[lvl][key]
			if !ok || st == nil {
				continue
			}
			item, _ := s.index.Item(key)
			out = append(out, ItemStats{
				Key:      key,
				Level:    lvl,
				Phase:    st.Phase(now),
				State:    st,
				Priority: priority.Explain(st, item, now),
			})
			break
		}
	}
	return out, nil
}

// DailySummary aggregates today's activity.
type DailySummary struct {
	Date           string                          `json:"date"`
	PracticedToday int                             `json:"practiced_today"`
	Accuracy       report.Accuracy                 `json:"accuracy"`
	Learned        map[vocab.Level]int             `json:"learned"`
	Categories     map[string]report.CategoryStats `json:"category_performance"`
}

// TodaySummary reports how much was practiced today and how it went.
func (s *Service) TodaySummary(ctx context.Context) (*DailySummary, error) {
	now := s.clock()
	rep := s.readReport(ctx)

	sum := &DailySummary{
		Date:           mastery.DateString(now),
		PracticedToday: rep.PracticedToday(now),
		Accuracy:       rep.TodayAccuracy(now),
		Learned:        rep.LearnedCount(),
		Categories:     make(map[string]report.CategoryStats),
	}
	for _, name := range rep.Categories() {
		if c := rep.CategoryPerformance[name]; c != nil {
			sum.Categories[name] = *c
		}
	}
	return sum, nil
}
