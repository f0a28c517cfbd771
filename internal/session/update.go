package session

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/vokabel/internal/confusion"
	"github.com/abhisek/vokabel/internal/mastery"
	"github.com/abhisek/vokabel/internal/report"
	"github.com/abhisek/vokabel/internal/store"
	"github.com/abhisek/vokabel/internal/vocab"
)

// UpdateSummary reports what RecordResults changed.
type UpdateSummary struct {
	UpdatedCount   int             `json:"updated_count"`
	Skipped        int             `json:"skipped"`
	Learned        []vocab.ItemKey `json:"learned,omitempty"`
	Confusions     int             `json:"confusions_recorded"`
	ResolvedRivals int             `json:"resolved_rivals"`
}

// pending is a decoded result whose item and level are resolved.
type pending struct {
	Result
	item   vocab.Item
	level  vocab.Level
	rivals []vocab.ItemKey
}

// RecordResults applies a batch of results in order. Malformed results and
// results for unknown items are skipped with a warning.
func (s *Service) RecordResults(ctx context.Context, results []RawResult) (*UpdateSummary, error) {
	if len(results) == 0 {
		return nil, ErrEmptyBatch
	}

	summary := &UpdateSummary{}
	batch, levels := s.plan(results, summary)
	if len(batch) == 0 {
		return summary, nil
	}

	unlock := s.lockLevels(levels)
	defer unlock()
	s.reportMu.Lock()
	defer s.reportMu.Unlock()

	stats, err := s.loadStatsForUpdate(ctx, levels)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	rep, err := s.reports.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load report: %w", err)
	}
	if rep == nil {
		rep = report.New(s.index.Levels())
	}
	rep.Normalize(s.index.Levels())

	now := s.clock()
	states := ledger{index: s.index, stats: stats}
	events := make([]store.TransitionEvent, 0, len(batch))
	var perfect []vocab.ItemKey

	for _, p := range batch {
		st := stats[p.level].Get(p.Key)
		t := s.rules.Apply(st, p.Outcome, mastery.Context{
			Now:         now,
			MissesToday: rep.WrongToday(now, p.Key),
		})
		t.Key = p.Key
		rep.Record(now, p.item, p.Outcome)

		if t.Learned {
			rep.MarkLearned(p.level, p.Key, now)
			summary.Learned = append(summary.Learned, p.Key)
		}
		for _, rival := range p.rivals {
			if confusion.Record(states, p.Key, rival) {
				summary.Confusions++
			}
		}
		if p.Outcome.IsPerfect() {
			perfect = append(perfect, p.Key)
		}

		events = append(events, store.TransitionEvent{
			Key:       t.Key,
			Level:     p.level,
			Outcome:   p.Outcome.String(),
			From:      t.From,
			To:        t.To,
			Trigger:   t.Trigger,
			Learned:   t.Learned,
			Timestamp: now,
		})
		summary.UpdatedCount++
	}
	summary.ResolvedRivals = confusion.Resolve(states, perfect)

	for _, lvl := range levels {
		if err := s.stats.Save(ctx, lvl, stats[lvl]); err != nil {
			return nil, fmt.Errorf("save stats %s: %w", lvl, err)
		}
	}
	if err := s.reports.Save(ctx, rep); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	if s.transitions != nil {
		if err := s.transitions.Append(ctx, events); err != nil {
			s.log.WithError(err).Warn("transition log append failed")
		}
	}

	s.log.WithFields(logrus.Fields{
		"updated":    summary.UpdatedCount,
		"skipped":    summary.Skipped,
		"learned":    len(summary.Learned),
		"confusions": summary.Confusions,
		"resolved":   summary.ResolvedRivals,
	}).Info("results recorded")
	return summary, nil
}

// plan decodes and resolves every result, returning the valid ones and the
// sorted set of levels they touch, including the levels of detected rivals.
func (s *Service) plan(results []RawResult, summary *UpdateSummary) ([]pending, []vocab.Level) {
	touched := make(map[vocab.Level]bool)
	var batch []pending

	for i, raw := range results {
		res, err := raw.Decode()
		if err != nil {
			s.skip(summary, i, raw, err.Error())
			continue
		}
		item, ok := s.index.Item(res.Key)
		if !ok {
			s.skip(summary, i, raw, ErrUnknownItem.Error())
			continue
		}
		lvl, ok := s.index.LevelOf(res.Key)
		if !ok {
			s.skip(summary, i, raw, "unresolvable level")
			continue
		}

		p := pending{Result: res, item: item, level: lvl}
		if res.Outcome.IsMiss() && res.UserAnswer != "" && res.Direction != "" {
			p.rivals = confusion.Detect(s.index, res.Key, res.UserAnswer, res.Direction)
			for _, k := range p.rivals {
				if rl, ok := s.index.LevelOf(k); ok {
					touched[rl] = true
				}
			}
		}
		touched[lvl] = true
		batch = append(batch, p)
	}

	levels := lo.Keys(touched)
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })
	return batch, levels
}

func (s *Service) skip(summary *UpdateSummary, i int, raw RawResult, reason string) {
	summary.Skipped++
	key := raw.ItemKey
	if key == "" {
		key = raw.Word
	}
	s.log.WithFields(logrus.Fields{
		"index":    i,
		"item_key": key,
		"reason":   reason,
	}).Warn("skipping result")
}

// ledger resolves item states across the loaded level partitions.
type ledger struct {
	index *vocab.Index
	stats map[vocab.Level]mastery.Stats
}

func (l ledger) State(key vocab.ItemKey) *mastery.ItemState {
	lvl, ok := l.index.LevelOf(key)
	if !ok {
		return nil
	}
	partition, ok := l.stats[lvl]
	if !ok {
		return nil
	}
	return partition.Get(key)
}
