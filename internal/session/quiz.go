package session

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/vokabel/internal/selection"
	"github.com/abhisek/vokabel/internal/vocab"
)

// ItemPayload is one quiz entry: the catalog item plus its key and, when it
// was paired with a rival, the shared group marker.
type ItemPayload struct {
	vocab.Item
	Key        vocab.ItemKey `json:"item_key"`
	Priority   float64       `json:"priority"`
	IsStarred  bool          `json:"is_starred"`
	RivalGroup string        `json:"rival_group,omitempty"`
}

// SessionInfo describes the scheduling parameters behind a quiz.
type SessionInfo struct {
	Scope             string `json:"scope"`
	DailyNewItemLimit int    `json:"daily_new_item_limit"`
	TotalCatalogSize  int    `json:"total_catalog_size"`
	MasteryGoal       int    `json:"mastery_goal"`
	FailureThreshold  int    `json:"failure_threshold"`
}

// Quiz is the result of SelectQuiz. Empty Items means nothing is due.
type Quiz struct {
	Items []ItemPayload `json:"items"`
	Info  SessionInfo   `json:"session_info"`
}

// SelectQuiz picks the next batch for scope, a level name or "mix". A
// non-positive batchSize uses the configured default.
func (s *Service) SelectQuiz(ctx context.Context, scope string, batchSize int) (*Quiz, error) {
	sc, err := vocab.ResolveScope(scope, s.index.Levels())
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}

	now := s.clock()
	// Rivals may come from outside the scope, so every level is loaded.
	// Candidates are still drawn from the scope only.
	stats := s.readStats(ctx, s.index.Levels())
	rep := s.readReport(ctx)

	batch := s.selector.Select(selection.Request{
		Scope:     sc,
		BatchSize: batchSize,
		Stats:     stats,
		SeenToday: rep.SeenToday(now),
		Now:       now,
	})

	cfg := s.selector.Config()
	quiz := &Quiz{
		Items: make([]ItemPayload, 0, len(batch)),
		Info: SessionInfo{
			Scope:             sc.Name,
			DailyNewItemLimit: cfg.DailyNewItemLimit,
			TotalCatalogSize:  s.index.Size(sc),
			MasteryGoal:       s.rules.MasteryGoal,
			FailureThreshold:  s.rules.HardWordThreshold,
		},
	}
	for _, c := range batch {
		quiz.Items = append(quiz.Items, ItemPayload{
			Item:       c.Item,
			Key:        c.Key(),
			Priority:   c.Priority,
			IsStarred:  c.State != nil && c.State.IsStarred,
			RivalGroup: c.RivalGroup,
		})
	}

	s.log.WithFields(logrus.Fields{
		"scope":      sc.Name,
		"items":      len(quiz.Items),
		"catalog":    quiz.Info.TotalCatalogSize,
		"rival_pair": hasRivalPair(quiz.Items),
	}).Debug("quiz selected")
	return quiz, nil
}

func hasRivalPair(items []ItemPayload) bool {
	for _, it := range items {
		if it.RivalGroup != "" {
			return true
		}
	}
	return false
}
