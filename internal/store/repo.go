package store

import (
	"context"
	"time"

	"github.com/abhisek/vokabel/internal/mastery"
	"github.com/abhisek/vokabel/internal/report"
	"github.com/abhisek/vokabel/internal/vocab"
)

// StatsRepo persists item states, partitioned by level.
type StatsRepo interface {
	// Load returns every state stored for level. An empty partition is not an error.
	Load(ctx context.Context, level vocab.Level) (mastery.Stats, error)

	// Save upserts every state in stats atomically. States are never deleted.
	Save(ctx context.Context, level vocab.Level, stats mastery.Stats) error
}

// ReportRepo persists the single report document.
type ReportRepo interface {
	// Load returns the stored report, or nil if none exists.
	Load(ctx context.Context) (*report.Report, error)

	// Save replaces the stored report.
	Save(ctx context.Context, r *report.Report) error
}

// TransitionEvent is one logged state machine transition.
type TransitionEvent struct {
	ID        int64
	Key       vocab.ItemKey
	Level     vocab.Level
	Outcome   string
	From      mastery.Phase
	To        mastery.Phase
	Trigger   string
	Learned   bool
	Timestamp time.Time
}

// TransitionRepo provides append and query access to the transition log.
type TransitionRepo interface {
	// Append records events in order.
	Append(ctx context.Context, events []TransitionEvent) error

	// Recent returns the latest events for key, newest first.
	Recent(ctx context.Context, key vocab.ItemKey, limit int) ([]TransitionEvent, error)
}
