// Package session exposes the scheduler to callers: quiz selection, result
// recording, starring and stats lookups. It is the synchronisation point
// between concurrent requests and the persistence collaborators.
package session

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/vokabel/internal/mastery"
	"github.com/abhisek/vokabel/internal/report"
	"github.com/abhisek/vokabel/internal/selection"
	"github.com/abhisek/vokabel/internal/store"
	"github.com/abhisek/vokabel/internal/vocab"
)

var (
	// ErrInvalidScope is returned for a scope that is neither a level nor "mix".
	ErrInvalidScope = vocab.ErrInvalidScope

	// ErrEmptyBatch is returned when RecordResults receives no results.
	ErrEmptyBatch = errors.New("empty result batch")

	// ErrUnknownItem is returned when a key does not resolve to a catalog item.
	ErrUnknownItem = errors.New("unknown item")
)

// StatsStore loads and saves one level partition of item states.
type StatsStore interface {
	Load(ctx context.Context, level vocab.Level) (mastery.Stats, error)
	Save(ctx context.Context, level vocab.Level, stats mastery.Stats) error
}

// ReportStore loads and saves the report document. Load returns nil when
// no report exists yet.
type ReportStore interface {
	Load(ctx context.Context) (*report.Report, error)
	Save(ctx context.Context, r *report.Report) error
}

// TransitionLog records state machine transitions.
type TransitionLog interface {
	Append(ctx context.Context, events []store.TransitionEvent) error
}

// Options configures a Service. Zero values fall back to defaults.
type Options struct {
	Rules       mastery.Rules
	Selection   selection.Config
	Sampler     *selection.Sampler
	Transitions TransitionLog
	Clock       func() time.Time
	Logger      logrus.FieldLogger
}

// Service runs quiz selection and result recording over the catalog index
// and the stores.
type Service struct {
	index       *vocab.Index
	stats       StatsStore
	reports     ReportStore
	transitions TransitionLog
	rules       mastery.Rules
	selector    *selection.Selector
	clock       func() time.Time
	log         logrus.FieldLogger

	levelLocks map[vocab.Level]*sync.Mutex
	reportMu   sync.Mutex
}

// NewService wires a Service.
func NewService(index *vocab.Index, stats StatsStore, reports ReportStore, opts Options) *Service {
	if opts.Rules == (mastery.Rules{}) {
		opts.Rules = mastery.DefaultRules()
	}
	if opts.Selection.DailyNewItemLimit == 0 {
		opts.Selection.DailyNewItemLimit = selection.DefaultDailyNewItemLimit
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	locks := make(map[vocab.Level]*sync.Mutex)
	for _, lvl := range index.Levels() {
		locks[lvl] = &sync.Mutex{}
	}

	return &Service{
		index:       index,
		stats:       stats,
		reports:     reports,
		transitions: opts.Transitions,
		rules:       opts.Rules,
		selector:    selection.NewSelector(opts.Selection, index, opts.Sampler),
		clock:       opts.Clock,
		log:         opts.Logger.WithField("component", "session"),
		levelLocks:  locks,
	}
}

// lockLevels locks the given levels in sorted order and returns the unlock func.
func (s *Service) lockLevels(levels []vocab.Level) func() {
	sorted := append([]vocab.Level(nil), levels...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var held []*sync.Mutex
	for _, lvl := range sorted {
		mu := s.levelLocks[lvl]
		if mu == nil {
			continue
		}
		mu.Lock()
		held = append(held, mu)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

// readStats loads the partitions for levels in parallel. A failed load is
// logged and yields an empty partition.
func (s *Service) readStats(ctx context.Context, levels []vocab.Level) map[vocab.Level]mastery.Stats {
	out := make(map[vocab.Level]mastery.Stats, len(levels))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, lvl := range levels {
		g.Go(func() error {
			st, err := s.stats.Load(gctx, lvl)
			if err != nil {
				s.log.WithError(err).WithField("level", lvl).Warn("stats unavailable, treating as empty")
				st = nil
			}
			if st == nil {
				st = mastery.Stats{}
			}
			mu.Lock()
			out[lvl] = st
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// loadStatsForUpdate loads the partitions for levels in parallel and fails
// on the first error, so a later save never overwrites unread state.
func (s *Service) loadStatsForUpdate(ctx context.Context, levels []vocab.Level) (map[vocab.Level]mastery.Stats, error) {
	out := make(map[vocab.Level]mastery.Stats, len(levels))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, lvl := range levels {
		g.Go(func() error {
			st, err := s.stats.Load(gctx, lvl)
			if err != nil {
				return err
			}
			if st == nil {
				st = mastery.Stats{}
			}
			mu.Lock()
			out[lvl] = st
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// readReport loads the report, falling back to an empty one.
func (s *Service) readReport(ctx context.Context) *report.Report {
	rep, err := s.reports.Load(ctx)
	if err != nil {
		s.log.WithError(err).Warn("report unavailable, treating as empty")
		rep = nil
	}
	if rep == nil {
		rep = report.New(s.index.Levels())
	}
	rep.Normalize(s.index.Levels())
	return rep
}
