package selection

import (
	"time"

	"github.com/abhisek/vokabel/internal/mastery"
	"github.com/abhisek/vokabel/internal/priority"
	"github.com/abhisek/vokabel/internal/vocab"
)

// Defaults for Config fields left at zero.
const (
	DefaultBatchSize         = 5
	DefaultDailyNewItemLimit = 20
)

// Config controls batch composition.
type Config struct {
	DailyNewItemLimit int
	BatchSize         int
	RivalThreshold    int
}

// Request is the input of one selection call.
type Request struct {
	Scope     vocab.Scope
	BatchSize int
	// Stats holds one partition per loaded level. Levels without a
	// partition contribute no candidates. Injected rivals read their state
	// from here too, so it should cover every level, not just the scope.
	Stats     map[vocab.Level]mastery.Stats
	SeenToday map[vocab.Level][]vocab.ItemKey
	Now       time.Time
}

// Selector composes quiz batches from the catalog index.
type Selector struct {
	cfg      Config
	index    *vocab.Index
	sampler  *Sampler
	newGroup func() string
}

// NewSelector creates a selector. A nil sampler gets a clock-seeded one.
func NewSelector(cfg Config, index *vocab.Index, sampler *Sampler) *Selector {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.DailyNewItemLimit < 0 {
		cfg.DailyNewItemLimit = 0
	}
	if cfg.RivalThreshold <= 0 {
		cfg.RivalThreshold = DefaultRivalThreshold
	}
	if sampler == nil {
		sampler = NewSampler(nil)
	}
	return &Selector{cfg: cfg, index: index, sampler: sampler}
}

// Config returns the effective configuration.
func (s *Selector) Config() Config {
	return s.cfg
}

// Select returns the next quiz batch. An empty result means nothing is due.
func (s *Selector) Select(req Request) []Candidate {
	size := req.BatchSize
	if size <= 0 {
		size = s.cfg.BatchSize
	}

	quota := NewQuota(s.cfg.DailyNewItemLimit, req.SeenToday)
	pool := Filter(s.index.Items(req.Scope), req.Stats, quota, req.Now)
	batch := s.sampler.Sample(pool.Eligible(quota, s.sampler), size)

	inj := Injector{
		Index:     s.index,
		Threshold: s.cfg.RivalThreshold,
		NewGroup:  s.newGroup,
		Resolve: func(it vocab.Item) Candidate {
			st := snapshot(req.Stats[it.Level], it.Key())
			return Candidate{Item: it, State: st, Priority: priority.Score(st, it, req.Now)}
		},
	}
	batch, _ = inj.Inject(batch)
	return batch
}
