package session

import (
	"context"
	"fmt"

	"github.com/abhisek/vokabel/internal/vocab"
)

// StarStatus is the result of SetStarred.
type StarStatus struct {
	Key       vocab.ItemKey `json:"item_key"`
	IsStarred bool          `json:"is_starred"`
}

// SetStarred pins or unpins an item. Pinned items use the gentler
// scheduling table. The item's state is created if it was never quizzed.
func (s *Service) SetStarred(ctx context.Context, key vocab.ItemKey, starred bool) (*StarStatus, error) {
	lvl, ok := s.index.LevelOf(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, key)
	}

	unlock := s.lockLevels([]vocab.Level{lvl})
	defer unlock()

	stats, err := s.loadStatsForUpdate(ctx, []vocab.Level{lvl})
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	st := stats[lvl].Get(key)
	st.IsStarred = starred

	if err := s.stats.Save(ctx, lvl, stats[lvl]); err != nil {
		return nil, fmt.Errorf("save stats %s: %w", lvl, err)
	}

	s.log.WithField("item_key", key.String()).WithField("starred", starred).Info("star status updated")
	return &StarStatus{Key: key, IsStarred: starred}, nil
}
