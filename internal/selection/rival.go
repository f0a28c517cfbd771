package selection

import (
	"github.com/google/uuid"

	"github.com/abhisek/vokabel/internal/confusion"
	"github.com/abhisek/vokabel/internal/vocab"
)

// DefaultRivalThreshold is the confusion count at which a rival from another
// level is injected.
const DefaultRivalThreshold = 3

// Injector places one known rival into a sampled batch.
type Injector struct {
	Index     *vocab.Index
	Threshold int

	// Resolve builds a candidate for an injected item.
	Resolve func(vocab.Item) Candidate
	// NewGroup returns a fresh rival-group marker.
	NewGroup func() string
}

// Inject walks the batch from highest to lowest priority and, for the first
// member with a triggering rival outside the batch, replaces the
// lowest-priority member with that rival. Both are tagged with the same
// group. It reports whether a rival was injected.
func (in Injector) Inject(batch []Candidate) ([]Candidate, bool) {
	if len(batch) < 2 {
		return batch, false
	}

	present := make(map[vocab.ItemKey]bool, len(batch))
	for _, c := range batch {
		present[c.Key()] = true
	}

	order := byPriority(batch)
	for i := len(order) - 1; i >= 0; i-- {
		a := batch[order[i]]
		for _, r := range confusion.Rivals(a.State) {
			if present[r.Key] || !in.triggers(a, r) {
				continue
			}
			b, ok := in.Index.Item(r.Key)
			if !ok {
				continue
			}

			victim := order[0]
			if victim == order[i] {
				victim = order[1]
			}

			group := in.group()
			out := append([]Candidate(nil), batch...)
			out[victim] = in.resolve(b)
			out[victim].RivalGroup = group
			out[order[i]].RivalGroup = group
			return out, true
		}
	}
	return batch, false
}

func (in Injector) triggers(a Candidate, r confusion.Rival) bool {
	if r.Count <= 0 {
		return false
	}
	lvl, ok := in.Index.LevelOf(r.Key)
	if !ok {
		return false
	}
	return lvl == a.Item.Level || r.Count >= in.threshold()
}

func (in Injector) threshold() int {
	if in.Threshold <= 0 {
		return DefaultRivalThreshold
	}
	return in.Threshold
}

func (in Injector) group() string {
	if in.NewGroup != nil {
		return in.NewGroup()
	}
	return uuid.NewString()
}

func (in Injector) resolve(it vocab.Item) Candidate {
	if in.Resolve != nil {
		return in.Resolve(it)
	}
	return Candidate{Item: it}
}
