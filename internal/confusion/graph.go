// Package confusion maintains the rival graph stored on each item's state.
// Every edge lives twice, once on each side's ConfusedWith map, and every
// mutation here updates both sides.
package confusion

import (
	"sort"

	"github.com/samber/lo"

	"github.com/abhisek/vokabel/internal/mastery"
	"github.com/abhisek/vokabel/internal/vocab"
)

// States resolves the mutable state for an item, creating it lazily. It
// returns nil when the item cannot be placed in any stats partition.
type States interface {
	State(key vocab.ItemKey) *mastery.ItemState
}

// Rival is one entry of an item's confusion map.
type Rival struct {
	Key   vocab.ItemKey
	Count int
}

// Record notes that a was mistaken for b and increments the edge on both sides.
// It reports whether the edge was recorded.
func Record(states States, a, b vocab.ItemKey) bool {
	if a == b || a.IsZero() || b.IsZero() {
		return false
	}
	sa, sb := states.State(a), states.State(b)
	if sa == nil || sb == nil {
		return false
	}
	sa.Normalize()
	sb.Normalize()
	sa.ConfusedWith[b]++
	sb.ConfusedWith[a]++
	return true
}

// Detect returns the other catalog items whose correct answer the learner
// gave for key. An answer that is also correct for key itself is not a
// mis-recognition.
func Detect(idx *vocab.Index, key vocab.ItemKey, answer string, dir vocab.Direction) []vocab.ItemKey {
	item, ok := idx.Item(key)
	if !ok {
		return nil
	}
	norm := vocab.NormalizeAnswer(answer)
	if norm == "" || lo.Contains(item.AnswerForms(dir), norm) {
		return nil
	}
	return lo.Filter(idx.MatchAnswer(answer, dir), func(k vocab.ItemKey, _ int) bool {
		return k != key
	})
}

// Resolve clears the edge between every pair of rivals that were both
// answered perfectly in the same batch. Entries are kept with a zero count.
// It returns the number of pairs cleared.
func Resolve(states States, perfect []vocab.ItemKey) int {
	keys := lo.Uniq(perfect)
	cleared := 0
	for i, a := range keys {
		sa := states.State(a)
		if sa == nil {
			continue
		}
		for _, b := range keys[i+1:] {
			sb := states.State(b)
			if sb == nil {
				continue
			}
			if sa.ConfusedWith[b] <= 0 && sb.ConfusedWith[a] <= 0 {
				continue
			}
			sa.Normalize()
			sb.Normalize()
			sa.ConfusedWith[b] = 0
			sb.ConfusedWith[a] = 0
			cleared++
		}
	}
	return cleared
}

// Rivals lists the active rivals of st, most confused first. Ties are broken
// by key so the order is stable.
func Rivals(st *mastery.ItemState) []Rival {
	if st == nil {
		return nil
	}
	var out []Rival
	for k, n := range st.ConfusedWith {
		if n > 0 {
			out = append(out, Rival{Key: k, Count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key.String() < out[j].Key.String()
	})
	return out
}
