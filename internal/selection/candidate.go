// Package selection builds quiz batches: it filters due items under the
// daily new-item quota, samples a batch weighted by priority and injects a
// confusion rival.
package selection

import (
	"sort"

	"github.com/abhisek/vokabel/internal/mastery"
	"github.com/abhisek/vokabel/internal/vocab"
)

// Candidate is an item eligible for the next quiz together with a snapshot
// of its state and its priority.
type Candidate struct {
	Item     vocab.Item
	State    *mastery.ItemState
	Priority float64

	// RivalGroup links an injected rival with the item it was confused with.
	RivalGroup string
}

// Key returns the candidate's item identity.
func (c Candidate) Key() vocab.ItemKey {
	return c.Item.Key()
}

// byPriority sorts ascending by priority with the key as tiebreak.
func byPriority(cands []Candidate) []int {
	order := make([]int, len(cands))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := cands[order[i]], cands[order[j]]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.Key().String() < b.Key().String()
	})
	return order
}
