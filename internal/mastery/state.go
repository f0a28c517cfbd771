package mastery

import "github.com/abhisek/vokabel/internal/vocab"

// Phase represents an item's position in the scheduling lifecycle.
type Phase string

const (
	PhaseNew       Phase = "new"
	PhaseLearning  Phase = "learning"
	PhaseScheduled Phase = "scheduled"
)

// Transition records the effect of one result on an item.
type Transition struct {
	Key     vocab.ItemKey
	From    Phase
	To      Phase
	Learned bool   // the mastery goal was reached on this result
	// Trigger names the rule that fired: "correct", "streak-complete",
	// "partial", "miss" or "hard-miss", prefixed with "first-" on an item's
	// first result.
	Trigger string
}
