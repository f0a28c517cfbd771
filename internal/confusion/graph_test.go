package confusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vokabel/internal/mastery"
	"github.com/abhisek/vokabel/internal/vocab"
)

// mapStates places every item in one partition except those listed as orphans.
type mapStates struct {
	stats   mastery.Stats
	orphans map[vocab.ItemKey]bool
}

func newMapStates() *mapStates {
	return &mapStates{stats: mastery.Stats{}, orphans: map[vocab.ItemKey]bool{}}
}

func (m *mapStates) State(key vocab.ItemKey) *mastery.ItemState {
	if m.orphans[key] {
		return nil
	}
	return m.stats.Get(key)
}

var (
	bekommen   = vocab.ItemKey{Word: "bekommen", Meaning: "to receive"}
	werden     = vocab.ItemKey{Word: "werden", Meaning: "to become"}
	erhalten   = vocab.ItemKey{Word: "erhalten", Meaning: "to receive; to preserve"}
	bank       = vocab.ItemKey{Word: "Bank", Meaning: "bench"}
	bankInst   = vocab.ItemKey{Word: "Bank", Meaning: "bank (institution)"}
	unknownKey = vocab.ItemKey{Word: "zzz", Meaning: "?"}
)

func testIndex() *vocab.Index {
	return vocab.NewIndex([]vocab.Level{"a1", "b1"}, map[vocab.Level]map[string][]vocab.Item{
		"a1": {
			"bekommen": {{Word: "bekommen", Meaning: "to receive", Type: "Verb"}},
			"werden":   {{Word: "werden", Meaning: "to become", Type: "Verb"}},
			"Bank": {
				{Word: "Bank", Meaning: "bench", Type: vocab.CategoryNoun, Article: "die"},
				{Word: "Bank", Meaning: "bank (institution)", Type: vocab.CategoryNoun, Article: "die"},
			},
		},
		"b1": {
			"erhalten": {{Word: "erhalten", Meaning: "to receive; to preserve", Type: "Verb"}},
		},
	})
}

func TestRecord_IncrementsBothSides(t *testing.T) {
	states := newMapStates()

	require.True(t, Record(states, bekommen, werden))
	require.True(t, Record(states, bekommen, werden))

	assert.Equal(t, 2, states.stats[bekommen].ConfusedWith[werden])
	assert.Equal(t, 2, states.stats[werden].ConfusedWith[bekommen])
}

func TestRecord_CreatesRivalStateLazily(t *testing.T) {
	states := newMapStates()
	states.stats[bekommen] = mastery.NewState()

	Record(states, bekommen, werden)

	rival, ok := states.stats[werden]
	require.True(t, ok, "rival state should be created")
	assert.Equal(t, 0, rival.TotalEncountered)
	assert.Equal(t, 1, rival.ConfusedWith[bekommen])
}

func TestRecord_Rejected(t *testing.T) {
	states := newMapStates()
	states.orphans[unknownKey] = true

	tests := []struct {
		name string
		a, b vocab.ItemKey
	}{
		{"self", bekommen, bekommen},
		{"zero key", bekommen, vocab.ItemKey{}},
		{"unplaceable rival", bekommen, unknownKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Record(states, tt.a, tt.b) {
				t.Errorf("Record(%v, %v) = true, want false", tt.a, tt.b)
			}
		})
	}
	if n := states.stats.Get(bekommen).ConfusedWith[unknownKey]; n != 0 {
		t.Errorf("one-sided edge recorded: %d", n)
	}
}

func TestDetect(t *testing.T) {
	idx := testIndex()

	tests := []struct {
		name   string
		key    vocab.ItemKey
		answer string
		dir    vocab.Direction
		want   []vocab.ItemKey
	}{
		{"word for meaning prompt", bekommen, "Werden", vocab.MeaningToWord, []vocab.ItemKey{werden}},
		{"meaning part", bekommen, "to preserve", vocab.WordToMeaning, []vocab.ItemKey{erhalten}},
		{"shared answer is not a mix-up", bekommen, "to receive", vocab.WordToMeaning, nil},
		{"homonym with article", bank, "die Bank", vocab.MeaningToWord, nil},
		{"meaning without parenthetical", bank, "bank", vocab.WordToMeaning, []vocab.ItemKey{bankInst}},
		{"no match", bekommen, "laufen", vocab.MeaningToWord, nil},
		{"blank", bekommen, "  ", vocab.MeaningToWord, nil},
		{"unknown item", unknownKey, "werden", vocab.MeaningToWord, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(idx, tt.key, tt.answer, tt.dir)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestResolve_ClearsMutualPerfectRivals(t *testing.T) {
	states := newMapStates()
	Record(states, bekommen, werden)
	Record(states, bekommen, werden)
	Record(states, bekommen, erhalten)

	cleared := Resolve(states, []vocab.ItemKey{bekommen, werden, bank})

	assert.Equal(t, 1, cleared)
	assert.Equal(t, 0, states.stats[bekommen].ConfusedWith[werden])
	assert.Equal(t, 0, states.stats[werden].ConfusedWith[bekommen])
	assert.Contains(t, states.stats[bekommen].ConfusedWith, werden, "entry is kept at zero")
	assert.Equal(t, 1, states.stats[bekommen].ConfusedWith[erhalten], "unrelated rival untouched")
}

func TestResolve_RepairsLaggingSide(t *testing.T) {
	states := newMapStates()
	states.stats.Get(bekommen).ConfusedWith[werden] = 2

	assert.Equal(t, 1, Resolve(states, []vocab.ItemKey{werden, bekommen, bekommen}))
	assert.Equal(t, 0, states.stats[werden].ConfusedWith[bekommen])
}

func TestRivals_Ordering(t *testing.T) {
	st := mastery.NewState()
	st.ConfusedWith[werden] = 1
	st.ConfusedWith[erhalten] = 4
	st.ConfusedWith[bank] = 1
	st.ConfusedWith[bankInst] = 0

	got := Rivals(st)

	want := []Rival{{erhalten, 4}, {bank, 1}, {werden, 1}}
	assert.Equal(t, want, got)
	assert.Nil(t, Rivals(nil))
}
