package mastery

import (
	"time"

	"github.com/abhisek/vokabel/internal/vocab"
)

// DefaultHistoryMaxLength is the number of recent outcomes kept per item.
const DefaultHistoryMaxLength = 100

// ItemState is the mutable learning record of one item.
type ItemState struct {
	Right            int `json:"right"`
	Wrong            int `json:"wrong"`
	ArticleWrong     int `json:"article_wrong"`
	TotalEncountered int `json:"total_encountered"`

	LastSeen    *time.Time `json:"last_seen"`
	LastCorrect *time.Time `json:"last_correct"`

	ConsecutiveCorrect int        `json:"consecutive_correct"`
	StreakLevel        int        `json:"streak_level"`
	CurrentDelayDays   int        `json:"current_delay_days"`
	NextShowDate       *time.Time `json:"next_show_date"`

	RecentHistory []bool                `json:"recent_history"`
	ConfusedWith  map[vocab.ItemKey]int `json:"confused_with"`

	FailedFirstEncounter  bool `json:"failed_first_encounter"`
	IsStarred             bool `json:"is_starred"`
	LastResultWasWrong    bool `json:"last_result_was_wrong"`
	SuccessfulCorrections int  `json:"successful_corrections"`
}

// NewState returns a zeroed state. Every call allocates its own history and
// confusion map.
func NewState() *ItemState {
	return &ItemState{
		RecentHistory: []bool{},
		ConfusedWith:  make(map[vocab.ItemKey]int),
	}
}

// Clone returns a deep copy of s.
func (s *ItemState) Clone() *ItemState {
	c := *s
	c.LastSeen = cloneTime(s.LastSeen)
	c.LastCorrect = cloneTime(s.LastCorrect)
	c.NextShowDate = cloneTime(s.NextShowDate)
	c.RecentHistory = append([]bool{}, s.RecentHistory...)
	c.ConfusedWith = make(map[vocab.ItemKey]int, len(s.ConfusedWith))
	for k, v := range s.ConfusedWith {
		c.ConfusedWith[k] = v
	}
	return &c
}

// Normalize fills nil collections and clamps negative counters, e.g. after
// decoding a hand-edited record.
func (s *ItemState) Normalize() {
	if s.RecentHistory == nil {
		s.RecentHistory = []bool{}
	}
	if s.ConfusedWith == nil {
		s.ConfusedWith = make(map[vocab.ItemKey]int)
	}
	for _, c := range []*int{&s.Right, &s.Wrong, &s.ArticleWrong, &s.TotalEncountered, &s.SuccessfulCorrections} {
		if *c < 0 {
			*c = 0
		}
	}
}

// IsDue reports whether the item should be shown on the given day.
func (s *ItemState) IsDue(today time.Time) bool {
	if s.NextShowDate == nil {
		return true
	}
	return !Day(*s.NextShowDate).After(Day(today))
}

// Phase derives the lifecycle phase relative to today.
func (s *ItemState) Phase(today time.Time) Phase {
	switch {
	case s.TotalEncountered == 0:
		return PhaseNew
	case !s.IsDue(today):
		return PhaseScheduled
	default:
		return PhaseLearning
	}
}

// Stats maps item keys to their states for one level partition.
type Stats map[vocab.ItemKey]*ItemState

// Get returns the state for key, creating a fresh one if absent.
func (m Stats) Get(key vocab.ItemKey) *ItemState {
	if st, ok := m[key]; ok && st != nil {
		return st
	}
	st := NewState()
	m[key] = st
	return st
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}

// DateString formats t as an ISO calendar date.
func DateString(t time.Time) string {
	return t.Format(time.DateOnly)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
