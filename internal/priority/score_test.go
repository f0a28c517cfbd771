package priority

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/abhisek/vokabel/internal/mastery"
	"github.com/abhisek/vokabel/internal/vocab"
)

var (
	now  = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	noun = vocab.Item{Word: "Haus", Meaning: "house", Type: vocab.CategoryNoun, Level: "a1"}
	verb = vocab.Item{Word: "gehen", Meaning: "to go", Type: "Verb", Level: "a1"}
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScore_NewItemIsMaximal(t *testing.T) {
	st := mastery.NewState()
	// Stale fields on an unseen item must not matter.
	st.Wrong = 7
	st.FailedFirstEncounter = true

	if got := Score(st, noun, now); got != MaxScore {
		t.Errorf("Score(new) = %v, want %v", got, MaxScore)
	}
	if got := Score(nil, noun, now); got != MaxScore {
		t.Errorf("Score(nil) = %v, want %v", got, MaxScore)
	}
	if b := Explain(st, noun, now); !b.New {
		t.Error("Explain(new).New = false, want true")
	}
}

func TestAccuracyScore(t *testing.T) {
	tests := []struct {
		name         string
		right, wrong int
		total        int
		want         float64
	}{
		{"all right", 4, 0, 4, 0},
		{"half", 2, 2, 4, 35},
		{"all wrong", 0, 3, 3, 65},
		{"mistakes capped", 0, 20, 20, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &mastery.ItemState{Right: tt.right, Wrong: tt.wrong, TotalEncountered: tt.total}
			if got := accuracyScore(st); !approx(got, tt.want) {
				t.Errorf("accuracyScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecencyScore(t *testing.T) {
	tests := []struct {
		name     string
		lastSeen *time.Time
		want     float64
	}{
		{"never seen", nil, 0},
		{"same day", ptr(now.Add(-3 * time.Hour)), 0},
		{"36 hours", ptr(now.Add(-36 * time.Hour)), 1},
		{"four days", ptr(now.AddDate(0, 0, -4)), 4},
		{"capped", ptr(now.AddDate(0, 0, -40)), 10},
		{"future clock skew", ptr(now.Add(48 * time.Hour)), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &mastery.ItemState{LastSeen: tt.lastSeen}
			if got := recencyScore(st, now); got != tt.want {
				t.Errorf("recencyScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVolatility_AlternatingHistory(t *testing.T) {
	rules := mastery.DefaultRules()
	st := mastery.NewState()
	for _, o := range []mastery.Outcome{mastery.OutcomePerfect, mastery.OutcomeMiss, mastery.OutcomePerfect, mastery.OutcomeMiss} {
		rules.Apply(st, o, mastery.Context{Now: now})
	}

	if got := Flips(st.RecentHistory); got != 3 {
		t.Errorf("Flips = %d, want 3", got)
	}
	if got := volatilityScore(st); got != 21 {
		t.Errorf("volatilityScore = %v, want 21", got)
	}
}

func TestVolatility_ShortHistoryIgnored(t *testing.T) {
	st := &mastery.ItemState{RecentHistory: []bool{true, false, true}}
	if got := volatilityScore(st); got != 0 {
		t.Errorf("volatilityScore = %v, want 0", got)
	}
}

func TestVolatility_Capped(t *testing.T) {
	h := make([]bool, 12)
	for i := range h {
		h[i] = i%2 == 0
	}
	st := &mastery.ItemState{RecentHistory: h}
	if got := volatilityScore(st); got != 35 {
		t.Errorf("volatilityScore = %v, want 35", got)
	}
}

func TestArticleWeaknessScore(t *testing.T) {
	tests := []struct {
		name         string
		item         vocab.Item
		articleWrong int
		wrong        int
		want         float64
	}{
		{"noun mostly article errors", noun, 4, 1, 20},
		{"noun exactly at ratio", noun, 3, 2, 0},
		{"noun no errors", noun, 0, 0, 0},
		{"verb ignored", verb, 4, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &mastery.ItemState{ArticleWrong: tt.articleWrong, Wrong: tt.wrong}
			if got := articleWeaknessScore(st, tt.item); got != tt.want {
				t.Errorf("articleWeaknessScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfusionScore(t *testing.T) {
	st := mastery.NewState()
	st.ConfusedWith[vocab.ItemKey{Word: "a"}] = 2
	st.ConfusedWith[vocab.ItemKey{Word: "b"}] = 0
	st.ConfusedWith[vocab.ItemKey{Word: "c"}] = 1
	if got := confusionScore(st); got != 10 {
		t.Errorf("confusionScore = %v, want 10", got)
	}

	for _, w := range []string{"d", "e", "f", "g"} {
		st.ConfusedWith[vocab.ItemKey{Word: w}] = 1
	}
	if got := confusionScore(st); got != 20 {
		t.Errorf("confusionScore(capped) = %v, want 20", got)
	}
}

func TestStickinessScore(t *testing.T) {
	tests := []struct {
		name        string
		wrong       int
		corrections int
		want        float64
	}{
		{"too few mistakes", 2, 0, 0},
		{"never corrected", 3, 0, 30},
		{"forty percent", 5, 2, 6},
		{"half corrected", 4, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &mastery.ItemState{Wrong: tt.wrong, SuccessfulCorrections: tt.corrections}
			if got := stickinessScore(st); !approx(got, tt.want) {
				t.Errorf("stickinessScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExplain_SumsSubScores(t *testing.T) {
	seen := now.AddDate(0, 0, -2)
	st := &mastery.ItemState{
		Right:            3,
		Wrong:            1,
		TotalEncountered: 4,
		LastSeen:         &seen,
		RecentHistory:    []bool{true, true, false, true},
	}

	b := Explain(st, verb, now)
	// accuracy (1-0.75)*50+5 = 17.5, recency 2, volatility 2 flips (history length 4) = 14
	want := 17.5 + 2 + 14
	if !approx(b.Total, want) {
		t.Errorf("Total = %v, want %v", b.Total, want)
	}
	if b.New {
		t.Error("New = true, want false")
	}
}

func TestScore_FirstEncounterPenalty(t *testing.T) {
	base := &mastery.ItemState{Right: 1, TotalEncountered: 1}
	flagged := &mastery.ItemState{Right: 1, TotalEncountered: 1, FailedFirstEncounter: true}
	if d := Score(flagged, verb, now) - Score(base, verb, now); d != 10 {
		t.Errorf("penalty = %v, want 10", d)
	}
}

func TestScore_AlwaysWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		st := randomState(rng)
		item := verb
		if rng.Intn(2) == 0 {
			item = noun
		}
		got := Score(st, item, now)
		if got < 0 || got > MaxScore {
			t.Fatalf("Score = %v out of bounds for %+v", got, st)
		}
	}
}

func randomState(rng *rand.Rand) *mastery.ItemState {
	st := mastery.NewState()
	st.Right = rng.Intn(30)
	st.Wrong = rng.Intn(30)
	st.ArticleWrong = rng.Intn(10)
	st.TotalEncountered = st.Right + st.Wrong + st.ArticleWrong + rng.Intn(3)
	st.SuccessfulCorrections = rng.Intn(10)
	st.FailedFirstEncounter = rng.Intn(2) == 0
	seen := now.AddDate(0, 0, -rng.Intn(30))
	st.LastSeen = &seen
	for j := rng.Intn(20); j > 0; j-- {
		st.RecentHistory = append(st.RecentHistory, rng.Intn(2) == 0)
	}
	for j := rng.Intn(6); j > 0; j-- {
		st.ConfusedWith[vocab.ItemKey{Word: string(rune('a' + j))}] = rng.Intn(4)
	}
	return st
}

func ptr(t time.Time) *time.Time { return &t }
