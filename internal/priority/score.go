// Package priority ranks items by how much attention they need. Scores are
// un-normalized weights in [0, 100]; higher means quiz sooner.
package priority

import (
	"time"

	"github.com/abhisek/vokabel/internal/mastery"
	"github.com/abhisek/vokabel/internal/vocab"
)

const (
	// MaxScore is both the cap and the score of a never-seen item.
	MaxScore = 100.0

	firstEncounterPenalty = 10.0
)

// Breakdown holds the individual sub-scores behind a priority.
type Breakdown struct {
	New             bool    `json:"new"`
	Accuracy        float64 `json:"accuracy"`
	Recency         float64 `json:"recency"`
	Volatility      float64 `json:"volatility"`
	ArticleWeakness float64 `json:"article_weakness"`
	Confusion       float64 `json:"confusion"`
	Stickiness      float64 `json:"stickiness"`
	FirstEncounter  float64 `json:"first_encounter"`
	Total           float64 `json:"total"`
}

// Score returns the priority of an item given its state.
func Score(st *mastery.ItemState, item vocab.Item, now time.Time) float64 {
	return Explain(st, item, now).Total
}

// Explain computes every sub-score and the clamped total.
func Explain(st *mastery.ItemState, item vocab.Item, now time.Time) Breakdown {
	if st == nil || st.TotalEncountered == 0 {
		return Breakdown{New: true, Accuracy: MaxScore, Total: MaxScore}
	}

	b := Breakdown{
		Accuracy:        accuracyScore(st),
		Recency:         recencyScore(st, now),
		Volatility:      volatilityScore(st),
		ArticleWeakness: articleWeaknessScore(st, item),
		Confusion:       confusionScore(st),
		Stickiness:      stickinessScore(st),
	}
	if st.FailedFirstEncounter {
		b.FirstEncounter = firstEncounterPenalty
	}

	sum := b.Accuracy + b.Recency + b.Volatility + b.ArticleWeakness + b.Confusion + b.Stickiness + b.FirstEncounter
	b.Total = clamp(sum, 0, MaxScore)
	return b
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
