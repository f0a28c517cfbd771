package priority

import (
	"github.com/abhisek/vokabel/internal/mastery"
	"github.com/abhisek/vokabel/internal/vocab"
)

const (
	articleWeaknessRatio = 0.6
	articleWeaknessBoost = 20.0
)

// articleWeaknessScore flags nouns whose errors are mostly about the article.
func articleWeaknessScore(st *mastery.ItemState, item vocab.Item) float64 {
	if !item.IsNoun() {
		return 0
	}
	total := st.ArticleWrong + st.Wrong
	if total <= 0 {
		return 0
	}
	if float64(st.ArticleWrong)/float64(total) > articleWeaknessRatio {
		return articleWeaknessBoost
	}
	return 0
}
