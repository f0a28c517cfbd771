package priority

import "github.com/abhisek/vokabel/internal/mastery"

// accuracyScore weighs inverse accuracy and the raw number of mistakes.
func accuracyScore(st *mastery.ItemState) float64 {
	accuracy := float64(st.Right) / float64(st.TotalEncountered)
	mistakes := min(float64(st.Wrong)*5, 40)
	return (1-accuracy)*50 + mistakes
}
