package priority

import "github.com/abhisek/vokabel/internal/mastery"

// confusionScore adds five points per active rival, up to 20.
func confusionScore(st *mastery.ItemState) float64 {
	rivals := 0
	for _, n := range st.ConfusedWith {
		if n > 0 {
			rivals++
		}
	}
	return min(float64(rivals)*5, 20)
}
