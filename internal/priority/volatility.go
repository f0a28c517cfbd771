package priority

import "github.com/abhisek/vokabel/internal/mastery"

const minVolatilityHistory = 3

// volatilityScore rewards unstable items whose answers keep flipping.
func volatilityScore(st *mastery.ItemState) float64 {
	if len(st.RecentHistory) <= minVolatilityHistory {
		return 0
	}
	return min(float64(Flips(st.RecentHistory))*7, 35)
}

// Flips counts adjacent outcome changes in a history.
func Flips(history []bool) int {
	flips := 0
	for i := 1; i < len(history); i++ {
		if history[i] != history[i-1] {
			flips++
		}
	}
	return flips
}
