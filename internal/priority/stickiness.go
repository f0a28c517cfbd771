package priority

import "github.com/abhisek/vokabel/internal/mastery"

// stickinessScore is high when mistakes are rarely corrected on the next try.
// A 0% correction rate yields 30, 40% yields 6, and 50% or more yields 0.
func stickinessScore(st *mastery.ItemState) float64 {
	mistakes := st.Wrong + st.ArticleWrong
	if mistakes <= 2 {
		return 0
	}
	rate := float64(st.SuccessfulCorrections) / float64(mistakes)
	if rate >= 0.5 {
		return 0
	}
	return (1 - rate*2) * 30
}
