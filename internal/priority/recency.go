package priority

import (
	"math"
	"time"

	"github.com/abhisek/vokabel/internal/mastery"
)

// recencyScore adds one point per whole day since the item was last seen, up to 10.
func recencyScore(st *mastery.ItemState, now time.Time) float64 {
	if st.LastSeen == nil {
		return 0
	}
	days := math.Floor(now.Sub(*st.LastSeen).Hours() / 24)
	return clamp(days, 0, 10)
}
