package mastery

import "time"

const (
	// DefaultMasteryGoal is the consecutive-correct count that advances scheduling.
	DefaultMasteryGoal = 3

	// DefaultHardWordThreshold is the number of misses in one day after which
	// an item is pushed to tomorrow with an extra penalty.
	DefaultHardWordThreshold = 3

	// hardMissPenalty is added to Wrong on a hard miss, on top of the miss itself.
	hardMissPenalty = 2
)

// Rules parameterizes the state machine.
type Rules struct {
	MasteryGoal       int
	HardWordThreshold int
	HistoryMaxLength  int
}

// DefaultRules returns the standard scheduling rules.
func DefaultRules() Rules {
	return Rules{
		MasteryGoal:       DefaultMasteryGoal,
		HardWordThreshold: DefaultHardWordThreshold,
		HistoryMaxLength:  DefaultHistoryMaxLength,
	}
}

// Context carries the per-result inputs that do not live on the item.
type Context struct {
	Now time.Time
	// MissesToday is how many times the item was already missed today,
	// not counting the result being applied.
	MissesToday int
}

// Apply advances st by one result and reports the transition.
func (r Rules) Apply(st *ItemState, outcome Outcome, in Context) Transition {
	st.Normalize()
	today := Day(in.Now)
	from := st.Phase(today)
	perfect := outcome.IsPerfect()

	now := in.Now
	st.TotalEncountered++
	st.LastSeen = &now
	if st.TotalEncountered == 1 && !perfect {
		st.FailedFirstEncounter = true
	}
	r.recordHistory(st, perfect)
	recordCorrection(st, perfect)

	var t Transition
	if st.IsStarred {
		t = r.applyStarred(st, outcome, now, today)
	} else {
		t = r.applyRegular(st, outcome, now, today, in.MissesToday)
	}
	t.From = from
	t.To = st.Phase(today)
	if from == PhaseNew && !t.Learned {
		t.Trigger = "first-" + t.Trigger
	}
	return t
}

func (r Rules) applyRegular(st *ItemState, outcome Outcome, now, today time.Time, missesToday int) Transition {
	switch {
	case outcome.IsPerfect():
		st.Right++
		st.ConsecutiveCorrect++
		st.ArticleWrong = 0
		st.LastCorrect = &now
		if st.ConsecutiveCorrect >= r.goal() {
			st.StreakLevel++
			st.CurrentDelayDays += st.StreakLevel
			next := today.AddDate(0, 0, st.CurrentDelayDays)
			st.NextShowDate = &next
			st.ConsecutiveCorrect = 0
			return Transition{Learned: true, Trigger: "streak-complete"}
		}
		return Transition{Trigger: "correct"}

	case outcome.IsPartial():
		st.ArticleWrong++
		st.ConsecutiveCorrect = 0
		return Transition{Trigger: "partial"}

	default:
		st.Wrong++
		st.ConsecutiveCorrect = 0
		st.StreakLevel = 0
		if missesToday >= r.hardThreshold()-1 {
			st.Wrong += hardMissPenalty
			st.CurrentDelayDays = 1
			next := today.AddDate(0, 0, 1)
			st.NextShowDate = &next
			return Transition{Trigger: "hard-miss"}
		}
		st.CurrentDelayDays = 0
		st.NextShowDate = &today
		return Transition{Trigger: "miss"}
	}
}

// applyStarred is the gentler table for pinned items: they come back
// tomorrow after a full streak and today after any mistake, without growing
// a delay.
func (r Rules) applyStarred(st *ItemState, outcome Outcome, now, today time.Time) Transition {
	switch {
	case outcome.IsPerfect():
		st.Right++
		st.ConsecutiveCorrect++
		st.LastCorrect = &now
		if st.ConsecutiveCorrect >= r.goal() {
			next := today.AddDate(0, 0, 1)
			st.NextShowDate = &next
			st.ConsecutiveCorrect = 0
			return Transition{Learned: true, Trigger: "streak-complete"}
		}
		return Transition{Trigger: "correct"}

	case outcome.IsPartial():
		st.ArticleWrong++
		st.ConsecutiveCorrect = 0
		st.NextShowDate = &today
		return Transition{Trigger: "partial"}

	default:
		st.Wrong++
		st.ConsecutiveCorrect = 0
		st.NextShowDate = &today
		return Transition{Trigger: "miss"}
	}
}

func (r Rules) recordHistory(st *ItemState, perfect bool) {
	st.RecentHistory = append(st.RecentHistory, perfect)
	limit := r.HistoryMaxLength
	if limit <= 0 {
		limit = DefaultHistoryMaxLength
	}
	if len(st.RecentHistory) > limit {
		st.RecentHistory = append([]bool{}, st.RecentHistory[len(st.RecentHistory)-limit:]...)
	}
}

// recordCorrection tracks whether corrections "stick": a perfect answer right
// after a wrong one counts as a successful correction.
func recordCorrection(st *ItemState, perfect bool) {
	if st.LastResultWasWrong && perfect {
		st.SuccessfulCorrections++
	}
	st.LastResultWasWrong = !perfect
}

func (r Rules) goal() int {
	if r.MasteryGoal <= 0 {
		return DefaultMasteryGoal
	}
	return r.MasteryGoal
}

func (r Rules) hardThreshold() int {
	if r.HardWordThreshold <= 0 {
		return DefaultHardWordThreshold
	}
	return r.HardWordThreshold
}
