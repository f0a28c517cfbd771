// Package report aggregates quiz outcomes into per-day and per-category
// counters. All daily sections are keyed by ISO date.
package report

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/abhisek/vokabel/internal/mastery"
	"github.com/abhisek/vokabel/internal/vocab"
)

// CategoryStats counts results for one grammatical category.
type CategoryStats struct {
	Right        int `json:"right"`
	Wrong        int `json:"wrong"`
	ArticleWrong int `json:"article_wrong,omitempty"`
}

// Report is the learner's performance document.
type Report struct {
	WordLearned            map[vocab.Level]map[vocab.ItemKey]string  `json:"word_learned"`
	DailySeen              map[string]map[vocab.Level][]vocab.ItemKey `json:"daily_seen_words"`
	DailyWrong             map[string]map[vocab.ItemKey]int          `json:"daily_wrong_counts"`
	DailyArticleWrong      map[string]map[vocab.ItemKey]int          `json:"daily_article_wrong_counts"`
	DailyLevelCorrect      map[string]map[vocab.Level]int            `json:"daily_level_correct_counts"`
	DailyLevelWrong        map[string]map[vocab.Level]int            `json:"daily_level_wrong_counts"`
	DailyLevelArticleWrong map[string]map[vocab.Level]int            `json:"daily_level_article_wrong_counts"`
	CategoryPerformance    map[string]*CategoryStats                 `json:"category_performance"`
}

// New returns an empty report with a learned-items section per level.
func New(levels []vocab.Level) *Report {
	r := &Report{}
	r.Normalize(levels)
	return r
}

// Normalize fills in any section missing from a decoded document.
func (r *Report) Normalize(levels []vocab.Level) {
	if r.WordLearned == nil {
		r.WordLearned = make(map[vocab.Level]map[vocab.ItemKey]string)
	}
	for _, l := range levels {
		if r.WordLearned[l] == nil {
			r.WordLearned[l] = make(map[vocab.ItemKey]string)
		}
	}
	if r.DailySeen == nil {
		r.DailySeen = make(map[string]map[vocab.Level][]vocab.ItemKey)
	}
	if r.DailyWrong == nil {
		r.DailyWrong = make(map[string]map[vocab.ItemKey]int)
	}
	if r.DailyArticleWrong == nil {
		r.DailyArticleWrong = make(map[string]map[vocab.ItemKey]int)
	}
	if r.DailyLevelCorrect == nil {
		r.DailyLevelCorrect = make(map[string]map[vocab.Level]int)
	}
	if r.DailyLevelWrong == nil {
		r.DailyLevelWrong = make(map[string]map[vocab.Level]int)
	}
	if r.DailyLevelArticleWrong == nil {
		r.DailyLevelArticleWrong = make(map[string]map[vocab.Level]int)
	}
	if r.CategoryPerformance == nil {
		r.CategoryPerformance = make(map[string]*CategoryStats)
	}
}

// Record rolls one outcome for item into today's counters.
func (r *Report) Record(today time.Time, item vocab.Item, outcome mastery.Outcome) {
	r.Normalize(nil)
	date := mastery.DateString(today)
	key, lvl := item.Key(), item.Level

	seen := day(r.DailySeen, date)
	if !lo.Contains(seen[lvl], key) {
		seen[lvl] = append(seen[lvl], key)
	}

	var cat *CategoryStats
	if item.Type != "" {
		cat = r.CategoryPerformance[item.Type]
		if cat == nil {
			cat = &CategoryStats{}
			r.CategoryPerformance[item.Type] = cat
		}
	}

	switch {
	case outcome.IsPerfect():
		day(r.DailyLevelCorrect, date)[lvl]++
		if cat != nil {
			cat.Right++
		}
	case outcome == mastery.OutcomePartialWrongMarker:
		day(r.DailyLevelArticleWrong, date)[lvl]++
		day(r.DailyArticleWrong, date)[key]++
		if cat != nil && item.IsNoun() {
			cat.ArticleWrong++
		}
	default:
		day(r.DailyLevelWrong, date)[lvl]++
		if cat != nil {
			cat.Wrong++
		}
		if outcome.IsMiss() {
			day(r.DailyWrong, date)[key]++
		}
	}
}

// MarkLearned records the first day key reached its mastery goal. Later
// calls keep the original date.
func (r *Report) MarkLearned(lvl vocab.Level, key vocab.ItemKey, today time.Time) {
	r.Normalize([]vocab.Level{lvl})
	if _, ok := r.WordLearned[lvl][key]; ok {
		return
	}
	r.WordLearned[lvl][key] = mastery.DateString(today)
}

// SeenToday returns a copy of the items quizzed today, by level.
func (r *Report) SeenToday(today time.Time) map[vocab.Level][]vocab.ItemKey {
	out := make(map[vocab.Level][]vocab.ItemKey)
	for lvl, keys := range r.DailySeen[mastery.DateString(today)] {
		out[lvl] = append([]vocab.ItemKey(nil), keys...)
	}
	return out
}

// PracticedToday counts the distinct items quizzed today across levels.
func (r *Report) PracticedToday(today time.Time) int {
	n := 0
	for _, keys := range r.DailySeen[mastery.DateString(today)] {
		n += len(keys)
	}
	return n
}

// WrongToday returns how often key was missed outright today.
func (r *Report) WrongToday(today time.Time, key vocab.ItemKey) int {
	return r.DailyWrong[mastery.DateString(today)][key]
}

// Accuracy is one day's result counts by level.
type Accuracy struct {
	Correct      map[vocab.Level]int `json:"correct_by_level"`
	Wrong        map[vocab.Level]int `json:"wrong_by_level"`
	ArticleWrong map[vocab.Level]int `json:"article_wrong_by_level"`
}

// TodayAccuracy returns today's correct and wrong counts by level.
func (r *Report) TodayAccuracy(today time.Time) Accuracy {
	date := mastery.DateString(today)
	return Accuracy{
		Correct:      lo.Assign(r.DailyLevelCorrect[date]),
		Wrong:        lo.Assign(r.DailyLevelWrong[date]),
		ArticleWrong: lo.Assign(r.DailyLevelArticleWrong[date]),
	}
}

// LearnedCount returns how many items of each level have been learned.
func (r *Report) LearnedCount() map[vocab.Level]int {
	out := make(map[vocab.Level]int, len(r.WordLearned))
	for lvl, keys := range r.WordLearned {
		out[lvl] = len(keys)
	}
	return out
}

// Categories returns the category names in sorted order.
func (r *Report) Categories() []string {
	names := lo.Keys(r.CategoryPerformance)
	sort.Strings(names)
	return names
}

func day[K comparable, V any](m map[string]map[K]V, date string) map[K]V {
	d := m[date]
	if d == nil {
		d = make(map[K]V)
		m[date] = d
	}
	return d
}
