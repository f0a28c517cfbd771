package vocab

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var (
	parenthetical = regexp.MustCompile(`\s*\(.*?\)\s*`)
	articles      = []string{"der", "die", "das"}
)

// NormalizeAnswer folds an answer for comparison: trimmed, lower-cased,
// with "ß" spelled "ss" and a leading article removed.
func NormalizeAnswer(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "ß", "ss")
	return stripArticle(s)
}

func stripArticle(s string) string {
	head, rest, ok := strings.Cut(s, " ")
	if ok && lo.Contains(articles, head) {
		return strings.TrimSpace(rest)
	}
	return s
}

// AnswerForms returns the normalized answers that count as correct for the
// item when quizzed in the given direction.
func (it Item) AnswerForms(dir Direction) []string {
	var forms []string
	switch dir {
	case WordToMeaning:
		meaning := strings.TrimSpace(it.Meaning)
		forms = append(forms, meaning, parenthetical.ReplaceAllString(meaning, " "))
		for _, part := range splitParts(meaning) {
			forms = append(forms, part, parenthetical.ReplaceAllString(part, " "))
		}
	default:
		word := strings.TrimSpace(it.Word)
		forms = append(forms, word)
		forms = append(forms, splitParts(word)...)
	}

	normalized := lo.Map(forms, func(f string, _ int) string { return NormalizeAnswer(f) })
	return lo.Uniq(lo.Compact(normalized))
}

func splitParts(s string) []string {
	parts := strings.Split(s, ";")
	if len(parts) < 2 {
		return nil
	}
	return lo.Compact(lo.Map(parts, func(p string, _ int) string { return strings.TrimSpace(p) }))
}
