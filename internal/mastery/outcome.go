package mastery

import "fmt"

// Outcome classifies a single quiz answer.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomePerfect
	// OutcomePartialWrongMarker is the right word with the wrong article.
	OutcomePartialWrongMarker
	// OutcomePartialMissingMarker is the right word with no article.
	OutcomePartialMissingMarker
	OutcomeMiss
)

var outcomeNames = map[Outcome]string{
	OutcomePerfect:              "PERFECT_MATCH",
	OutcomePartialWrongMarker:   "PARTIAL_MATCH_WRONG_ARTICLE",
	OutcomePartialMissingMarker: "PARTIAL_MATCH_MISSING_ARTICLE",
	OutcomeMiss:                 "NO_MATCH",
}

// ParseOutcome decodes a wire result type.
func ParseOutcome(s string) (Outcome, error) {
	for o, name := range outcomeNames {
		if name == s {
			return o, nil
		}
	}
	return OutcomeUnknown, fmt.Errorf("unknown result type %q", s)
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsPerfect reports a fully correct answer.
func (o Outcome) IsPerfect() bool { return o == OutcomePerfect }

// IsPartial reports a right word with a wrong or missing grammatical marker.
func (o Outcome) IsPartial() bool {
	return o == OutcomePartialWrongMarker || o == OutcomePartialMissingMarker
}

// IsMiss reports a completely wrong answer.
func (o Outcome) IsMiss() bool { return o == OutcomeMiss }
