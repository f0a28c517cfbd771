package vocab

import (
	"errors"
	"strings"
)

// Level is a proficiency tier such as "a1".
type Level string

// MixScope selects the union of all configured levels.
const MixScope = "mix"

// ErrInvalidScope is returned when a scope names neither a known level nor "mix".
var ErrInvalidScope = errors.New("invalid scope")

// NormalizeLevel lower-cases and trims a level name.
func NormalizeLevel(s string) Level {
	return Level(strings.ToLower(strings.TrimSpace(s)))
}

// Scope is a resolved selection scope: the levels it covers.
type Scope struct {
	Name   string
	Levels []Level
}

// IsMix reports whether the scope spans all levels.
func (s Scope) IsMix() bool {
	return s.Name == MixScope
}

// Includes reports whether lvl is part of the scope.
func (s Scope) Includes(lvl Level) bool {
	for _, l := range s.Levels {
		if l == lvl {
			return true
		}
	}
	return false
}

// ResolveScope maps a scope name to the levels it covers, given the configured levels.
func ResolveScope(name string, known []Level) (Scope, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Scope{}, ErrInvalidScope
	}
	if name == MixScope {
		levels := make([]Level, len(known))
		copy(levels, known)
		return Scope{Name: MixScope, Levels: levels}, nil
	}
	for _, l := range known {
		if Level(name) == l {
			return Scope{Name: name, Levels: []Level{l}}, nil
		}
	}
	return Scope{}, ErrInvalidScope
}

// Direction is the quiz prompt direction.
type Direction string

const (
	WordToMeaning Direction = "wordToMeaning"
	MeaningToWord Direction = "meaningToWord"
)
