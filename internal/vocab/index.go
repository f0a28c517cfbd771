package vocab

import (
	"context"
	"fmt"
	"sort"
)

// Catalog loads the immutable item catalog for one level, keyed by base word.
type Catalog interface {
	Load(ctx context.Context, level Level) (map[string][]Item, error)
}

// Index is a read-through view of the catalog built once per process. It is
// never mutated after construction and is safe for concurrent readers.
type Index struct {
	levels      []Level
	items       map[ItemKey]Item
	order       []ItemKey
	wordForms   map[string][]ItemKey
	meaningForm map[string][]ItemKey
}

// BuildIndex loads every level from the catalog and indexes its items.
// An item's level comes from its own metadata, falling back to the level it
// was loaded under.
func BuildIndex(ctx context.Context, cat Catalog, levels []Level) (*Index, error) {
	data := make(map[Level]map[string][]Item, len(levels))
	for _, lvl := range levels {
		words, err := cat.Load(ctx, lvl)
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", lvl, err)
		}
		data[lvl] = words
	}
	return NewIndex(levels, data), nil
}

// NewIndex indexes already-loaded catalog data.
func NewIndex(levels []Level, data map[Level]map[string][]Item) *Index {
	idx := &Index{
		levels:      append([]Level(nil), levels...),
		items:       make(map[ItemKey]Item),
		wordForms:   make(map[string][]ItemKey),
		meaningForm: make(map[string][]ItemKey),
	}

	for _, lvl := range levels {
		words := data[lvl]
		baseWords := make([]string, 0, len(words))
		for w := range words {
			baseWords = append(baseWords, w)
		}
		sort.Strings(baseWords)

		for _, base := range baseWords {
			for _, it := range words[base] {
				if it.Word == "" {
					it.Word = base
				}
				it.Level = NormalizeLevel(string(it.Level))
				if it.Level == "" {
					it.Level = lvl
				}
				key := it.Key()
				if _, dup := idx.items[key]; dup {
					continue
				}
				idx.items[key] = it
				idx.order = append(idx.order, key)
				for _, f := range it.AnswerForms(MeaningToWord) {
					idx.wordForms[f] = append(idx.wordForms[f], key)
				}
				for _, f := range it.AnswerForms(WordToMeaning) {
					idx.meaningForm[f] = append(idx.meaningForm[f], key)
				}
			}
		}
	}
	return idx
}

// Levels returns the configured levels in order.
func (x *Index) Levels() []Level {
	return append([]Level(nil), x.levels...)
}

// Item returns the catalog entry for key.
func (x *Index) Item(key ItemKey) (Item, bool) {
	it, ok := x.items[key]
	return it, ok
}

// LevelOf resolves the level of key. It fails for unknown items and for
// items whose level is not one of the configured levels.
func (x *Index) LevelOf(key ItemKey) (Level, bool) {
	it, ok := x.items[key]
	if !ok {
		return "", false
	}
	for _, l := range x.levels {
		if l == it.Level {
			return l, true
		}
	}
	return "", false
}

// Items returns the items in scope, in catalog order.
func (x *Index) Items(scope Scope) []Item {
	var out []Item
	for _, key := range x.order {
		it := x.items[key]
		if scope.Includes(it.Level) {
			out = append(out, it)
		}
	}
	return out
}

// Size returns the number of items in scope.
func (x *Index) Size(scope Scope) int {
	n := 0
	for _, it := range x.items {
		if scope.Includes(it.Level) {
			n++
		}
	}
	return n
}

// MatchAnswer returns the items for which answer is a correct response in
// the given direction.
func (x *Index) MatchAnswer(answer string, dir Direction) []ItemKey {
	norm := NormalizeAnswer(answer)
	if norm == "" {
		return nil
	}
	if dir == WordToMeaning {
		return x.meaningForm[norm]
	}
	return x.wordForms[norm]
}
