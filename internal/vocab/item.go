package vocab

import (
	"fmt"
	"strings"
)

// CategoryNoun is the grammatical category used by the catalog for nouns.
const CategoryNoun = "Nomen"

// ItemKey identifies a learnable item: one meaning of one word.
type ItemKey struct {
	Word    string
	Meaning string
}

// String returns the wire form "word#meaning".
func (k ItemKey) String() string {
	return k.Word + "#" + k.Meaning
}

// IsZero reports whether the key has no word.
func (k ItemKey) IsZero() bool {
	return k.Word == ""
}

// MarshalText implements encoding.TextMarshaler so keys can be used as JSON map keys.
func (k ItemKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ItemKey) UnmarshalText(b []byte) error {
	parsed, err := ParseItemKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseItemKey splits "word#meaning" on the first '#'.
func ParseItemKey(s string) (ItemKey, error) {
	word, meaning, ok := strings.Cut(s, "#")
	if !ok || strings.TrimSpace(word) == "" {
		return ItemKey{}, fmt.Errorf("invalid item key %q", s)
	}
	return ItemKey{Word: word, Meaning: meaning}, nil
}

// Item is a single catalog entry. Items are produced by the content pipeline
// and are read-only to the scheduler.
type Item struct {
	Word     string   `json:"word"`
	Meaning  string   `json:"meaning"`
	Type     string   `json:"type"`
	Level    Level    `json:"level"`
	Article  string   `json:"article,omitempty"`
	Plural   string   `json:"plural,omitempty"`
	Examples []string `json:"examples,omitempty"`
}

// Key returns the item's identity.
func (it Item) Key() ItemKey {
	return ItemKey{Word: it.Word, Meaning: it.Meaning}
}

// IsNoun reports whether the item belongs to the noun category.
func (it Item) IsNoun() bool {
	return it.Type == CategoryNoun
}
