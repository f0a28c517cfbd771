// Package catalog reads the per-level vocabulary files produced by the
// content pipeline.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abhisek/vokabel/internal/vocab"
)

// FileName returns the catalog file name for a level, e.g. "output_a1.json".
func FileName(level vocab.Level) string {
	return "output_" + string(level) + ".json"
}

// Dir is a catalog stored as one JSON file per level inside a directory.
type Dir struct {
	Path string
}

// NewDir returns a catalog rooted at path.
func NewDir(path string) *Dir {
	return &Dir{Path: path}
}

// Load reads the level's file and groups its meanings by base word.
// A level without a file has no items.
func (d *Dir) Load(ctx context.Context, level vocab.Level) (map[string][]vocab.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(filepath.Join(d.Path, FileName(level)))
	if errors.Is(err, fs.ErrNotExist) {
		return map[string][]vocab.Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", level, err)
	}
	entries, err := decodeEntries(raw)
	if err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", level, err)
	}
	return groupByWord(entries), nil
}

// decodeEntries parses a level file: an object mapping entry IDs to either
// an array of meanings or a single meaning object.
func decodeEntries(raw []byte) (map[string][]vocab.Item, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	out := make(map[string][]vocab.Item, len(doc))
	for id, entry := range doc {
		entry = bytes.TrimSpace(entry)
		if len(entry) == 0 {
			continue
		}
		var meanings []vocab.Item
		if entry[0] == '{' {
			var single vocab.Item
			if err := json.Unmarshal(entry, &single); err != nil {
				return nil, fmt.Errorf("entry %s: %w", id, err)
			}
			meanings = []vocab.Item{single}
		} else if err := json.Unmarshal(entry, &meanings); err != nil {
			return nil, fmt.Errorf("entry %s: %w", id, err)
		}
		out[id] = meanings
	}
	return out, nil
}

// groupByWord keys entries by the word of their first meaning. Entries are
// visited in ID order so a word split over several entries keeps a stable
// meaning order.
func groupByWord(entries map[string][]vocab.Item) map[string][]vocab.Item {
	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	words := make(map[string][]vocab.Item)
	for _, id := range ids {
		meanings := entries[id]
		if len(meanings) == 0 {
			continue
		}
		base := strings.TrimSpace(meanings[0].Word)
		if base == "" {
			continue
		}
		for _, m := range meanings {
			if strings.TrimSpace(m.Word) == "" {
				m.Word = base
			}
			words[base] = append(words[base], m)
		}
	}
	return words
}
