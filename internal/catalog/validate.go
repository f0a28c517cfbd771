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
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/vokabel/internal/vocab"
)

// IssueKind classifies a catalog problem.
type IssueKind string

const (
	IssueMalformed    IssueKind = "malformed"
	IssueInvalidLevel IssueKind = "invalid-level"
	IssueMisplaced    IssueKind = "misplaced"
)

// Issue is one problem found in a level file.
type Issue struct {
	File   vocab.Level `json:"file"`
	ID     string      `json:"id"`
	Word   string      `json:"word,omitempty"`
	Kind   IssueKind   `json:"kind"`
	Target vocab.Level `json:"target,omitempty"`
	Detail string      `json:"detail,omitempty"`
}

func (i Issue) String() string {
	switch i.Kind {
	case IssueMisplaced:
		return fmt.Sprintf("%s #%s %q belongs in %s", i.File, i.ID, i.Word, i.Target)
	case IssueInvalidLevel:
		return fmt.Sprintf("%s #%s %q has invalid level %q", i.File, i.ID, i.Word, i.Target)
	default:
		return fmt.Sprintf("%s #%s: %s", i.File, i.ID, i.Detail)
	}
}

// Validation is the outcome of checking every level file.
type Validation struct {
	Entries map[vocab.Level]int `json:"entries"`
	Issues  []Issue             `json:"issues"`
}

// OK reports whether no issues were found.
func (v Validation) OK() bool {
	return len(v.Issues) == 0
}

// Misplaced returns the issues that Fix can repair.
func (v Validation) Misplaced() []Issue {
	return lo.Filter(v.Issues, func(i Issue, _ int) bool { return i.Kind == IssueMisplaced })
}

type rawEntry struct {
	id    string
	raw   json.RawMessage
	word  string
	level vocab.Level
}

// Validate checks each level file against the entry schema and reports
// entries whose own level is unknown or differs from the file they live in.
// Missing files are treated as empty.
func (d *Dir) Validate(ctx context.Context, levels []vocab.Level) (Validation, error) {
	v := Validation{Entries: make(map[vocab.Level]int, len(levels))}
	for _, lvl := range levels {
		if err := ctx.Err(); err != nil {
			return Validation{}, err
		}
		entries, err := d.readRaw(lvl)
		if err != nil {
			return Validation{}, err
		}
		v.Entries[lvl] = len(entries)
		for _, e := range entries {
			if issue, bad := checkEntry(lvl, e, levels); bad {
				v.Issues = append(v.Issues, issue)
			}
		}
	}
	return v, nil
}

func checkEntry(file vocab.Level, e rawEntry, levels []vocab.Level) (Issue, bool) {
	issue := Issue{File: file, ID: e.id, Word: e.word}
	if err := validateEntry(e.raw); err != nil {
		issue.Kind = IssueMalformed
		issue.Detail = err.Error()
		return issue, true
	}
	if !lo.Contains(levels, e.level) {
		issue.Kind = IssueInvalidLevel
		issue.Target = e.level
		return issue, true
	}
	if e.level != file {
		issue.Kind = IssueMisplaced
		issue.Target = e.level
		return issue, true
	}
	return Issue{}, false
}

// Fix moves misplaced entries into the file of their own level and
// re-numbers every file it touched, ordering entries by word. Malformed
// entries and entries with an unknown level are left where they are.
// It returns the number of entries moved.
func (d *Dir) Fix(ctx context.Context, levels []vocab.Level) (int, error) {
	files := make(map[vocab.Level][]rawEntry, len(levels))
	for _, lvl := range levels {
		entries, err := d.readRaw(lvl)
		if err != nil {
			return 0, err
		}
		files[lvl] = entries
	}

	moved := 0
	touched := make(map[vocab.Level]bool)
	for _, lvl := range levels {
		kept := files[lvl][:0]
		for _, e := range files[lvl] {
			issue, bad := checkEntry(lvl, e, levels)
			if !bad || issue.Kind != IssueMisplaced {
				kept = append(kept, e)
				continue
			}
			files[e.level] = append(files[e.level], e)
			touched[lvl], touched[e.level] = true, true
			moved++
		}
		files[lvl] = kept
	}

	for _, lvl := range lo.Keys(touched) {
		if err := ctx.Err(); err != nil {
			return moved, err
		}
		if err := d.writeRaw(lvl, files[lvl]); err != nil {
			return moved, err
		}
	}
	return moved, nil
}

// readRaw loads a level file keeping each entry's raw bytes. Entries come
// back in numeric ID order.
func (d *Dir) readRaw(level vocab.Level) ([]rawEntry, error) {
	data, err := os.ReadFile(filepath.Join(d.Path, FileName(level)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", level, err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", level, err)
	}

	entries := make([]rawEntry, 0, len(doc))
	for id, raw := range doc {
		e := rawEntry{id: id, raw: raw}
		e.word, e.level = entryHead(raw)
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return idLess(entries[i].id, entries[j].id) })
	return entries, nil
}

// entryHead extracts the word and level of an entry's first meaning.
func entryHead(raw json.RawMessage) (string, vocab.Level) {
	var head struct {
		Word  string `json:"word"`
		Level string `json:"level"`
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var list []json.RawMessage
		if json.Unmarshal(raw, &list) != nil || len(list) == 0 {
			return "", ""
		}
		raw = list[0]
	}
	if json.Unmarshal(raw, &head) != nil {
		return "", ""
	}
	return strings.TrimSpace(head.Word), vocab.NormalizeLevel(head.Level)
}

func (d *Dir) writeRaw(level vocab.Level, entries []rawEntry) error {
	sorted := append([]rawEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].word < sorted[j].word })

	doc := make(map[string]json.RawMessage, len(sorted))
	for i, e := range sorted {
		doc[strconv.Itoa(i+1)] = e.raw
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode catalog %s: %w", level, err)
	}

	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}
	path := filepath.Join(d.Path, FileName(level))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write catalog %s: %w", level, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace catalog %s: %w", level, err)
	}
	return nil
}

// idLess orders numeric IDs numerically and everything else after them.
func idLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
