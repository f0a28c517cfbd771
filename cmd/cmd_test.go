package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vokabel/internal/session"
)

type env struct {
	db      string
	catalog string
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	catDir := filepath.Join(dir, "output")
	require.NoError(t, os.MkdirAll(catDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(catDir, "output_a1.json"), []byte(`{
		"1": [{"word": "Haus", "meaning": "house", "type": "Nomen", "article": "das", "level": "a1"}],
		"2": [{"word": "gehen", "meaning": "to go", "type": "Verb", "level": "a1"}]
	}`), 0o644))
	return env{db: filepath.Join(dir, "vokabel.db"), catalog: catDir}
}

func (e env) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--db", e.db, "--catalog-dir", e.catalog, "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestQuizAnswerStatsFlow(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "", "quiz", "a1", "--size", "5")
	require.NoError(t, err)
	var quiz session.Quiz
	require.NoError(t, json.Unmarshal([]byte(out), &quiz))
	assert.Len(t, quiz.Items, 2)
	assert.Equal(t, 2, quiz.Info.TotalCatalogSize)

	out, err = e.run(t, `[
		{"item_key": "Haus#house", "result_type": "PERFECT_MATCH", "direction": "wordToMeaning", "user_answer": "house"},
		{"item_key": "gehen#to go", "result_type": "NO_MATCH", "direction": "wordToMeaning", "user_answer": "run"}
	]`, "answer")
	require.NoError(t, err)
	var summary session.UpdateSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 2, summary.UpdatedCount)

	out, err = e.run(t, "", "stats", "a1", "gehen#to go", "--json")
	require.NoError(t, err)
	var found []session.ItemStats
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	require.Len(t, found, 1)
	assert.Equal(t, 1, found[0].State.Wrong)

	out, err = e.run(t, "", "stats", "a1", "gehen#to go", "--json=false", "--explain", "--history", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "gehen#to go")
	assert.Contains(t, out, "first-miss")

	out, err = e.run(t, "", "report", "today", "--json")
	require.NoError(t, err)
	var sum session.DailySummary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, 2, sum.PracticedToday)
	assert.Equal(t, 1, sum.Accuracy.Correct["a1"])
	assert.Equal(t, 1, sum.Accuracy.Wrong["a1"])
}

func TestStarCommand(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "", "star", "Haus#house")
	require.NoError(t, err)
	assert.Contains(t, out, `"is_starred": true`)

	_, err = e.run(t, "", "star", "Boot#boat")
	assert.Error(t, err)
}

func TestCatalogValidateCommand(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "", "catalog", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found.")

	require.NoError(t, os.WriteFile(filepath.Join(e.catalog, "output_a2.json"),
		[]byte(`{"1": [{"word": "Zug", "meaning": "train", "level": "a1"}]}`), 0o644))
	out, err = e.run(t, "", "catalog", "validate")
	assert.ErrorIs(t, err, errCatalogInvalid)
	assert.Contains(t, out, "--fix")
}

func TestQuizRejectsUnknownScope(t *testing.T) {
	e := newEnv(t)

	_, err := e.run(t, "", "quiz", "z9")
	assert.ErrorIs(t, err, session.ErrInvalidScope)
}
