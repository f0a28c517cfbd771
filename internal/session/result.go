package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/abhisek/vokabel/internal/mastery"
	"github.com/abhisek/vokabel/internal/vocab"
)

// RawResult is a quiz result as submitted by a client. Older clients send
// the item key in the "word" field.
type RawResult struct {
	ItemKey    string `json:"item_key,omitempty"`
	Word       string `json:"word,omitempty"`
	ResultType string `json:"result_type"`
	Direction  string `json:"direction,omitempty"`
	UserAnswer string `json:"user_answer,omitempty"`
}

// Result is a decoded quiz result.
type Result struct {
	Key        vocab.ItemKey
	Outcome    mastery.Outcome
	Direction  vocab.Direction
	UserAnswer string
}

var errMissingKey = errors.New("missing item key")

// Decode validates r and converts it to a Result.
func (r RawResult) Decode() (Result, error) {
	raw := r.ItemKey
	if raw == "" {
		raw = r.Word
	}
	if raw == "" {
		return Result{}, errMissingKey
	}
	key, err := vocab.ParseItemKey(raw)
	if err != nil {
		return Result{}, err
	}
	outcome, err := mastery.ParseOutcome(r.ResultType)
	if err != nil {
		return Result{}, err
	}

	res := Result{Key: key, Outcome: outcome, UserAnswer: r.UserAnswer}
	switch d := vocab.Direction(r.Direction); d {
	case vocab.WordToMeaning, vocab.MeaningToWord:
		res.Direction = d
	}
	return res, nil
}

// DecodeResults reads a result batch, either a bare JSON array or an object
// with a "results" array.
func DecodeResults(r io.Reader) ([]RawResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '[' {
		var results []RawResult
		if err := json.Unmarshal(data, &results); err != nil {
			return nil, fmt.Errorf("decode results: %w", err)
		}
		return results, nil
	}

	var envelope struct {
		Results []RawResult `json:"results"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return envelope.Results, nil
}
