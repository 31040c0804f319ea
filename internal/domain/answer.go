package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// AnswerKind tells whether an answer was given as a bare index or as a set.
type AnswerKind int

const (
	AnswerSingle AnswerKind = iota + 1
	AnswerSet
)

// Answer is a selected option index or set of indices. Older documents store a
// bare number, newer ones an array; both decode into this type and callers only
// ever look at Indices.
type Answer struct {
	kind    AnswerKind
	indices []int
}

func SingleAnswer(index int) Answer {
	return Answer{kind: AnswerSingle, indices: []int{index}}
}

func SetAnswer(indices ...int) Answer {
	cp := make([]int, len(indices))
	copy(cp, indices)
	return Answer{kind: AnswerSet, indices: cp}
}

// Indices returns the selection sorted ascending with duplicates removed.
func (a Answer) Indices() []int {
	out := make([]int, len(a.indices))
	copy(out, a.indices)
	sort.Ints(out)

	uniq := out[:0]
	for i, v := range out {
		if i > 0 && v == out[i-1] {
			continue
		}
		uniq = append(uniq, v)
	}
	return uniq
}

// Equal compares two answers as sets.
func (a Answer) Equal(other Answer) bool {
	x, y := a.Indices(), other.Indices()
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.kind == AnswerSingle && len(a.indices) == 1 {
		return json.Marshal(a.indices[0])
	}
	if a.indices == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a.indices)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = SetAnswer()
		return nil
	}

	if data[0] == '[' {
		var indices []int
		if err := json.Unmarshal(data, &indices); err != nil {
			return fmt.Errorf("invalid answer set: %w", err)
		}
		*a = SetAnswer(indices...)
		return nil
	}

	var index int
	if err := json.Unmarshal(data, &index); err != nil {
		return fmt.Errorf("invalid answer index: %w", err)
	}
	*a = SingleAnswer(index)
	return nil
}

// MCQQuestion is one multiple-choice item.
type MCQQuestion struct {
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	CorrectAnswers []int    `json:"correctAnswers,omitempty"`
	// CorrectAnswer is the legacy single-index key.
	CorrectAnswer *int `json:"correctAnswer,omitempty"`
}

// AnswerKey returns the correct selection. ok is false when the question
// carries no key at all, in which case no answer can be correct.
func (q MCQQuestion) AnswerKey() (key Answer, ok bool) {
	if q.CorrectAnswers != nil {
		return SetAnswer(q.CorrectAnswers...), true
	}
	if q.CorrectAnswer != nil {
		return SingleAnswer(*q.CorrectAnswer), true
	}
	return Answer{}, false
}
