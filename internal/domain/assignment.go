package domain

import (
	"encoding/json"
	"fmt"
)

// AssignmentType selects how questions are decoded and graded.
type AssignmentType string

const (
	AssignmentTypeMCQ    AssignmentType = "mcq"
	AssignmentTypeCoding AssignmentType = "coding"
)

// Assignment is a graded unit of a course. Only the question list matching
// Type is populated.
type Assignment struct {
	ID              string           `db:"id"`
	CourseID        string           `db:"course_id"`
	Title           string           `db:"title"`
	Type            AssignmentType   `db:"type"`
	Day             int              `db:"day"`
	DueDate         *string          `db:"due_date"`
	MCQQuestions    []MCQQuestion    `db:"-"`
	CodingQuestions []CodingQuestion `db:"-"`
}

type assignmentJSON struct {
	ID        string          `json:"id"`
	CourseID  string          `json:"courseId"`
	Title     string          `json:"title"`
	Type      AssignmentType  `json:"type"`
	Day       int             `json:"day"`
	DueDate   *string         `json:"dueDate,omitempty"`
	Questions json.RawMessage `json:"questions"`
}

// TestCases flattens the test cases of every coding question, in order.
func (a *Assignment) TestCases() []TestCase {
	all := make([]TestCase, 0)
	for _, q := range a.CodingQuestions {
		all = append(all, q.TestCases...)
	}
	return all
}

// QuestionsJSON encodes the question list for the active type.
func (a *Assignment) QuestionsJSON() ([]byte, error) {
	switch a.Type {
	case AssignmentTypeMCQ:
		if a.MCQQuestions == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.MCQQuestions)
	case AssignmentTypeCoding:
		if a.CodingQuestions == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.CodingQuestions)
	default:
		return nil, fmt.Errorf("unknown assignment type %q", a.Type)
	}
}

// SetQuestionsJSON decodes raw into the question list for the active type.
func (a *Assignment) SetQuestionsJSON(raw []byte) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	switch a.Type {
	case AssignmentTypeMCQ:
		return json.Unmarshal(raw, &a.MCQQuestions)
	case AssignmentTypeCoding:
		return json.Unmarshal(raw, &a.CodingQuestions)
	default:
		return fmt.Errorf("unknown assignment type %q", a.Type)
	}
}

func (a Assignment) MarshalJSON() ([]byte, error) {
	questions, err := a.QuestionsJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(assignmentJSON{
		ID:        a.ID,
		CourseID:  a.CourseID,
		Title:     a.Title,
		Type:      a.Type,
		Day:       a.Day,
		DueDate:   a.DueDate,
		Questions: questions,
	})
}

func (a *Assignment) UnmarshalJSON(data []byte) error {
	var raw assignmentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Assignment{
		ID:       raw.ID,
		CourseID: raw.CourseID,
		Title:    raw.Title,
		Type:     raw.Type,
		Day:      raw.Day,
		DueDate:  raw.DueDate,
	}
	return a.SetQuestionsJSON(raw.Questions)
}
