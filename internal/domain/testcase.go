package domain

import "bytes"

// TestCase represents an author-written fixture for a coding question.
//
// Expected output may live under the legacy "output" key and hidden cases are
// flagged by any of three conventions, so both are read through methods.
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput,omitempty"`
	Output         string `json:"output,omitempty"`
	Hidden         Flag   `json:"hidden,omitempty"`
	HiddenFlag     Flag   `json:"isHidden,omitempty"`
	Visibility     string `json:"visibility,omitempty"`
}

const VisibilityHidden = "hidden"

// Flag is a boolean that tolerates whatever authors stored under the key.
// Only a literal JSON true sets it; strings, numbers and null read as false.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	*f = Flag(bytes.Equal(bytes.TrimSpace(data), []byte("true")))
	return nil
}

// Expected returns the first non-empty of expectedOutput and output.
func (tc TestCase) Expected() string {
	if tc.ExpectedOutput != "" {
		return tc.ExpectedOutput
	}
	return tc.Output
}

// IsHidden reports whether the case is withheld from the learner.
func (tc TestCase) IsHidden() bool {
	return bool(tc.Hidden) || bool(tc.HiddenFlag) || tc.Visibility == VisibilityHidden
}

// CodingQuestion is one problem of a coding assignment.
type CodingQuestion struct {
	Question    string     `json:"question"`
	Description string     `json:"description,omitempty"`
	TestCases   []TestCase `json:"testCases"`
}
