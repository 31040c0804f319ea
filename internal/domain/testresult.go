package domain

// TestResult is the outcome of running one TestCase against one solution.
type TestResult struct {
	Input          string `json:"input"`
	DisplayInput   string `json:"displayInput"`
	ExpectedOutput string `json:"expectedOutput"`
	ActualOutput   string `json:"actualOutput"`
	Stderr         string `json:"stderr,omitempty"`
	Error          string `json:"error,omitempty"`
	Passed         bool   `json:"passed"`
}

// TestSummary counts passing cases. 0 <= PassCount <= TotalCount.
type TestSummary struct {
	PassCount  int `json:"passCount" db:"pass_count"`
	TotalCount int `json:"totalCount" db:"total_count"`
}

// RunReport is what the runner hands back for one batch.
type RunReport struct {
	Results []TestResult `json:"results"`
	Summary TestSummary  `json:"summary"`
	// HadError is set when any case wrote to stderr.
	HadError bool `json:"hadError"`
}

// HiddenRunReport is the pre-submit check result.
type HiddenRunReport struct {
	RunReport
	UsedFallback bool   `json:"usedFallback"`
	Label        string `json:"label"`
}

// ExecutionRequest is the payload sent to the execution service.
type ExecutionRequest struct {
	Language string `json:"language"`
	Source   string `json:"source"`
	Stdin    string `json:"stdin"`
}

// ExecutionOutput is what the execution service returns on success.
type ExecutionOutput struct {
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	CompileOutput string `json:"compile_output,omitempty"`
}
