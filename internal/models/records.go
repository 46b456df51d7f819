package models

import "time"

// Task is the record behind both the professor task list (/{id}/tasks) and
// the student submission list (/user/get-tasks/{github}). The backend reuses
// one shape for both, so optional fields stay pointers or zero values.
type Task struct {
	ID          int        `json:"id"`
	TaskID      int        `json:"taskId,omitempty"`
	Name        string     `json:"name,omitempty"`
	GithubLogin string     `json:"githubLogin,omitempty"`
	Link        string     `json:"link"`
	Branch      string     `json:"branch"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`

	Anomalies       []Anomaly   `json:"anomalies,omitempty"`
	HTMLCopyMatches []Copy      `json:"htmlCopyMatches,omitempty"`
	HTMLCopyChecks  []CopyCheck `json:"htmlCopyChecks,omitempty"`
}

type CopyCheck struct {
	ID      int  `json:"id,omitempty"`
	Enabled bool `json:"enabled"`
}

// TaskRef is the embedded task reference on anomaly and copy records.
type TaskRef struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
	Link string `json:"link,omitempty"`
}

// Anomaly is a flagged irregular commit pattern on a student submission.
type Anomaly struct {
	ID          int       `json:"id"`
	GithubLogin string    `json:"githubLogin"`
	CommitDate  time.Time `json:"commitDate"`
	Task        TaskRef   `json:"task"`
}

// Copy is a detected pairwise similarity between two submissions.
type Copy struct {
	ID                int       `json:"id"`
	GithubLogin1      string    `json:"githubLogin1"`
	GithubLogin2      string    `json:"githubLogin2"`
	Filename          string    `json:"filename"`
	SimilarityPercent float64   `json:"similarityPercent"`
	DetectedAt        time.Time `json:"detectedAt"`
	Task              TaskRef   `json:"task"`
}

// Test is an uploaded automated test definition.
type Test struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Filename    string    `json:"filename"`
	Tasks       []TaskRef `json:"tasks,omitempty"`
}

// Participant joins a student's github login to a task they submitted for.
type Participant struct {
	TaskID      int    `json:"taskId"`
	TaskName    string `json:"taskName"`
	GithubLogin string `json:"githubLogin"`
}

// TestResult is the structured per-file outcome of one test execution.
type TestResult struct {
	TestID      int    `json:"testId"`
	TaskID      int    `json:"taskId"`
	GithubLogin string `json:"githubLogin"`
	Branch      string `json:"branch"`
	Result      struct {
		Files []TestResultFile `json:"files"`
	} `json:"result"`
}

type TestResultFile struct {
	Filename string      `json:"filename"`
	Status   string      `json:"status"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
}

// ValidationReport is the markup-validation response for one submission.
type ValidationReport struct {
	GithubLogin  string             `json:"githubLogin,omitempty"`
	OverallValid bool               `json:"overallValid,omitempty"`
	Results      []ValidationResult `json:"results"`
}

type ValidationResult struct {
	File      string          `json:"file"`
	HTMLValid ValidationCheck `json:"htmlValid"`
	BEMValid  ValidationCheck `json:"bemValid"`
}

type ValidationCheck struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}
