package roster

import (
	"fmt"
	"strings"
)

type IssueKind string

const (
	IssueMissingField        IssueKind = "missing_field"
	IssueInvalidType         IssueKind = "invalid_type"
	IssuePersistence         IssueKind = "persistence_failure"
	IssueMissingAccountEmail IssueKind = "missing_account_email"
)

const unknownRollNo = "Unknown"

// RowIssue is a problem found on a single data line. Only
// IssueMissingAccountEmail leaves the row counted as a success.
type RowIssue struct {
	Line   int
	RollNo string
	Kind   IssueKind
	Fields []string
	Cause  error
}

func (i RowIssue) Skipped() bool {
	return i.Kind != IssueMissingAccountEmail
}

func (i RowIssue) Error() string {
	rollNo := i.RollNo
	if rollNo == "" {
		rollNo = unknownRollNo
	}
	prefix := fmt.Sprintf("Row %d (%s)", i.Line, rollNo)

	switch i.Kind {
	case IssueMissingField:
		return fmt.Sprintf("%s: missing required fields: %s", prefix, strings.Join(i.Fields, ", "))
	case IssueInvalidType:
		return fmt.Sprintf("%s: invalid number for %s", prefix, strings.Join(i.Fields, ", "))
	case IssuePersistence:
		return fmt.Sprintf("%s: failed to save: %v", prefix, i.Cause)
	case IssueMissingAccountEmail:
		return fmt.Sprintf("%s: no email provided, student saved without a user account", prefix)
	default:
		return fmt.Sprintf("%s: %v", prefix, i.Cause)
	}
}

func (i RowIssue) Unwrap() error {
	switch i.Kind {
	case IssueMissingField:
		return ErrMissingField
	case IssueInvalidType:
		return ErrInvalidType
	case IssuePersistence:
		return ErrPersistence
	case IssueMissingAccountEmail:
		return ErrMissingAccountEmail
	default:
		return i.Cause
	}
}

// IngestionResult reports one ingestion run. It is never persisted.
type IngestionResult struct {
	SuccessCount int
	FailedCount  int
	Issues       []RowIssue
}

func (r *IngestionResult) Succeed() {
	r.SuccessCount++
}

func (r *IngestionResult) Fail(issue RowIssue) {
	r.FailedCount++
	r.Issues = append(r.Issues, issue)
}

func (r *IngestionResult) Warn(issue RowIssue) {
	r.Issues = append(r.Issues, issue)
}

// Errors renders the issues as the ordered string list shown to operators.
func (r IngestionResult) Errors() []string {
	out := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		out = append(out, issue.Error())
	}
	return out
}

func (r IngestionResult) Processed() int {
	return r.SuccessCount + r.FailedCount
}
