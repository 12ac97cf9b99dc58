package roster

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domain "github.com/hostelhub/roster-import/internal/domain/roster"
	"github.com/hostelhub/roster-import/internal/metrics"
	"github.com/hostelhub/roster-import/internal/pkg/logger"
)

type IngestRosterInput struct {
	Payload string
	// Source names the upload in logs, e.g. a file name.
	Source string
}

type IngestRosterOutput struct {
	RunID        string   `json:"run_id"`
	SuccessCount int      `json:"success_count"`
	FailedCount  int      `json:"failed_count"`
	Errors       []string `json:"errors"`
	Message      string   `json:"message"`
}

type IngestRoster interface {
	Execute(ctx context.Context, in IngestRosterInput) (IngestRosterOutput, error)
}

type ingestRoster struct {
	writer domain.RosterWriter
}

func NewIngestRoster(writer domain.RosterWriter) IngestRoster {
	return &ingestRoster{writer: writer}
}

// Execute validates the header, then writes every data line independently.
// Only a malformed payload or a header mismatch returns an error; row
// problems are reported in the output and never stop the loop.
func (uc *ingestRoster) Execute(ctx context.Context, in IngestRosterInput) (IngestRosterOutput, error) {
	runID := uuid.NewString()
	log := logger.With("run_id", runID)

	lines := splitLines(in.Payload)
	if len(lines) < 2 {
		metrics.IngestionsTotal.WithLabelValues("malformed").Inc()
		log.Warn().Str("source", in.Source).Int("lines", len(lines)).Msg("rejected roster without data lines")
		return IngestRosterOutput{}, domain.ErrMalformedInput
	}

	header := splitFields(lines[0].text)
	if missing := domain.MissingColumns(header); len(missing) > 0 {
		metrics.IngestionsTotal.WithLabelValues("schema_mismatch").Inc()
		log.Warn().Str("source", in.Source).Strs("missing", missing).Msg("rejected roster header")
		return IngestRosterOutput{}, &domain.SchemaMismatchError{Missing: missing}
	}
	if unknown := domain.UnknownColumns(header); len(unknown) > 0 {
		log.Debug().Strs("columns", unknown).Msg("ignoring unknown roster columns")
	}

	// The batch runs to completion even if the caller goes away.
	writeCtx := context.WithoutCancel(ctx)
	columns := newColumnIndex(header)

	var result domain.IngestionResult
	for _, line := range lines[1:] {
		uc.ingestLine(writeCtx, log, columns, line, &result)
	}

	metrics.IngestionsTotal.WithLabelValues("completed").Inc()
	log.Info().
		Str("source", in.Source).
		Int("success", result.SuccessCount).
		Int("failed", result.FailedCount).
		Int("issues", len(result.Issues)).
		Msg("roster ingested")

	return IngestRosterOutput{
		RunID:        runID,
		SuccessCount: result.SuccessCount,
		FailedCount:  result.FailedCount,
		Errors:       result.Errors(),
		Message:      summarize(result),
	}, nil
}

func (uc *ingestRoster) ingestLine(ctx context.Context, log zerolog.Logger, columns columnIndex, line rosterLine, result *domain.IngestionResult) {
	raw := columns.decode(line.text)

	if missing := raw.missingFields(); len(missing) > 0 {
		metrics.RowsTotal.WithLabelValues(string(domain.IssueMissingField)).Inc()
		result.Fail(domain.RowIssue{Line: line.number, RollNo: raw.RollNo, Kind: domain.IssueMissingField, Fields: missing})
		return
	}

	row, invalid := raw.toDomain()
	if len(invalid) > 0 {
		metrics.RowsTotal.WithLabelValues(string(domain.IssueInvalidType)).Inc()
		result.Fail(domain.RowIssue{Line: line.number, RollNo: raw.RollNo, Kind: domain.IssueInvalidType, Fields: invalid})
		return
	}

	account := row.Account()
	if err := uc.writer.SaveRow(ctx, row.Student(), account); err != nil {
		metrics.RowsTotal.WithLabelValues(string(domain.IssuePersistence)).Inc()
		log.Warn().Err(err).Int("line", line.number).Str("roll_no", row.RollNo).Msg("failed to save roster row")
		result.Fail(domain.RowIssue{Line: line.number, RollNo: row.RollNo, Kind: domain.IssuePersistence, Cause: err})
		return
	}

	result.Succeed()
	if account == nil {
		metrics.RowsTotal.WithLabelValues("saved_without_account").Inc()
		result.Warn(domain.RowIssue{Line: line.number, RollNo: row.RollNo, Kind: domain.IssueMissingAccountEmail})
		return
	}
	metrics.RowsTotal.WithLabelValues("saved").Inc()
}

func summarize(result domain.IngestionResult) string {
	msg := fmt.Sprintf("Processed %d of %d students", result.SuccessCount, result.Processed())
	if n := len(result.Issues); n > 0 {
		msg += fmt.Sprintf(" with %d issue(s)", n)
	}
	return msg
}
