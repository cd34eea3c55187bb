package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"problem-solver/internal/lock"
	"problem-solver/internal/models"
)

// Completer is the inference collaborator
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// ReportGenerator turns a submission into a stored report and moves it to analyzed
type ReportGenerator struct {
	submissions SubmissionStore
	reports     ReportStore
	llm         Completer
	parser      *ReportParser
	locker      lock.Locker
	now         func() time.Time
}

// NewReportGenerator creates a new report generator
func NewReportGenerator(submissions SubmissionStore, reports ReportStore, llm Completer, locker lock.Locker) (*ReportGenerator, error) {
	parser, err := NewReportParser()
	if err != nil {
		return nil, err
	}
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	return &ReportGenerator{
		submissions: submissions,
		reports:     reports,
		llm:         llm,
		parser:      parser,
		locker:      locker,
		now:         time.Now,
	}, nil
}

// Generate produces and stores the report for a submission. Inference and
// parse failures are absorbed into the fallback report. Running it again
// replaces the stored report.
func (g *ReportGenerator) Generate(ctx context.Context, submissionID string) (*models.Report, error) {
	return g.generate(ctx, submissionID, false)
}

// GenerateIfNew is Generate for background runs. It returns ErrNotPending
// without calling inference once the submission has left "new".
func (g *ReportGenerator) GenerateIfNew(ctx context.Context, submissionID string) (*models.Report, error) {
	return g.generate(ctx, submissionID, true)
}

func (g *ReportGenerator) generate(ctx context.Context, submissionID string, onlyNew bool) (*models.Report, error) {
	if _, err := uuid.Parse(submissionID); err != nil {
		return nil, ErrNotFound
	}

	release, err := g.locker.Obtain(ctx, "submission:"+submissionID)
	if err != nil {
		return nil, err
	}
	defer release()

	sub, err := g.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, storageErr("load submission", err)
	}

	advance := CanAdvance(sub.Status, models.StatusAnalyzed)
	if onlyNew && !advance {
		return nil, ErrNotPending
	}

	content, fallback := g.analyze(ctx, sub)

	report := &models.Report{
		SubmissionID: sub.ID,
		Content:      content,
		IsFallback:   fallback,
		GeneratedAt:  g.now().UTC(),
	}
	if err := g.reports.Upsert(ctx, report); err != nil {
		return nil, storageErr("save report", err)
	}

	if !advance {
		slog.Info("Report regenerated without status change", "submission_id", sub.ID, "status", sub.Status)
	} else {
		// a failure here leaves the report stored under "new"; the pending sweep retries
		moved, err := g.submissions.CompareAndSetStatus(ctx, sub.ID, sub.Status, models.StatusAnalyzed)
		if err != nil {
			return nil, storageErr("mark analyzed", err)
		}
		if !moved {
			slog.Info("Status changed during generation", "submission_id", sub.ID)
		}
	}

	slog.Info("Report generated", "submission_id", sub.ID, "fallback", fallback)
	return report, nil
}

func (g *ReportGenerator) analyze(ctx context.Context, sub *models.Submission) (models.ReportContent, bool) {
	raw, err := g.llm.Complete(ctx, SystemInstruction, BuildReportPrompt(sub))
	if err != nil {
		var extErr *ExternalServiceError
		if !errors.As(err, &extErr) {
			err = &ExternalServiceError{Service: inferenceService, Err: err}
		}
		slog.Warn("Inference failed, using fallback report", "submission_id", sub.ID, "error", err)
		return FallbackReport(), true
	}

	content, err := g.parser.Parse(raw)
	if err != nil {
		slog.Warn("Inference output rejected, using fallback report", "submission_id", sub.ID, "error", err)
		return FallbackReport(), true
	}

	return content, false
}

// Report returns the stored report of a submission, or nil when none was generated yet
func (g *ReportGenerator) Report(ctx context.Context, submissionID string) (*models.Report, error) {
	if _, err := uuid.Parse(submissionID); err != nil {
		return nil, ErrNotFound
	}
	if _, err := g.submissions.GetByID(ctx, submissionID); err != nil {
		return nil, storageErr("load submission", err)
	}

	report, err := g.reports.GetBySubmissionID(ctx, submissionID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("load report", err)
	}
	return report, nil
}
