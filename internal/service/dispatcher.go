package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"problem-solver/internal/email"
	"problem-solver/internal/lock"
	"problem-solver/internal/models"
)

const mailService = "mail"

// Dispatcher emails a submission's report to the submitter and marks it delivered
type Dispatcher struct {
	submissions SubmissionStore
	reports     ReportStore
	sender      email.Sender
	locker      lock.Locker
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(submissions SubmissionStore, reports ReportStore, sender email.Sender, locker lock.Locker) *Dispatcher {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	return &Dispatcher{
		submissions: submissions,
		reports:     reports,
		sender:      sender,
		locker:      locker,
	}
}

// Dispatch sends the report email. Status only changes after the mail relay accepted the message.
func (d *Dispatcher) Dispatch(ctx context.Context, submissionID string) (*models.Submission, error) {
	if _, err := uuid.Parse(submissionID); err != nil {
		return nil, ErrNotFound
	}

	release, err := d.locker.Obtain(ctx, "submission:"+submissionID)
	if err != nil {
		return nil, err
	}
	defer release()

	sub, err := d.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, storageErr("load submission", err)
	}
	if !CanDispatch(sub.Status) {
		return nil, fmt.Errorf("%w: cannot dispatch a submission in status %s", ErrPrecondition, sub.Status)
	}

	report, err := d.reports.GetBySubmissionID(ctx, submissionID)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: submission has no report", ErrPrecondition)
	}
	if err != nil {
		return nil, storageErr("load report", err)
	}

	msg, err := email.RenderReportEmail(sub, report)
	if err != nil {
		return nil, err
	}

	if err := d.sender.Send(ctx, msg); err != nil {
		slog.Error("Report email failed", "submission_id", sub.ID, "error", err)
		return nil, &ExternalServiceError{Service: mailService, Err: err}
	}

	// a re-send of a delivered report leaves the status alone
	if CanAdvance(sub.Status, models.StatusDelivered) {
		moved, err := d.submissions.CompareAndSetStatus(ctx, sub.ID, sub.Status, models.StatusDelivered)
		if err != nil {
			return nil, storageErr("mark delivered", err)
		}
		if !moved {
			return nil, ErrStatusConflict
		}
		sub.Status = models.StatusDelivered
	}

	slog.Info("Report delivered", "submission_id", sub.ID)
	return sub, nil
}
