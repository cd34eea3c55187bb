package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"problem-solver/internal/models"
	"problem-solver/pkg/validator"
)

// Enqueuer schedules background report generation for a submission
type Enqueuer interface {
	Enqueue(submissionID string) bool
}

// SubmissionService implements intake, lookup and admin status overrides
type SubmissionService struct {
	store     SubmissionStore
	validator *validator.Validator
	queue     Enqueuer
	now       func() time.Time
}

// NewSubmissionService creates a new submission service. queue may be nil.
func NewSubmissionService(store SubmissionStore, queue Enqueuer) *SubmissionService {
	return &SubmissionService{
		store:     store,
		validator: newDraftValidator(),
		queue:     queue,
		now:       time.Now,
	}
}

func newDraftValidator() *validator.Validator {
	v := validator.New()
	v.RegisterStringer(models.Choice{})
	if err := v.RegisterRule("choice", validChoice); err != nil {
		panic(err)
	}
	return v
}

// validChoice accepts a listed option of the named set or a non-empty other:<text>
func validChoice(value, set string) bool {
	c := models.ParseChoice(value)
	if c.IsOther() {
		return strings.TrimSpace(c.OtherText()) != ""
	}
	switch set {
	case "industry":
		return models.IsKnownIndustry(c.KnownValue())
	case "operational_area":
		return models.IsKnownOperationalArea(c.KnownValue())
	case "approach":
		return models.IsKnownApproach(c.KnownValue())
	}
	return false
}

// Create validates a draft and stores it with status new, then schedules generation
func (s *SubmissionService) Create(ctx context.Context, draft models.SubmissionDraft) (string, error) {
	normalizeDraft(&draft)

	// required rules see the trimmed description; the stored text stays as submitted
	check := draft
	check.ProblemDescription = strings.TrimSpace(check.ProblemDescription)
	fields, err := s.validator.Validate(&check)
	if err != nil {
		return "", err
	}
	if _, ok := fields["operational_area"]; !ok && !areaMatchesIndustry(check) {
		if fields == nil {
			fields = make(map[string]string)
		}
		fields["operational_area"] = "is not offered for the selected industry"
	}
	if len(fields) > 0 {
		return "", &ValidationError{Fields: fields}
	}

	sub := &models.Submission{
		ID:                   uuid.NewString(),
		Industry:             draft.Industry,
		CompanySize:          draft.CompanySize,
		YearsInBusiness:      draft.YearsInBusiness,
		OperationalArea:      draft.OperationalArea,
		ProblemFrequency:     draft.ProblemFrequency,
		ImpactSeverity:       draft.ImpactSeverity,
		CurrentApproaches:    draft.CurrentApproaches,
		SolutionSatisfaction: draft.SolutionSatisfaction,
		BudgetRange:          draft.BudgetRange,
		ProblemDescription:   draft.ProblemDescription,
		DocumentURL:          draft.DocumentURL,
		Email:                draft.Email,
		OptInFuture:          draft.OptInFuture,
		AllowFollowUp:        draft.AllowFollowUp,
		InterestedInDiscount: draft.InterestedInDiscount,
		Status:               models.StatusNew,
		CreatedAt:            s.now().UTC(),
	}
	if sub.CurrentApproaches == nil {
		sub.CurrentApproaches = []models.Choice{}
	}

	if err := s.store.Create(ctx, sub); err != nil {
		return "", storageErr("create submission", err)
	}

	slog.Info("Submission created", "submission_id", sub.ID, "industry", sub.Industry.String())

	if s.queue != nil && !s.queue.Enqueue(sub.ID) {
		slog.Warn("Generation queue full, leaving submission for the pending sweep", "submission_id", sub.ID)
	}

	return sub.ID, nil
}

// areaMatchesIndustry checks a listed operational area against the chosen industry
func areaMatchesIndustry(d models.SubmissionDraft) bool {
	area := d.OperationalArea
	if area.IsZero() || area.IsOther() || d.Industry.IsZero() {
		return true
	}
	return models.IsOperationalAreaOffered(d.Industry, area.KnownValue())
}

func normalizeDraft(d *models.SubmissionDraft) {
	d.Email = validator.SanitizeEmail(d.Email)
	if d.DocumentURL != nil {
		trimmed := validator.SanitizeString(*d.DocumentURL)
		if trimmed == "" {
			d.DocumentURL = nil
		} else {
			d.DocumentURL = &trimmed
		}
	}
}

// Get returns one submission
func (s *SubmissionService) Get(ctx context.Context, id string) (*models.Submission, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	sub, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr("get submission", err)
	}
	return sub, nil
}

// List returns submissions newest first. An empty filter or "all" returns every status.
func (s *SubmissionService) List(ctx context.Context, statusFilter string) ([]models.Submission, error) {
	var filter *models.Status
	if statusFilter != "" && statusFilter != "all" {
		status, err := models.ParseStatus(statusFilter)
		if err != nil {
			return nil, newValidationError("status", err.Error())
		}
		filter = &status
	}

	subs, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, storageErr("list submissions", err)
	}
	return subs, nil
}

// UpdateStatus sets a submission's status unconditionally on behalf of an administrator
func (s *SubmissionService) UpdateStatus(ctx context.Context, id, rawStatus string) (*models.Submission, error) {
	status, err := ParseOverride(rawStatus)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr("update status", err)
	}

	slog.Info("Submission status overridden", "submission_id", id, "status", status)
	return s.Get(ctx, id)
}
