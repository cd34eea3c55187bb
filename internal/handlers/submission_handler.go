package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"problem-solver/internal/models"
	"problem-solver/internal/service"
)

// SubmissionCreator accepts new questionnaire submissions
type SubmissionCreator interface {
	Create(ctx context.Context, draft models.SubmissionDraft) (string, error)
}

// SubmissionHandler handles the public questionnaire endpoint
type SubmissionHandler struct {
	submissions SubmissionCreator
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissions SubmissionCreator) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions}
}

// CreateSubmissionResponse is returned after a successful submission
type CreateSubmissionResponse struct {
	ID string `json:"id"`
}

// Create stores a questionnaire response and schedules its report
// @Summary Submit a business problem
// @Description Stores a questionnaire response with status "new" and schedules report generation.
// @Description Choice fields accept "value", "other:<text>", {"value": ...} or {"other": ...}.
// @Tags Submissions
// @Accept json
// @Produce json
// @Param request body models.SubmissionDraft true "Questionnaire answers"
// @Success 201 {object} CreateSubmissionResponse
// @Failure 400 {object} ValidationErrorResponse "Invalid input"
// @Failure 500 {object} map[string]string "Submission could not be stored"
// @Router /submissions [post]
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft models.SubmissionDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	id, err := h.submissions.Create(r.Context(), draft)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			respondWithServiceError(w, r, err)
			return
		}
		// submitters only ever see a generic retry message
		slog.Error("Failed to create submission", "error", err)
		respondWithError(w, http.StatusInternalServerError, ErrMsgSubmitRetry)
		return
	}

	respondWithJSON(w, http.StatusCreated, CreateSubmissionResponse{ID: id})
}
