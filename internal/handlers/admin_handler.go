package handlers

import (
	"context"
	"net/http"

	"problem-solver/internal/middleware"
	"problem-solver/internal/models"
)

// SubmissionManager is the admin view of the submission store
type SubmissionManager interface {
	Get(ctx context.Context, id string) (*models.Submission, error)
	List(ctx context.Context, statusFilter string) ([]models.Submission, error)
	UpdateStatus(ctx context.Context, id, rawStatus string) (*models.Submission, error)
}

// ReportManager generates and looks up reports
type ReportManager interface {
	Generate(ctx context.Context, submissionID string) (*models.Report, error)
	Report(ctx context.Context, submissionID string) (*models.Report, error)
}

// ReportDispatcher emails reports
type ReportDispatcher interface {
	Dispatch(ctx context.Context, submissionID string) (*models.Submission, error)
}

// NoteManager manages admin notes
type NoteManager interface {
	AddNote(ctx context.Context, submissionID, content, author string) (*models.AdminNote, error)
	ListNotes(ctx context.Context, submissionID string) ([]models.AdminNote, error)
}

// AdminHandler handles the submission admin endpoints
type AdminHandler struct {
	submissions SubmissionManager
	reports     ReportManager
	dispatcher  ReportDispatcher
	notes       NoteManager
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(submissions SubmissionManager, reports ReportManager, dispatcher ReportDispatcher, notes NoteManager) *AdminHandler {
	return &AdminHandler{
		submissions: submissions,
		reports:     reports,
		dispatcher:  dispatcher,
		notes:       notes,
	}
}

// UpdateStatusRequest represents an admin status override
type UpdateStatusRequest struct {
	Status string `json:"status" example:"archived"`
}

// AddNoteRequest represents a new admin note
type AddNoteRequest struct {
	Content string `json:"note_content"`
	Author  string `json:"admin_user,omitempty"`
}

// ListSubmissions lists submissions newest first
// @Summary List submissions
// @Description List submissions newest first, optionally filtered by status
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter (new, analyzed, delivered, archived, all)"
// @Success 200 {array} models.Submission
// @Failure 400 {object} ValidationErrorResponse "Unknown status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /admin/submissions [get]
func (h *AdminHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.submissions.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, subs)
}

// GetSubmission returns one submission
// @Summary Get a submission
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Success 200 {object} models.Submission
// @Failure 404 {object} map[string]string "Submission not found"
// @Router /admin/submissions/{id} [get]
func (h *AdminHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	sub, err := h.submissions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, sub)
}

// UpdateStatus overrides a submission's status
// @Summary Override submission status
// @Description Sets any valid status regardless of the current one
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} models.Submission
// @Failure 400 {object} ValidationErrorResponse "Unknown status"
// @Failure 404 {object} map[string]string "Submission not found"
// @Router /admin/submissions/{id}/status [put]
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	sub, err := h.submissions.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, sub)
}

// GenerateReport runs report generation synchronously
// @Summary Generate report
// @Description Generates (or regenerates) the report. Inference failures produce a placeholder report.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Success 200 {object} models.Report
// @Failure 404 {object} map[string]string "Submission not found"
// @Failure 409 {object} map[string]string "Submission busy"
// @Router /admin/submissions/{id}/generate [post]
func (h *AdminHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.Generate(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

// DispatchReport emails the report to the submitter
// @Summary Send report email
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Success 200 {object} models.Submission
// @Failure 404 {object} map[string]string "Submission not found"
// @Failure 409 {object} map[string]string "No report yet, wrong status or busy"
// @Failure 502 {object} map[string]string "Mail delivery failed"
// @Router /admin/submissions/{id}/dispatch [post]
func (h *AdminHandler) DispatchReport(w http.ResponseWriter, r *http.Request) {
	sub, err := h.dispatcher.Dispatch(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, sub)
}

// GetReport returns the report of a submission, or null when none exists yet
// @Summary Get report
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Success 200 {object} models.Report "Report, or null before generation"
// @Failure 404 {object} map[string]string "Submission not found"
// @Router /admin/submissions/{id}/report [get]
func (h *AdminHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.Report(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

// AddNote appends an admin note
// @Summary Add note
// @Description Appends a note. The author defaults to the signed-in admin.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Param request body AddNoteRequest true "Note"
// @Success 201 {object} models.AdminNote
// @Failure 400 {object} ValidationErrorResponse "Empty note"
// @Failure 404 {object} map[string]string "Submission not found"
// @Router /admin/submissions/{id}/notes [post]
func (h *AdminHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req AddNoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	author := req.Author
	if author == "" {
		author, _ = middleware.GetUsername(r)
	}

	note, err := h.notes.AddNote(r.Context(), r.PathValue("id"), req.Content, author)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, note)
}

// ListNotes lists a submission's notes, newest first
// @Summary List notes
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Success 200 {array} models.AdminNote
// @Failure 404 {object} map[string]string "Submission not found"
// @Router /admin/submissions/{id}/notes [get]
func (h *AdminHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.ListNotes(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, notes)
}
