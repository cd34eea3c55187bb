package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"problem-solver/internal/email"
	"problem-solver/internal/models"
	"problem-solver/internal/repository"
)

type fakeSubmissionStore struct {
	mu      sync.Mutex
	subs    map[string]models.Submission
	failErr error
	casErr  error
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{subs: make(map[string]models.Submission)}
}

func (f *fakeSubmissionStore) Create(_ context.Context, s *models.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	f.subs[s.ID] = *s
	return nil
}

func (f *fakeSubmissionStore) GetByID(_ context.Context, id string) (*models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	s, ok := f.subs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (f *fakeSubmissionStore) List(_ context.Context, status *models.Status) ([]models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	out := []models.Submission{}
	for _, s := range f.subs {
		if status == nil || s.Status == *status {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeSubmissionStore) ListByStatusOlderThan(_ context.Context, status models.Status, before time.Time, limit int) ([]models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Submission{}
	for _, s := range f.subs {
		if s.Status == status && s.CreatedAt.Before(before) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeSubmissionStore) UpdateStatus(_ context.Context, id string, status models.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	s, ok := f.subs[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Status = status
	f.subs[id] = s
	return nil
}

func (f *fakeSubmissionStore) CompareAndSetStatus(_ context.Context, id string, from, to models.Status) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.casErr != nil {
		return false, f.casErr
	}
	s, ok := f.subs[id]
	if !ok || s.Status != from {
		return false, nil
	}
	s.Status = to
	f.subs[id] = s
	return true, nil
}

func (f *fakeSubmissionStore) status(id string) models.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subs[id].Status
}

func (f *fakeSubmissionStore) put(s models.Submission) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs[s.ID] = s
}

type fakeReportStore struct {
	mu      sync.Mutex
	reports map[string]models.Report
	nextID  uint
	failErr error
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{reports: make(map[string]models.Report)}
}

func (f *fakeReportStore) Upsert(_ context.Context, r *models.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	if existing, ok := f.reports[r.SubmissionID]; ok {
		r.ID = existing.ID
	} else {
		f.nextID++
		r.ID = f.nextID
	}
	f.reports[r.SubmissionID] = *r
	return nil
}

func (f *fakeReportStore) GetBySubmissionID(_ context.Context, id string) (*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	r, ok := f.reports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (f *fakeReportStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reports)
}

type fakeNoteStore struct {
	mu     sync.Mutex
	notes  []models.AdminNote
	nextID uint
}

func (f *fakeNoteStore) Create(_ context.Context, n *models.AdminNote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	n.ID = f.nextID
	f.notes = append(f.notes, *n)
	return nil
}

func (f *fakeNoteStore) ListBySubmissionID(_ context.Context, id string) ([]models.AdminNote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AdminNote
	for i := len(f.notes) - 1; i >= 0; i-- {
		if f.notes[i].SubmissionID == id {
			out = append(out, f.notes[i])
		}
	}
	return out, nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.AdminSession
	touched  int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]models.AdminSession)}
}

func (f *fakeSessionStore) Create(_ context.Context, s *models.AdminSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.JTI] = *s
	return nil
}

func (f *fakeSessionStore) GetByJTI(_ context.Context, jti string) (*models.AdminSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[jti]
	if !ok || !s.ExpiresAt.After(time.Now()) {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (f *fakeSessionStore) Touch(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched++
	return nil
}

func (f *fakeSessionStore) DeleteByJTI(_ context.Context, jti string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, jti)
	return nil
}

func (f *fakeSessionStore) DeleteExpiredSessions(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for jti, s := range f.sessions {
		if !s.ExpiresAt.After(time.Now()) {
			delete(f.sessions, jti)
			n++
		}
	}
	return n, nil
}

type fakeAuditStore struct {
	mu      sync.Mutex
	logs    []models.AuditLog
	failErr error
	limit   int
}

func (f *fakeAuditStore) Create(_ context.Context, l *models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	f.logs = append(f.logs, *l)
	return nil
}

func (f *fakeAuditStore) List(_ context.Context, limit, _ int) ([]models.AuditLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limit = limit
	return f.logs, nil
}

// stubCompleter returns a canned answer or error
type stubCompleter struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	prompts  []string
}

func (s *stubCompleter) Complete(_ context.Context, _, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

type recordingSender struct {
	mu   sync.Mutex
	sent []email.Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg email.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

type recordingQueue struct {
	mu   sync.Mutex
	ids  []string
	full bool
}

func (q *recordingQueue) Enqueue(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.full {
		return false
	}
	q.ids = append(q.ids, id)
	return true
}

var errDown = errors.New("connection refused")

const validReportJSON = `{
  "industry_comparison": {"prevalence": "68% of peers", "context": "Support volume grows faster than headcount."},
  "solution_landscape": {
    "common_approaches": ["Ticketing software", "Chatbots"],
    "satisfaction_levels": "Mixed",
    "budget_insights": "Most spend under 10k per year"
  },
  "business_impact": {
    "estimated_impact": "Churn risk",
    "competitive_advantage": "Faster response times",
    "priority_recommendation": "High"
  },
  "recommendations": ["Triage queue", "Self-service FAQ", "SLA alerts"]
}`

func storedSubmission(status models.Status) models.Submission {
	return models.Submission{
		ID:                 "3f0c9a52-6d8e-4c5b-9a1e-2b7d4c6f8e01",
		Industry:           models.Known("technology"),
		CompanySize:        "11-50",
		YearsInBusiness:    5,
		OperationalArea:    models.Known("tech_support"),
		ProblemFrequency:   "daily",
		ImpactSeverity:     "significant",
		CurrentApproaches:  []models.Choice{models.Known("manual")},
		BudgetRange:        "low",
		ProblemDescription: "Customer service delays",
		Email:              "a@b.com",
		Status:             status,
		CreatedAt:          time.Now().Add(-time.Hour).UTC(),
	}
}
