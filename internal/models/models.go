package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Status is the lifecycle state of a submission
type Status string

const (
	StatusNew       Status = "new"
	StatusAnalyzed  Status = "analyzed"
	StatusDelivered Status = "delivered"
	StatusArchived  Status = "archived"
)

// AllStatuses lists every status in lifecycle order
var AllStatuses = []Status{StatusNew, StatusAnalyzed, StatusDelivered, StatusArchived}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusAnalyzed, StatusDelivered, StatusArchived:
		return true
	}
	return false
}

// ParseStatus converts a raw string into a Status
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", raw)
	}
	return s, nil
}

// Submission represents one questionnaire response
type Submission struct {
	ID                   string    `json:"id" db:"id"`
	Industry             Choice    `json:"industry" db:"industry"`
	CompanySize          string    `json:"company_size" db:"company_size"`
	YearsInBusiness      int       `json:"years_in_business" db:"years_in_business"`
	OperationalArea      Choice    `json:"operational_area" db:"operational_area"`
	ProblemFrequency     string    `json:"problem_frequency" db:"problem_frequency"`
	ImpactSeverity       string    `json:"impact_severity" db:"impact_severity"`
	CurrentApproaches    []Choice  `json:"current_approaches" db:"current_approaches"`
	SolutionSatisfaction string    `json:"solution_satisfaction" db:"solution_satisfaction"`
	BudgetRange          string    `json:"budget_range" db:"budget_range"`
	ProblemDescription   string    `json:"problem_description" db:"problem_description"`
	DocumentURL          *string   `json:"document_url,omitempty" db:"document_url"`
	Email                string    `json:"email" db:"email"`
	OptInFuture          bool      `json:"opt_in_future" db:"opt_in_future"`
	AllowFollowUp        bool      `json:"allow_follow_up" db:"allow_follow_up"`
	InterestedInDiscount bool      `json:"interested_in_discount" db:"interested_in_discount"`
	Status               Status    `json:"status" db:"status"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
}

// SubmissionDraft is the validated input for creating a submission
type SubmissionDraft struct {
	Industry             Choice   `json:"industry" validate:"required,choice=industry"`
	CompanySize          string   `json:"company_size" validate:"omitempty,oneof=solo 2-10 11-50 51-200 201+"`
	YearsInBusiness      int      `json:"years_in_business" validate:"gte=0,lte=500"`
	OperationalArea      Choice   `json:"operational_area" validate:"omitempty,choice=operational_area"`
	ProblemFrequency     string   `json:"problem_frequency" validate:"omitempty,oneof=rarely occasionally frequently daily constantly"`
	ImpactSeverity       string   `json:"impact_severity" validate:"omitempty,oneof=minor moderate significant major critical"`
	CurrentApproaches    []Choice `json:"current_approaches" validate:"dive,choice=approach"`
	SolutionSatisfaction string   `json:"solution_satisfaction" validate:"omitempty,oneof=very-dissatisfied dissatisfied neutral satisfied very-satisfied"`
	BudgetRange          string   `json:"budget_range" validate:"omitempty,oneof=none low medium high enterprise"`
	ProblemDescription   string   `json:"problem_description" validate:"required,max=10000"`
	DocumentURL          *string  `json:"document_url,omitempty" validate:"omitempty,url"`
	Email                string   `json:"email" validate:"required,email"`
	OptInFuture          bool     `json:"opt_in_future"`
	AllowFollowUp        bool     `json:"allow_follow_up"`
	InterestedInDiscount bool     `json:"interested_in_discount"`
}

// IndustryComparison is the first report section
type IndustryComparison struct {
	Prevalence string `json:"prevalence"`
	Context    string `json:"context"`
}

// SolutionLandscape is the second report section
type SolutionLandscape struct {
	CommonApproaches   []string `json:"common_approaches"`
	SatisfactionLevels string   `json:"satisfaction_levels"`
	BudgetInsights     string   `json:"budget_insights"`
}

// BusinessImpact is the third report section
type BusinessImpact struct {
	EstimatedImpact        string `json:"estimated_impact"`
	CompetitiveAdvantage   string `json:"competitive_advantage"`
	PriorityRecommendation string `json:"priority_recommendation"`
}

// ReportContent is the structured insights payload stored as JSONB
type ReportContent struct {
	IndustryComparison IndustryComparison `json:"industry_comparison"`
	SolutionLandscape  SolutionLandscape  `json:"solution_landscape"`
	BusinessImpact     BusinessImpact     `json:"business_impact"`
	Recommendations    []string           `json:"recommendations"`
}

// Value implements driver.Valuer
func (c ReportContent) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner
func (c *ReportContent) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		return errors.New("report content is null")
	default:
		return fmt.Errorf("unsupported report content type %T", src)
	}
	return json.Unmarshal(data, c)
}

// Report is the generated analysis attached to a submission
type Report struct {
	ID           uint          `json:"id" db:"id"`
	SubmissionID string        `json:"submission_id" db:"submission_id"`
	Content      ReportContent `json:"report_content" db:"report_content"`
	IsFallback   bool          `json:"is_fallback" db:"is_fallback"`
	GeneratedAt  time.Time     `json:"generated_at" db:"generated_at"`
}

// AdminNote is an append-only operator annotation on a submission
type AdminNote struct {
	ID           uint      `json:"id" db:"id"`
	SubmissionID string    `json:"submission_id" db:"submission_id"`
	Content      string    `json:"note_content" db:"note_content"`
	Author       string    `json:"admin_user" db:"admin_user"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// AdminSession is a server-side record backing an admin token
type AdminSession struct {
	ID             string    `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	JTI            string    `json:"-" db:"jti"`
	ExpiresAt      time.Time `json:"expires_at" db:"expires_at"`
	LastActivityAt time.Time `json:"last_activity_at" db:"last_activity_at"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	IPAddress      string    `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent      string    `json:"user_agent,omitempty" db:"user_agent"`
}

// AuditLog represents an audit log entry
type AuditLog struct {
	ID        uint      `json:"id" db:"id"`
	Actor     *string   `json:"actor,omitempty" db:"actor"`
	Action    string    `json:"action" db:"action"`
	Resource  string    `json:"resource" db:"resource"`
	Details   string    `json:"details,omitempty" db:"details"`
	IPAddress string    `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent string    `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
