package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"problem-solver/internal/models"
)

// FallbackText fills every field of a placeholder report
const FallbackText = "Analysis unavailable — review manually"

const reportSchemaURL = "https://problem-solver.local/schemas/report.schema.json"

// reportSchema requires every section and field; extra keys from the model are tolerated
const reportSchema = `{
  "type": "object",
  "required": ["industry_comparison", "solution_landscape", "business_impact", "recommendations"],
  "properties": {
    "industry_comparison": {
      "type": "object",
      "required": ["prevalence", "context"],
      "properties": {
        "prevalence": {"type": "string"},
        "context": {"type": "string"}
      }
    },
    "solution_landscape": {
      "type": "object",
      "required": ["common_approaches", "satisfaction_levels", "budget_insights"],
      "properties": {
        "common_approaches": {"type": "array", "items": {"type": "string"}},
        "satisfaction_levels": {"type": "string"},
        "budget_insights": {"type": "string"}
      }
    },
    "business_impact": {
      "type": "object",
      "required": ["estimated_impact", "competitive_advantage", "priority_recommendation"],
      "properties": {
        "estimated_impact": {"type": "string"},
        "competitive_advantage": {"type": "string"},
        "priority_recommendation": {"type": "string"}
      }
    },
    "recommendations": {"type": "array", "items": {"type": "string"}}
  }
}`

// ReportParser checks model output against the report schema before decoding it
type ReportParser struct {
	schema *jsonschema.Schema
}

// NewReportParser compiles the report schema
func NewReportParser() (*ReportParser, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(reportSchemaURL, strings.NewReader(reportSchema)); err != nil {
		return nil, fmt.Errorf("failed to load report schema: %w", err)
	}
	schema, err := c.Compile(reportSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile report schema: %w", err)
	}
	return &ReportParser{schema: schema}, nil
}

// Parse decodes model output into report content. Output wrapped in a
// markdown code fence is accepted. Any mismatch is a *SchemaParseError.
func (p *ReportParser) Parse(raw string) (models.ReportContent, error) {
	payload := stripCodeFence(raw)

	var doc any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return models.ReportContent{}, &SchemaParseError{Err: err}
	}
	if err := p.schema.Validate(doc); err != nil {
		return models.ReportContent{}, &SchemaParseError{Err: err}
	}

	var content models.ReportContent
	if err := json.Unmarshal([]byte(payload), &content); err != nil {
		return models.ReportContent{}, &SchemaParseError{Err: err}
	}
	return content, nil
}

func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

// FallbackReport is the deterministic placeholder used when generation fails
func FallbackReport() models.ReportContent {
	return models.ReportContent{
		IndustryComparison: models.IndustryComparison{
			Prevalence: FallbackText,
			Context:    FallbackText,
		},
		SolutionLandscape: models.SolutionLandscape{
			CommonApproaches:   []string{FallbackText},
			SatisfactionLevels: FallbackText,
			BudgetInsights:     FallbackText,
		},
		BusinessImpact: models.BusinessImpact{
			EstimatedImpact:        FallbackText,
			CompetitiveAdvantage:   FallbackText,
			PriorityRecommendation: FallbackText,
		},
		Recommendations: []string{FallbackText},
	}
}
