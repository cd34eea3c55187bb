package service

import (
	"fmt"
	"strings"

	"problem-solver/internal/models"
)

// SystemInstruction is sent with every report request
const SystemInstruction = "You are a business analyst AI that provides insights on business problems. Format your response as JSON."

// BuildReportPrompt embeds every submission attribute and the required output structure
func BuildReportPrompt(s *models.Submission) string {
	var sb strings.Builder

	sb.WriteString("Analyze this business problem:\n\n")
	fmt.Fprintf(&sb, "Industry: %s\n", s.Industry.Display())
	fmt.Fprintf(&sb, "Company Size: %s\n", s.CompanySize)
	fmt.Fprintf(&sb, "Years in Business: %d\n", s.YearsInBusiness)
	fmt.Fprintf(&sb, "Operational Area: %s\n", s.OperationalArea.Display())
	fmt.Fprintf(&sb, "Problem Frequency: %s\n", s.ProblemFrequency)
	fmt.Fprintf(&sb, "Impact Severity: %s\n", s.ImpactSeverity)
	fmt.Fprintf(&sb, "Current Approaches: %s\n", strings.Join(models.DisplayChoices(s.CurrentApproaches), ", "))
	fmt.Fprintf(&sb, "Solution Satisfaction: %s\n", s.SolutionSatisfaction)
	fmt.Fprintf(&sb, "Budget Range: %s\n", s.BudgetRange)
	fmt.Fprintf(&sb, "Problem Description: %s\n\n", s.ProblemDescription)

	sb.WriteString(`Based on this information, provide a comprehensive analysis in the following format:

1. Industry Comparison:
   - How common is this problem in this industry and company size?
   - What context is important to understand about this problem in this industry?

2. Solution Landscape:
   - What are the most common approaches to solving this problem?
   - What are typical satisfaction levels with current solutions?
   - What insights can you provide about budget considerations?

3. Business Impact:
   - What is the estimated impact of this problem on the business?
   - What competitive advantage might come from solving this issue?
   - What priority recommendation would you give based on frequency and severity?

4. Recommendations:
   - Provide 3-5 specific recommendations for addressing this problem.

Format your response as JSON with the following structure:
{
  "industry_comparison": {
    "prevalence": "string",
    "context": "string"
  },
  "solution_landscape": {
    "common_approaches": ["string"],
    "satisfaction_levels": "string",
    "budget_insights": "string"
  },
  "business_impact": {
    "estimated_impact": "string",
    "competitive_advantage": "string",
    "priority_recommendation": "string"
  },
  "recommendations": ["string"]
}
`)

	return sb.String()
}
