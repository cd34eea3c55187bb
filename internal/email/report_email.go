package email

import (
	"bytes"
	"fmt"
	"html/template"

	"problem-solver/internal/models"
)

// ReportSubject is the subject line of every report email
const ReportSubject = "Your Problem Solver Insights Report Is Ready"

const excerptLength = 100

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h1>Hello,</h1>
        <p>Thank you for sharing your business challenge with Problem Solver. We've analyzed your submission and prepared a personalized insights report.</p>

        <h2>Your Challenge:</h2>
        <p>{{.Excerpt}}</p>

        <h2>Key Insights:</h2>
        <ul>
            <li>{{.Prevalence}}</li>
            <li>{{.EstimatedImpact}}</li>
            <li>{{.PriorityRecommendation}}</li>
        </ul>

        <h2>Recommendations:</h2>
        <ol>
            {{- range .Recommendations}}
            <li>{{.}}</li>
            {{- end}}
        </ol>

        <p>Thank you for contributing to our growing database of real business challenges. Your submission helps entrepreneurs identify problems worth solving.</p>

        <p>Best regards,<br>The Problem Solver Team</p>
    </div>
</body>
</html>
`))

type reportView struct {
	Subject                string
	Excerpt                string
	Prevalence             string
	EstimatedImpact        string
	PriorityRecommendation string
	Recommendations        []string
}

// RenderReportEmail builds the delivery email for a submission's report
func RenderReportEmail(sub *models.Submission, report *models.Report) (Message, error) {
	view := reportView{
		Subject:                ReportSubject,
		Excerpt:                Excerpt(sub.ProblemDescription),
		Prevalence:             report.Content.IndustryComparison.Prevalence,
		EstimatedImpact:        report.Content.BusinessImpact.EstimatedImpact,
		PriorityRecommendation: report.Content.BusinessImpact.PriorityRecommendation,
		Recommendations:        report.Content.Recommendations,
	}

	var body bytes.Buffer
	if err := reportTemplate.Execute(&body, view); err != nil {
		return Message{}, fmt.Errorf("failed to render report email: %w", err)
	}

	return Message{
		To:       sub.Email,
		Subject:  ReportSubject,
		HTMLBody: body.String(),
	}, nil
}

// Excerpt returns the first 100 characters of the description followed by "..."
func Excerpt(description string) string {
	runes := []rune(description)
	if len(runes) > excerptLength {
		runes = runes[:excerptLength]
	}
	return string(runes) + "..."
}
