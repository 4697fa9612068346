package prompts

import (
	"fmt"
	"strings"

	"interviewprep/internal/models"
)

// IndustryClause renders the optional " in the X industry" suffix used by the
// question and assessment templates.
func IndustryClause(industry string) string {
	if industry == "" {
		return ""
	}
	return fmt.Sprintf(" in the %s industry", industry)
}

// PreviousQuestionsBlock lists already-asked questions so the model is told
// to produce a unique continuation. Empty when no questions exist yet.
func PreviousQuestionsBlock(questions []string) string {
	if len(questions) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Here are questions that have already been asked (ensure your new question is unique):\n")
	for _, q := range questions {
		b.WriteString("- ")
		b.WriteString(q)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// EvaluationContextPhrase names the interview the answer belongs to.
func EvaluationContextPhrase(details models.JobDetails) string {
	if details.Position == "" {
		return ""
	}
	return fmt.Sprintf(" for a %q interview question", strings.TrimSpace(details.Experience+" "+details.Position))
}

// AssessmentContextPhrase names the position an overall assessment is for.
func AssessmentContextPhrase(details models.JobDetails) string {
	if details.Position == "" {
		return ""
	}
	return fmt.Sprintf(" for the %s %s position%s", details.Experience, details.Position, IndustryClause(details.Industry))
}

// Transcript renders the full question/ideal answer/user answer/feedback
// history for the aggregate assessment prompt.
func Transcript(records []models.QuestionRecord) string {
	var b strings.Builder
	for i, rec := range records {
		fmt.Fprintf(&b, "--- Question %d ---\n", i+1)
		fmt.Fprintf(&b, "Question: %s\n", rec.Question)
		fmt.Fprintf(&b, "Ideal Answer: %s\n", rec.Answer)
		fmt.Fprintf(&b, "Your Answer: %s\n", rec.UserAnswer)
		fmt.Fprintf(&b, "Individual Feedback: %s\n\n", rec.AIFeedback)
	}
	return b.String()
}
