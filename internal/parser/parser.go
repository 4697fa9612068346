// Package parser extracts structured fields from free-text model output.
// Everything here is best effort: malformed input degrades to sentinel
// values and never returns an error.
package parser

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var logger = zap.NewNop()

// SetLogger installs the logger used for parse warnings.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// QAPair is one extracted interview question with its ideal answer.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// OverallAssessment is the aggregate verdict for a finished practice session.
type OverallAssessment struct {
	HiringPercentage string `json:"hiring_percentage"`
	ImprovementAreas string `json:"areas_for_improvement"`
	OverallMessage   string `json:"overall_message"`
}

// ResumeOptimization holds the five sections of a resume optimization reply.
type ResumeOptimization struct {
	MatchScore      string   `json:"match_score"`
	SummaryMessage  string   `json:"summary_message"`
	Improvements    []string `json:"improvements"`
	OptimizedResume string   `json:"optimized_resume"`
	ChangesAnalysis string   `json:"changes_analysis"`
}

// Incomplete reports whether so little was extracted that the caller must
// treat the whole model response as a failure.
func (r *ResumeOptimization) Incomplete() bool {
	return r.MatchScore == NotAvailable &&
		len(r.Improvements) == 0 &&
		r.OptimizedResume == MissingOptimizedResume
}

var (
	percentRe       = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(LabelHiringPercentage) + `\s*(\d{1,3})%`)
	improvementRe   = regexp.MustCompile(`(?is)` + regexp.QuoteMeta(LabelImprovementAreas) + `\s*(.*?)(?:` + regexp.QuoteMeta(LabelOverallMessage) + `|` + regexp.QuoteMeta(LabelOverallFeedback) + `|\z)`)
	overallMsgRe    = regexp.MustCompile(`(?is)(?:` + regexp.QuoteMeta(LabelOverallMessage) + `|` + regexp.QuoteMeta(LabelOverallFeedback) + `)\s*(.*)`)
	boldRe          = regexp.MustCompile(`\*\*(.*?)\*\*`)
	bulletRe        = regexp.MustCompile(`^[-*]\s*`)
	scoreRe         = regexp.MustCompile(`(?i)\*\*` + regexp.QuoteMeta(LabelMatchScore) + `\*\*\s*(\d{1,3}%)`)
	scoreFallbackRe = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(LabelMatchScore) + `\s*(\d{1,3})`)
	summaryRe       = regexp.MustCompile(`(?is)\*\*` + regexp.QuoteMeta(LabelSummaryMessage) + `\*\*\s*(.*?)(?:\*\*` + regexp.QuoteMeta(LabelResumeAnalysis) + `\*\*|\*\*` + regexp.QuoteMeta(LabelOptimizedResume) + `\*\*|\z)`)
	analysisRe      = regexp.MustCompile(`(?is)\*\*` + regexp.QuoteMeta(LabelResumeAnalysis) + `\*\*\s*(.*?)(?:\*\*` + regexp.QuoteMeta(LabelOptimizedResume) + `\*\*|\z)`)
	optimizedRe     = regexp.MustCompile(`(?is)\*\*` + regexp.QuoteMeta(LabelOptimizedResume) + `\*\*\s*(.*?)(?:\*\*` + regexp.QuoteMeta(LabelChangesAnalysis) + `\*\*|\z)`)
	changesRe       = regexp.MustCompile(`(?is)\*\*` + regexp.QuoteMeta(LabelChangesAnalysis) + `\*\*\s*(.*)`)
)

// ParseQuestionAnswer scans text for repeated "Question: ... Answer: ..."
// blocks. Pairs with an empty question or answer are dropped with a warning.
func ParseQuestionAnswer(text string) []QAPair {
	var pairs []QAPair

	chunks := strings.Split(text, LabelQuestion)
	for _, chunk := range chunks[1:] {
		rawQ, rawA, found := strings.Cut(chunk, LabelAnswer)
		if !found {
			logger.Warn("Q&A block missing answer label", zap.String("block", truncate(chunk, 80)))
			continue
		}
		question := strings.TrimSpace(rawQ)
		answer := strings.TrimSpace(rawA)
		if question == "" || answer == "" {
			logger.Warn("Skipping malformed Q&A pair",
				zap.String("question", truncate(question, 50)),
				zap.String("answer", truncate(answer, 50)))
			continue
		}
		pairs = append(pairs, QAPair{Question: question, Answer: answer})
	}
	return pairs
}

// ParseFeedback returns the cleaned single-answer feedback text.
func ParseFeedback(text string) string {
	return strings.TrimSpace(text)
}

// ParseOverallAssessment extracts the hiring percentage, the improvement
// block and the overall message. Fields without a recognizable label default
// to "N/A"; the message defaults to the full trimmed input.
func ParseOverallAssessment(text string) OverallAssessment {
	result := OverallAssessment{
		HiringPercentage: NotAvailable,
		ImprovementAreas: NotAvailable,
		OverallMessage:   strings.TrimSpace(text),
	}

	if m := percentRe.FindStringSubmatch(text); m != nil {
		result.HiringPercentage = m[1] + "%"
	}
	if m := improvementRe.FindStringSubmatch(text); m != nil {
		result.ImprovementAreas = strings.TrimSpace(m[1])
	}
	if m := overallMsgRe.FindStringSubmatch(text); m != nil {
		result.OverallMessage = strings.TrimSpace(m[1])
	}
	return result
}

// ParseResumeOptimization extracts the five bold-labeled sections of a
// resume optimization response. Bold markers are stripped from every field
// except the optimized resume body, which may legitimately contain emphasis.
func ParseResumeOptimization(text string) ResumeOptimization {
	result := ResumeOptimization{
		MatchScore:      NotAvailable,
		SummaryMessage:  NotAvailable,
		OptimizedResume: MissingOptimizedResume,
		ChangesAnalysis: MissingChangesAnalysis,
	}

	if m := scoreRe.FindStringSubmatch(text); m != nil {
		result.MatchScore = strings.TrimSpace(m[1])
	} else if m := scoreFallbackRe.FindStringSubmatch(text); m != nil {
		result.MatchScore = strings.TrimSpace(m[1]) + "%"
	}

	if m := summaryRe.FindStringSubmatch(text); m != nil {
		result.SummaryMessage = stripBold(m[1])
	}

	if m := analysisRe.FindStringSubmatch(text); m != nil {
		for _, line := range strings.Split(strings.TrimSpace(m[1]), "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			item := stripBold(bulletRe.ReplaceAllString(strings.TrimSpace(line), ""))
			result.Improvements = append(result.Improvements, item)
		}
	}

	if m := optimizedRe.FindStringSubmatch(text); m != nil {
		result.OptimizedResume = strings.TrimSpace(m[1])
	}

	if m := changesRe.FindStringSubmatch(text); m != nil {
		result.ChangesAnalysis = stripBold(m[1])
	}

	if result.MatchScore == NotAvailable || result.SummaryMessage == NotAvailable ||
		result.OptimizedResume == MissingOptimizedResume || result.ChangesAnalysis == MissingChangesAnalysis {
		logger.Warn("resume optimization parsing incomplete", zap.String("response", truncate(text, 500)))
	}

	return result
}

func stripBold(s string) string {
	return strings.TrimSpace(boldRe.ReplaceAllString(s, "$1"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
