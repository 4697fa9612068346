package parser

// Label tokens expected in model output. The prompt templates instruct the
// model to emit exactly these labels, so any wording change here must be
// mirrored in internal/prompts/templates.
const (
	LabelQuestion         = "Question:"
	LabelAnswer           = "Answer:"
	LabelHiringPercentage = "Hiring Percentage:"
	LabelImprovementAreas = "Areas for Improvement:"
	LabelOverallMessage   = "Overall Message:"
	LabelOverallFeedback  = "Overall Feedback:"
	LabelMatchScore       = "Match Score:"
	LabelSummaryMessage   = "Summary Message:"
	LabelResumeAnalysis   = "Original Resume Analysis - Areas for Improvement:"
	LabelOptimizedResume  = "Optimized Resume:"
	LabelChangesAnalysis  = "Analysis of Optimization Changes:"
)

// Sentinel values used when a labeled section cannot be extracted.
const (
	NotAvailable           = "N/A"
	MissingOptimizedResume = "Could not generate optimized resume."
	MissingChangesAnalysis = "Could not generate analysis of changes."
)
