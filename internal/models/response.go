package models

import "interviewprep/internal/parser"

// QuestionResponse answers GET question/{index}. Answer is omitted in
// practice mode, where the ideal answer is withheld until results.
type QuestionResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer,omitempty"`
	Index    int    `json:"index"`
	Total    int    `json:"total"`
}

// EvaluationResponse carries per-answer feedback back to the client.
type EvaluationResponse struct {
	Message  string `json:"message"`
	Feedback string `json:"feedback"`
}

// RedirectResponse tells the client which page to navigate to next.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

// SessionStartResponse is returned when a coach or practice session begins.
type SessionStartResponse struct {
	SessionID   uint   `json:"session_id"`
	JobPosition string `json:"job_position"`
	Redirect    string `json:"redirect"`
	// First question, coach mode only (generated inline at setup).
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
	Index    *int   `json:"index,omitempty"`
	Total    int    `json:"total,omitempty"`
}

// ResultsResponse aggregates a finished practice session.
type ResultsResponse struct {
	PracticeData    []QuestionRecord         `json:"practice_data"`
	OverallFeedback parser.OverallAssessment `json:"overall_feedback"`
	JobDetails      JobDetails               `json:"job_details"`
}

// ResumeResponse shapes a stored optimization result for the client.
type ResumeResponse struct {
	MatchScore      string   `json:"match_score"`
	SummaryMessage  string   `json:"summary_message"`
	Improvements    []string `json:"improvements"`
	OptimizedResume string   `json:"optimized_resume"`
	ChangesAnalysis string   `json:"changes_analysis"`
}
