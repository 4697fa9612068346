package models

// Session kinds stored in interview_sessions.session_type.
const (
	SessionTypeCoach    = "coach"
	SessionTypePractice = "practice"
)

// Question list caps per session kind.
const (
	MaxCoachQuestions    = 5
	MaxPracticeQuestions = 5
)

// MaxQuestionsFor returns the question cap for a session kind.
func MaxQuestionsFor(sessionType string) int {
	if sessionType == SessionTypeCoach {
		return MaxCoachQuestions
	}
	return MaxPracticeQuestions
}
