package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// QuestionRecord is one entry of a session's question list, serialized into
// the questions_data blob. UserAnswer and AIFeedback are filled in by a later
// update in practice mode only.
type QuestionRecord struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	UserAnswer string `json:"user_answer,omitempty"`
	AIFeedback string `json:"ai_feedback,omitempty"`
}

// Evaluated reports whether the record carries both a user answer and feedback.
func (q QuestionRecord) Evaluated() bool {
	return q.UserAnswer != "" && q.AIFeedback != ""
}

// InterviewSession backs both coach and practice modes. The ordered question
// list lives in QuestionsData as a JSON array; it grows append-only up to the
// mode's maximum and the row is never deleted.
type InterviewSession struct {
	gorm.Model
	UserID          uint   `gorm:"not null;index" json:"user_id"`
	JobPosition     string `gorm:"size:255" json:"job_position"`
	ExperienceLevel string `gorm:"size:100" json:"experience_level"`
	Industry        string `gorm:"size:100" json:"industry"`
	SessionType     string `gorm:"size:50;not null;default:practice" json:"session_type"`
	QuestionsData   string `gorm:"type:text" json:"-"`
}

// Questions decodes the stored question list.
func (s *InterviewSession) Questions() ([]QuestionRecord, error) {
	if s.QuestionsData == "" {
		return nil, nil
	}
	var records []QuestionRecord
	if err := json.Unmarshal([]byte(s.QuestionsData), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SetQuestions re-encodes the question list into the blob column.
func (s *InterviewSession) SetQuestions(records []QuestionRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	s.QuestionsData = string(data)
	return nil
}

// MaxQuestions returns the cap for this session's kind.
func (s *InterviewSession) MaxQuestions() int {
	return MaxQuestionsFor(s.SessionType)
}

// JobDetails carries the job context a session was created with.
type JobDetails struct {
	Position   string `json:"position"`
	Experience string `json:"experience"`
	Industry   string `json:"industry"`
}

// Details returns the session's job context.
func (s *InterviewSession) Details() JobDetails {
	return JobDetails{
		Position:   s.JobPosition,
		Experience: s.ExperienceLevel,
		Industry:   s.Industry,
	}
}
