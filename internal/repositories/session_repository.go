package repositories

import (
	"errors"
	"time"

	"interviewprep/internal/models"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("interview session not found")

type SessionRepository struct {
	DB *gorm.DB
}

func (r *SessionRepository) Create(session *models.InterviewSession) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) GetByID(id uint) (*models.InterviewSession, error) {
	var session models.InterviewSession
	err := r.DB.First(&session, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SaveQuestions persists the session's question blob.
func (r *SessionRepository) SaveQuestions(session *models.InterviewSession) error {
	return r.DB.Model(session).Update("questions_data", session.QuestionsData).Error
}

// StaleActiveSessions returns sessions not touched since the cutoff that are
// still referenced by a user's active pointer. Used by the janitor.
func (r *SessionRepository) StaleActiveSessions(cutoff time.Time) ([]models.InterviewSession, error) {
	var sessions []models.InterviewSession
	err := r.DB.
		Joins("JOIN users ON users.active_coach_session_id = interview_sessions.id OR users.active_practice_session_id = interview_sessions.id").
		Where("interview_sessions.updated_at < ?", cutoff).
		Find(&sessions).Error
	return sessions, err
}
