package repositories

import (
	"errors"

	"interviewprep/internal/models"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) CreateUser(user *models.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.DB.First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	err := r.DB.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetActiveSession updates one of the user's active-session pointers.
// A nil sessionID clears the pointer; the session row itself is untouched.
func (r *UserRepository) SetActiveSession(userID uint, sessionType string, sessionID *uint) error {
	column := "active_practice_session_id"
	if sessionType == models.SessionTypeCoach {
		column = "active_coach_session_id"
	}
	result := r.DB.Model(&models.User{}).Where("id = ?", userID).Update(column, sessionID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ClearActiveSessions resets both pointers, used on logout.
func (r *UserRepository) ClearActiveSessions(userID uint) error {
	return r.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"active_coach_session_id":    nil,
			"active_practice_session_id": nil,
		}).Error
}
