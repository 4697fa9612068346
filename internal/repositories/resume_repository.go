package repositories

import (
	"errors"

	"interviewprep/internal/models"

	"gorm.io/gorm"
)

var ErrResultNotFound = errors.New("resume result not found")

type ResumeRepository struct {
	DB *gorm.DB
}

func (r *ResumeRepository) Create(result *models.ResumeResult) error {
	return r.DB.Create(result).Error
}

// GetLatestByUserID returns the most recent optimization for the user.
func (r *ResumeRepository) GetLatestByUserID(userID uint) (*models.ResumeResult, error) {
	var result models.ResumeResult
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
