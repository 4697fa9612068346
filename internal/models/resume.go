package models

import (
	"strings"

	"gorm.io/gorm"
)

// ResumeResult stores one resume optimization run. Rows are immutable; a user
// accumulates many and only the most recent is surfaced.
type ResumeResult struct {
	gorm.Model
	UserID          uint   `gorm:"not null;index" json:"user_id"`
	MatchScore      string `gorm:"size:10" json:"match_score"`
	SummaryMessage  string `gorm:"type:text" json:"summary_message"`
	Improvements    string `gorm:"type:text" json:"-"`
	OptimizedResume string `gorm:"type:text" json:"optimized_resume"`
	ChangesAnalysis string `gorm:"type:text" json:"changes_analysis"`
}

// ImprovementsList splits the newline-joined improvements column.
func (r *ResumeResult) ImprovementsList() []string {
	if r.Improvements == "" {
		return nil
	}
	return strings.Split(r.Improvements, "\n")
}

// SetImprovementsList stores improvement bullets as newline-joined text.
func (r *ResumeResult) SetImprovementsList(items []string) {
	r.Improvements = strings.Join(items, "\n")
}
