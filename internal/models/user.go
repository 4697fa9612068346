package models

import (
	"gorm.io/gorm"
)

// User represents a registered account. The two active-session pointers hold
// the "current" coach/practice session a browser is working through; clearing
// a pointer abandons the session without deleting its row.
type User struct {
	gorm.Model
	Username                string `gorm:"unique;not null" json:"username"`
	PasswordHash            string `gorm:"not null" json:"-"`
	ActiveCoachSessionID    *uint  `json:"-"`
	ActivePracticeSessionID *uint  `json:"-"`
}

// ActiveSessionID returns the pointer for the given session kind.
func (u *User) ActiveSessionID(sessionType string) *uint {
	if sessionType == SessionTypeCoach {
		return u.ActiveCoachSessionID
	}
	return u.ActivePracticeSessionID
}
