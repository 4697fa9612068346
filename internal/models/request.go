package models

import (
	"errors"
	"strings"
)

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *RegisterRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Password = strings.TrimSpace(r.Password)
	r.ConfirmPassword = strings.TrimSpace(r.ConfirmPassword)

	if r.Username == "" || r.Password == "" || r.ConfirmPassword == "" {
		return errors.New("All fields are required.")
	}
	if r.Password != r.ConfirmPassword {
		return errors.New("Passwords do not match.")
	}
	if len(r.Password) < 6 {
		return errors.New("Password must be at least 6 characters long.")
	}
	return nil
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Password = strings.TrimSpace(r.Password)
	if r.Username == "" || r.Password == "" {
		return errors.New("Username and password are required.")
	}
	return nil
}

// SessionSetupRequest starts a coach or practice session.
type SessionSetupRequest struct {
	JobPosition string `json:"job_position"`
	Experience  string `json:"experience"`
	Industry    string `json:"industry"`
}

func (r *SessionSetupRequest) Validate() error {
	if strings.TrimSpace(r.JobPosition) == "" {
		return errors.New("Job position cannot be empty. Please provide one.")
	}
	return nil
}

// EvaluateRequest submits a user's answer for one practice question.
// Index is a pointer so a missing field is distinguishable from index 0.
type EvaluateRequest struct {
	Index      *int   `json:"index"`
	UserAnswer string `json:"user_answer"`
}

func (r *EvaluateRequest) Validate() error {
	if r.Index == nil || *r.Index < 0 || *r.Index >= MaxPracticeQuestions {
		return errors.New("Invalid question index for evaluation.")
	}
	if strings.TrimSpace(r.UserAnswer) == "" {
		return errors.New("Your answer cannot be empty. Please provide a response.")
	}
	r.UserAnswer = strings.TrimSpace(r.UserAnswer)
	return nil
}

// ResumeRequest submits a resume and job description for optimization.
type ResumeRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

func (r *ResumeRequest) Validate() error {
	if strings.TrimSpace(r.ResumeText) == "" || strings.TrimSpace(r.JobDescription) == "" {
		return errors.New("Both resume text and job description are required for optimization.")
	}
	return nil
}
