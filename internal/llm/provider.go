package llm

import (
	"context"
	"errors"
	"time"
)

// GenerationOptions bound a single completion call.
type GenerationOptions struct {
	MaxOutputTokens int32
	Temperature     float32
	Timeout         time.Duration
}

// Per-operation budgets. Question generation and evaluation are quick calls;
// the aggregate assessment and resume optimization get longer deadlines and
// larger outputs.
var (
	QuestionGeneration = GenerationOptions{MaxOutputTokens: 500, Temperature: 0.7, Timeout: 90 * time.Second}
	AnswerEvaluation   = GenerationOptions{MaxOutputTokens: 300, Temperature: 0.5, Timeout: 60 * time.Second}
	OverallAssessment  = GenerationOptions{MaxOutputTokens: 500, Temperature: 0.7, Timeout: 120 * time.Second}
	ResumeOptimization = GenerationOptions{MaxOutputTokens: 2000, Temperature: 0.7, Timeout: 180 * time.Second}
)

// defines the interface for LLM providers
type Provider interface {
	GenerateContent(ctx context.Context, prompt string, opts GenerationOptions) (string, error)
	GetProviderName() string
}

// represents an error from an LLM provider
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Common error codes
// For current and future use across different providers
const (
	ErrCodeAPIKey       = "invalid_api_key"
	ErrCodeRateLimit    = "rate_limit_exceeded"
	ErrCodeServiceDown  = "service_unavailable"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeTimeout      = "timeout"
	ErrCodeUnexpected   = "unexpected_error"
)

// ErrorCode extracts the taxonomy code from a provider error, or
// ErrCodeUnexpected for anything else.
func ErrorCode(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ErrCodeUnexpected
}
