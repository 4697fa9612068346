package gemini

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"

	"interviewprep/internal/llm"
)

// Client represents a Gemini LLM client
type Client struct {
	client *genai.Client
	config *Config
}

func NewClient(config *Config) (*Client, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeAPIKey,
			Message:  "Failed to create Gemini client",
			Err:      err,
		}
	}

	return &Client{
		client: client,
		config: config,
	}, nil
}

// GenerateContent performs one completion call under the given budget.
// The timeout is enforced through the request context; there is no retry.
func (c *Client) GenerateContent(ctx context.Context, prompt string, opts llm.GenerationOptions) (string, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.config.Model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			MaxOutputTokens: genai.Ptr(int64(opts.MaxOutputTokens)),
			Temperature:     genai.Ptr(float64(opts.Temperature)),
		},
	)
	if err != nil {
		return "", classify(err)
	}

	if result == nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "No response generated",
		}
	}

	text, err := result.Text()
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to extract response text",
			Err:      err,
		}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Empty response generated",
		}
	}

	return text, nil
}

// classify maps transport failures onto the shared error taxonomy: deadline
// becomes a timeout, reported API errors carry the provider detail with a code
// picked by HTTP status, anything else is unexpected.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeTimeout,
			Message:  "Generation timed out",
			Err:      err,
		}
	}

	var serverErr genai.ServerError
	if errors.As(err, &serverErr) {
		return &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeServiceDown,
			Message:  "Gemini API error: " + serverErr.Message,
			Err:      err,
		}
	}

	var clientErr genai.ClientError
	if errors.As(err, &clientErr) {
		code := llm.ErrCodeServiceDown
		switch clientErr.Code {
		case 401, 403:
			code = llm.ErrCodeAPIKey
		case 429:
			code = llm.ErrCodeRateLimit
		}
		return &llm.ProviderError{
			Provider: "gemini",
			Code:     code,
			Message:  "Gemini API error: " + clientErr.Message,
			Err:      err,
		}
	}

	return &llm.ProviderError{
		Provider: "gemini",
		Code:     llm.ErrCodeUnexpected,
		Message:  "Failed to generate content",
		Err:      err,
	}
}

func (c *Client) GetProviderName() string {
	return "gemini"
}
