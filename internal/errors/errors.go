package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeAI            ErrorType = "AI"
	TypeVCS           ErrorType = "VCS"
	TypeWebhook       ErrorType = "WEBHOOK"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if status, ok := e.Context["status_code"].(int); ok && status != 0 {
			msg += fmt.Sprintf(" - HTTP %d", status)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports sentinel equality by type and message so that errors derived
// with WithError/WithContext still match the sentinel they came from.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// IsRemoteService reports whether err is a failure of one of the remote
// services the app talks to (the completion API or the GitHub API).
func IsRemoteService(err error) bool {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return false
	}
	return appErr.Type == TypeAI || appErr.Type == TypeVCS
}

// Configuration errors
var (
	ErrAPIKeyMissing = NewAppError(TypeConfiguration, "AI API key is missing", nil).
				WithSuggestion("Set PRTITLE_OPENAI_API_KEY (or OPENAI_API_KEY) in the environment or .env file")

	ErrGitHubCredentialsMissing = NewAppError(TypeConfiguration, "GitHub credentials are missing", nil).
					WithSuggestion("Configure github.app_id + github.private_key_path, or github.token")

	ErrProviderNotSupported = NewAppError(TypeConfiguration, "AI provider not supported", nil).
				WithSuggestion("Supported providers: openai, gemini")

	ErrInvalidConfig = NewAppError(TypeConfiguration, "invalid configuration", nil)

	ErrLanguageNotSupported = NewAppError(TypeConfiguration, "language not supported", nil).
				WithSuggestion("Supported languages: en, es")
)

// GitHub/VCS errors
var (
	ErrListFiles = NewAppError(TypeVCS, "failed to list pull request files", nil)

	ErrCreateComment = NewAppError(TypeVCS, "failed to create comment", nil)

	ErrUpdateTitle = NewAppError(TypeVCS, "failed to update pull request title", nil)

	ErrGitHubInsufficientPerms = NewAppError(TypeVCS, "GitHub credentials have insufficient permissions", nil).
					WithSuggestion("The GitHub App needs 'Pull requests: write' and 'Issues: write' permissions")

	ErrGitHubClient = NewAppError(TypeVCS, "failed to create GitHub client", nil)
)

// AI errors
var (
	ErrNoCompletionResponse = NewAppError(TypeAI, "No response received", nil)

	ErrAIGeneration = NewAppError(TypeAI, "AI generation failed", nil).
			WithSuggestion("Check the completion API key and base URL")

	ErrAIAuth = NewAppError(TypeAI, "completion API rejected the credentials", nil).
			WithSuggestion("Verify the configured API key")
)

// Webhook errors
var (
	ErrInvalidPayload = NewAppError(TypeWebhook, "invalid webhook payload", nil)

	ErrMissingEventType = NewAppError(TypeWebhook, "missing X-GitHub-Event header", nil)
)
