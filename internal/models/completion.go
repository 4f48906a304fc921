package models

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type (
	// Message is one role-tagged entry of a chat completion conversation.
	Message struct {
		Role    Role   `json:"role"`
		Content string `json:"content"`
	}

	// CompletionRequest is the body sent to a chat completion API.
	CompletionRequest struct {
		Model    string    `json:"model"`
		Messages []Message `json:"messages"`
	}

	// CompletionResponse holds the generated choices. Only the first one is read.
	CompletionResponse struct {
		Choices []Choice `json:"choices"`
	}

	Choice struct {
		Message Message `json:"message"`
	}
)
