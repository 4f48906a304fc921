package ai

import (
	"fmt"
	"strings"

	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/models"
)

const (
	// SystemPrompt establishes the assistant's role for every title request.
	SystemPrompt = "You are an assistant specializing in pull request titles."

	titlePromptPreamble = "Based on the following file changes, suggest a title for this pull request that adheres to the Conventional Commits format:\n\n"

	changedFileFormat = "File: %s\nChanges:\n%s"
)

// BuildChangesContext renders one block per changed file, in input order,
// separated by a blank line. A file without a patch keeps its block with an
// empty changes section.
func BuildChangesContext(files []models.ChangedFile) string {
	blocks := make([]string, 0, len(files))
	for _, f := range files {
		blocks = append(blocks, fmt.Sprintf(changedFileFormat, f.Filename, f.Patch))
	}
	return strings.Join(blocks, "\n\n")
}

// BuildTitlePrompt prefixes the changes context with the title instruction.
func BuildTitlePrompt(changesContext string) string {
	return titlePromptPreamble + changesContext
}

// NewCompletionRequest builds the two-message request sent for a title suggestion.
func NewCompletionRequest(model, prompt string) models.CompletionRequest {
	return models.CompletionRequest{
		Model: model,
		Messages: []models.Message{
			{Role: models.RoleSystem, Content: SystemPrompt},
			{Role: models.RoleUser, Content: prompt},
		},
	}
}

// FirstChoice returns the content of the first choice, or ErrNoCompletionResponse
// when the provider returned none.
func FirstChoice(resp *models.CompletionResponse) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", domainErrors.ErrNoCompletionResponse
	}
	return resp.Choices[0].Message.Content, nil
}
