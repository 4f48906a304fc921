package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/models"
)

func TestBuildChangesContext(t *testing.T) {
	t.Run("should render files in input order", func(t *testing.T) {
		files := []models.ChangedFile{
			{Filename: "a.txt", Patch: "p1"},
			{Filename: "b.txt", Patch: "p2"},
		}

		got := BuildChangesContext(files)

		assert.Equal(t, "File: a.txt\nChanges:\np1\n\nFile: b.txt\nChanges:\np2", got)
	})

	t.Run("should not sort filenames", func(t *testing.T) {
		files := []models.ChangedFile{
			{Filename: "z.go", Patch: "@@ -1 +1 @@"},
			{Filename: "a.go", Patch: "@@ -2 +2 @@"},
		}

		got := BuildChangesContext(files)

		assert.Equal(t, "File: z.go\nChanges:\n@@ -1 +1 @@\n\nFile: a.go\nChanges:\n@@ -2 +2 @@", got)
	})

	t.Run("should keep the block of a file without patch", func(t *testing.T) {
		files := []models.ChangedFile{
			{Filename: "logo.png"},
			{Filename: "main.go", Patch: "+package main"},
		}

		got := BuildChangesContext(files)

		assert.Equal(t, "File: logo.png\nChanges:\n\n\nFile: main.go\nChanges:\n+package main", got)
	})

	t.Run("should not escape patch content", func(t *testing.T) {
		files := []models.ChangedFile{{Filename: "index.html", Patch: `+<a href="x">&</a>`}}

		got := BuildChangesContext(files)

		assert.Equal(t, "File: index.html\nChanges:\n+<a href=\"x\">&</a>", got)
	})

	t.Run("should keep format verbs in file names and patches", func(t *testing.T) {
		files := []models.ChangedFile{{Filename: "100%s.txt", Patch: `+fmt.Printf("%d\n", n)`}}

		got := BuildChangesContext(files)

		assert.Equal(t, "File: 100%s.txt\nChanges:\n+fmt.Printf(\"%d\\n\", n)", got)
	})

	t.Run("should return empty string for no files", func(t *testing.T) {
		assert.Equal(t, "", BuildChangesContext(nil))
	})
}

func TestBuildTitlePrompt(t *testing.T) {
	got := BuildTitlePrompt("File: a.txt\nChanges:\np1")

	assert.Equal(t, "Based on the following file changes, suggest a title for this pull request that adheres to the Conventional Commits format:\n\nFile: a.txt\nChanges:\np1", got)
}

func TestNewCompletionRequest(t *testing.T) {
	req := NewCompletionRequest("gpt-4o", "the prompt")

	assert.Equal(t, "gpt-4o", req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, models.Message{Role: models.RoleSystem, Content: "You are an assistant specializing in pull request titles."}, req.Messages[0])
	assert.Equal(t, models.Message{Role: models.RoleUser, Content: "the prompt"}, req.Messages[1])
}

func TestFirstChoice(t *testing.T) {
	t.Run("should return first choice verbatim", func(t *testing.T) {
		resp := &models.CompletionResponse{Choices: []models.Choice{
			{Message: models.Message{Role: models.RoleAssistant, Content: "  feat: add login\n"}},
			{Message: models.Message{Role: models.RoleAssistant, Content: "fix: other"}},
		}}

		got, err := FirstChoice(resp)

		require.NoError(t, err)
		assert.Equal(t, "  feat: add login\n", got)
	})

	t.Run("should fail on empty choices", func(t *testing.T) {
		_, err := FirstChoice(&models.CompletionResponse{})

		require.Error(t, err)
		assert.ErrorIs(t, err, domainErrors.ErrNoCompletionResponse)
		assert.True(t, domainErrors.IsRemoteService(err))
	})

	t.Run("should fail on nil response", func(t *testing.T) {
		_, err := FirstChoice(nil)

		assert.ErrorIs(t, err, domainErrors.ErrNoCompletionResponse)
	})
}
