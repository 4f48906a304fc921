package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranslations(t *testing.T) {
	t.Run("should load the embedded English messages", func(t *testing.T) {
		trans, err := NewTranslations("en")

		require.NoError(t, err)
		assert.Equal(t, "en", trans.Language())
		assert.Equal(t, "The pull request title follows the conventional commit format.", trans.GetMessage("title_conforms", 0, nil))
		assert.Equal(t, "The current pull request title does not follow the conventional commit format.", trans.GetMessage("title_not_conforming", 0, nil))
		assert.Equal(t, "Suggested title based on the changes:", trans.GetMessage("title_suggestion_header", 0, nil))
		assert.Equal(t, "Hello from my GitHub App", trans.GetMessage("issue_opened", 0, nil))
		assert.Equal(t, "Reopened issue, thanks for the update!", trans.GetMessage("issue_reopened", 0, nil))
	})

	t.Run("should load Spanish messages", func(t *testing.T) {
		trans, err := NewTranslations("es")

		require.NoError(t, err)
		assert.Equal(t, "Hola desde mi GitHub App", trans.GetMessage("issue_opened", 0, nil))
	})

	t.Run("should fail with empty language", func(t *testing.T) {
		trans, err := NewTranslations("")

		assert.Error(t, err)
		assert.Nil(t, trans)
	})

	t.Run("should fail with an unknown language", func(t *testing.T) {
		trans, err := NewTranslations("fr")

		assert.Error(t, err)
		assert.Nil(t, trans)
	})
}

func TestTranslations_SetLanguage(t *testing.T) {
	t.Run("should switch language", func(t *testing.T) {
		trans, err := NewTranslations("en")
		require.NoError(t, err)

		require.NoError(t, trans.SetLanguage("es"))

		assert.Equal(t, "es", trans.Language())
		assert.Equal(t, "Título sugerido en base a los cambios:", trans.GetMessage("title_suggestion_header", 0, nil))
	})

	t.Run("should keep the current language on error", func(t *testing.T) {
		trans, err := NewTranslations("en")
		require.NoError(t, err)

		assert.Error(t, trans.SetLanguage("de"))
		assert.Equal(t, "en", trans.Language())
	})
}

func TestTranslations_GetMessage(t *testing.T) {
	trans, err := NewTranslations("en")
	require.NoError(t, err)

	t.Run("should render template data", func(t *testing.T) {
		got := trans.GetMessage("remediate_updated", 0, map[string]interface{}{"Number": 12, "Title": "fix: x"})

		assert.Equal(t, "Pull request #12 retitled to: fix: x", got)
	})

	t.Run("should report missing messages", func(t *testing.T) {
		assert.Equal(t, "Translation missing: nope", trans.GetMessage("nope", 0, nil))
	})
}
