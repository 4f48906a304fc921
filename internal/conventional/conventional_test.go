package conventional

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsConventional(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"feat: add login", true},
		{"feat(ui): add login", true},
		{"fix: resolve null pointer", true},
		{"docs: update readme", true},
		{"style: format code", true},
		{"refactor(core): split service", true},
		{"test: cover edge cases", true},
		{"chore(deps): bump fiber", true},
		{"feat(): empty scope is accepted", true},
		{"feat(a)(b): greedy scope", true},
		{"Add login", false},
		{"feat:add login", false},
		{"feat: ", false},
		{"feat:", false},
		{"Feat: add login", false},
		{"perf: faster startup", false},
		{"feature: add login", false},
		{" feat: leading space", false},
		{"feat(ui) add login", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConventional(tt.title))
		})
	}
}

func TestIsConventional_IsStable(t *testing.T) {
	for _, title := range []string{"Fix bug", "fix: resolve null pointer"} {
		first := IsConventional(title)
		second := IsConventional(title)
		assert.Equal(t, first, second, "classification of %q changed between calls", title)
	}
}

func TestParse(t *testing.T) {
	t.Run("should split type scope and description", func(t *testing.T) {
		got, ok := Parse("feat(ui): add login")

		assert.True(t, ok)
		assert.Equal(t, Title{Type: "feat", Scope: "ui", Description: "add login"}, got)
	})

	t.Run("should leave scope empty when absent", func(t *testing.T) {
		got, ok := Parse("fix: resolve null pointer")

		assert.True(t, ok)
		assert.Equal(t, Title{Type: "fix", Description: "resolve null pointer"}, got)
	})

	t.Run("should reject non conforming titles", func(t *testing.T) {
		got, ok := Parse("Fix bug")

		assert.False(t, ok)
		assert.Equal(t, Title{}, got)
	})
}
