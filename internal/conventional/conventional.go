// Package conventional classifies pull request titles against the
// Conventional Commits grammar.
package conventional

import "github.com/thomas-vilte/prtitle/internal/regex"

// Types lists the commit types accepted in a title, in grammar order.
var Types = []string{"feat", "fix", "docs", "style", "refactor", "test", "chore"}

// Title is a conforming title split into its parts.
type Title struct {
	Type        string
	Scope       string
	Description string
}

// IsConventional reports whether title follows the Conventional Commits format.
// An empty title never conforms.
func IsConventional(title string) bool {
	return regex.ConventionalTitle.MatchString(title)
}

// Parse splits a conforming title. The boolean is false when the title does
// not conform, in which case the returned Title is empty.
func Parse(title string) (Title, bool) {
	m := regex.ConventionalTitle.FindStringSubmatch(title)
	if m == nil {
		return Title{}, false
	}
	return Title{
		Type:        m[1],
		Scope:       m[3],
		Description: m[4],
	}, true
}
