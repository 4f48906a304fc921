package regex

import "regexp"

var (
	// ConventionalTitle is the grammar a pull request title must follow:
	// type, optional parenthesized scope, ": " and a non-empty description.
	ConventionalTitle = regexp.MustCompile(`^(feat|fix|docs|style|refactor|test|chore)(\((.*)\))?: (.+)$`)
)
