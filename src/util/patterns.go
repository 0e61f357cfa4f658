package util

import (
	"regexp"
	"strings"
)

// TokenMatcher counts occurrences of a keyword or operator in source text.
// Identifier tokens match on word boundaries; symbolic tokens match literally.
type TokenMatcher struct {
	token string
	re    *regexp.Regexp
}

var identPattern = regexp.MustCompile(`^\w+$`)

// NewTokenMatcher builds a matcher for a single keyword or operator
func NewTokenMatcher(token string) *TokenMatcher {
	pattern := regexp.QuoteMeta(token)
	if identPattern.MatchString(token) {
		pattern = `\b` + pattern + `\b`
	}
	return &TokenMatcher{
		token: token,
		re:    regexp.MustCompile(pattern),
	}
}

// Token returns the token being matched
func (m *TokenMatcher) Token() string {
	return m.token
}

// Count returns the number of non-overlapping occurrences in text
func (m *TokenMatcher) Count(text string) int {
	return len(m.re.FindAllStringIndex(text, -1))
}

// CountMatches returns the number of non-overlapping matches of re in text
func CountMatches(re *regexp.Regexp, text string) int {
	return len(re.FindAllStringIndex(text, -1))
}

// SplitLines splits text on newlines; empty text yields one empty line
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// FirstLine returns the 1-based number of the first line satisfying match,
// or 0 when no line does.
func FirstLine(lines []string, match func(string) bool) int {
	for i, line := range lines {
		if match(line) {
			return i + 1
		}
	}
	return 0
}
