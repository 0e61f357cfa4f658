// Package formatter normalises source text with an ordered table of text
// substitutions. It does not parse the code.
package formatter

import (
	"regexp"
	"strings"

	"codetools/src/model"
)

// Rule is a single named substitution
type Rule struct {
	Name  string
	apply func(string) string
}

func replaceRule(name, pattern, repl string) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{Name: name, apply: func(s string) string {
		return re.ReplaceAllString(s, repl)
	}}
}

// DefaultRules returns the substitutions in the order they run
func DefaultRules() []Rule {
	return []Rule{
		replaceRule("crlf", `\r\n`, "\n"),
		replaceRule("trailing-whitespace", `(?m)[ \t]+$`, ""),
		replaceRule("comma-spacing", `,([^\s,])`, ", $1"),
		replaceRule("brace-spacing", `\)[ \t]*\{`, ") {"),
		replaceRule("keyword-paren", `\b(if|for|while|switch|catch)\(`, "$1 ("),
		replaceRule("blank-lines", `\n{3,}`, "\n\n"),
		{Name: "final-newline", apply: finalNewline},
	}
}

func finalNewline(s string) string {
	trimmed := strings.TrimRight(s, "\n")
	if trimmed == "" {
		return trimmed
	}
	return trimmed + "\n"
}

// Formatter applies a rule table
type Formatter struct {
	rules []Rule
}

// New creates a formatter with the default rules
func New() *Formatter {
	return &Formatter{rules: DefaultRules()}
}

// Rules lists the rule names in order
func (f *Formatter) Rules() []string {
	names := make([]string, len(f.rules))
	for i, r := range f.rules {
		names[i] = r.Name
	}
	return names
}

// Format runs every rule over code. Running it on its own output
// changes nothing.
func (f *Formatter) Format(code string) model.FormatResult {
	out := code
	applied := make([]string, 0)
	for _, r := range f.rules {
		next := r.apply(out)
		if next != out {
			applied = append(applied, r.Name)
			out = next
		}
	}
	return model.FormatResult{
		Formatted: out,
		Changed:   out != code,
		Applied:   applied,
	}
}
