package analyzer

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"codetools/src/model"
	"codetools/src/util"
)

// Decision points counted towards complexity
var decisionTokens = []string{"if", "else", "for", "while", "case", "&&", "||"}

// Complexity rating upper bounds (inclusive)
const (
	simpleMaxComplexity   = 5
	moderateMaxComplexity = 10
	complexMaxComplexity  = 20
)

// Function patterns. They overlap: `const f = (a) => a` matches the
// assignment and the arrow pattern and counts twice.
var functionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`function\s+\w+`),
	regexp.MustCompile(`\w+\s*=\s*\(`),
	regexp.MustCompile(`=>`),
}

var decisionMatchers = newDecisionMatchers()

func newDecisionMatchers() []*util.TokenMatcher {
	matchers := make([]*util.TokenMatcher, len(decisionTokens))
	for i, tok := range decisionTokens {
		matchers[i] = util.NewTokenMatcher(tok)
	}
	return matchers
}

// ComputeMetrics measures size and complexity of a source text
func ComputeMetrics(code string) model.Metrics {
	lines := len(util.SplitLines(code))
	chars := utf8.RuneCountInString(code)
	complexity := Complexity(code)

	return model.Metrics{
		Lines:             lines,
		Characters:        chars,
		Words:             len(strings.Fields(code)),
		Complexity:        complexity,
		ComplexityRating:  Rate(complexity),
		FunctionCount:     FunctionCount(code),
		AverageLineLength: int(math.Round(float64(chars) / float64(lines))),
	}
}

// Complexity approximates cyclomatic complexity by counting decision
// keywords and operators. Occurrences inside strings and comments count too.
func Complexity(code string) int {
	complexity := 1
	for _, m := range decisionMatchers {
		complexity += m.Count(code)
	}
	return complexity
}

// Rate buckets a complexity score
func Rate(complexity int) model.ComplexityRating {
	switch {
	case complexity <= simpleMaxComplexity:
		return model.RatingSimple
	case complexity <= moderateMaxComplexity:
		return model.RatingModerate
	case complexity <= complexMaxComplexity:
		return model.RatingComplex
	default:
		return model.RatingVeryComplex
	}
}

// FunctionCount sums the matches of every function pattern
func FunctionCount(code string) int {
	count := 0
	for _, re := range functionPatterns {
		count += util.CountMatches(re, code)
	}
	return count
}
