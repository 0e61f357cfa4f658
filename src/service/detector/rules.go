package detector

import "codetools/src/model"

// Rule IDs in evaluation order
const (
	RuleEval          = "eval-usage"
	RuleInnerHTML     = "inner-html"
	RuleVar           = "var-declaration"
	RuleConsoleLog    = "console-log"
	RuleLooseEquality = "loose-equality"
)

// DefaultDetectors returns the issue rules in their fixed evaluation order
func DefaultDetectors() []Detector {
	return []Detector{
		NewSubstringDetector(RuleMeta{
			ID:       RuleEval,
			Severity: model.SeverityHigh,
			Category: model.CategorySecurity,
			Message:  "Use of eval() is dangerous and can execute arbitrary code",
		}, "eval("),
		NewPatternDetector(RuleMeta{
			ID:       RuleInnerHTML,
			Severity: model.SeverityMedium,
			Category: model.CategorySecurity,
			Message:  "Direct innerHTML assignment can lead to XSS vulnerabilities",
		}, `innerHTML\s*=([^=]|$)`),
		NewSubstringDetector(RuleMeta{
			ID:       RuleVar,
			Severity: model.SeverityLow,
			Category: model.CategoryBestPractices,
			Message:  "Use 'let' or 'const' instead of 'var' for block-scoped declarations",
		}, "var "),
		NewSubstringDetector(RuleMeta{
			ID:       RuleConsoleLog,
			Severity: model.SeverityInfo,
			Category: model.CategoryBestPractices,
			Message:  "Remove console.log statements before shipping to production",
		}, "console.log"),
		// "===" and "!=" never match: the operator must not touch another '='
		NewPatternDetector(RuleMeta{
			ID:       RuleLooseEquality,
			Severity: model.SeverityLow,
			Category: model.CategoryBestPractices,
			Message:  "Use strict equality (===) instead of loose equality (==)",
		}, `(^|[^=!])==([^=]|$)`),
	}
}
