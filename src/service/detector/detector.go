package detector

import (
	"regexp"
	"strings"

	"codetools/src/model"
	"codetools/src/util"
)

// Source is the text handed to every detector. Lines is Text split on "\n".
type Source struct {
	Text  string
	Lines []string
}

// NewSource prepares a source text for detection
func NewSource(text string) Source {
	return Source{Text: text, Lines: util.SplitLines(text)}
}

// Detector is the interface for all issue rules
type Detector interface {
	// Name returns the stable rule identifier
	Name() string

	// Meta returns the fixed severity, category and message of the rule
	Meta() RuleMeta

	// Detect reports at most one issue for the source
	Detect(src Source) (model.Issue, bool)
}

// RuleMeta describes the issue a detector emits
type RuleMeta struct {
	ID       string         `json:"id"`
	Severity model.Severity `json:"severity"`
	Category model.Category `json:"category"`
	Message  string         `json:"message"`
}

// BaseDetector provides common functionality for detectors
type BaseDetector struct {
	meta RuleMeta
}

// Name returns the rule ID
func (b BaseDetector) Name() string {
	return b.meta.ID
}

// Meta returns the rule metadata
func (b BaseDetector) Meta() RuleMeta {
	return b.meta
}

// issueAt builds the issue for a match. line 0 means the per-line scan
// found nothing even though the whole text matched; it falls back to 1.
func (b BaseDetector) issueAt(line int) model.Issue {
	issue := model.Issue{
		Rule:     b.meta.ID,
		Severity: b.meta.Severity,
		Category: b.meta.Category,
		Message:  b.meta.Message,
		Line:     line,
	}
	if line < 1 {
		issue.Line = 1
		issue.ApproximateLine = true
	}
	return issue
}

// SubstringDetector fires when a literal substring occurs in the source
type SubstringDetector struct {
	BaseDetector
	needle string
}

// NewSubstringDetector creates a detector for a literal substring
func NewSubstringDetector(meta RuleMeta, needle string) *SubstringDetector {
	return &SubstringDetector{BaseDetector: BaseDetector{meta: meta}, needle: needle}
}

// Detect runs the substring test
func (d *SubstringDetector) Detect(src Source) (model.Issue, bool) {
	if !strings.Contains(src.Text, d.needle) {
		return model.Issue{}, false
	}
	line := util.FirstLine(src.Lines, func(l string) bool {
		return strings.Contains(l, d.needle)
	})
	return d.issueAt(line), true
}

// PatternDetector fires when a regular expression matches the source
type PatternDetector struct {
	BaseDetector
	re *regexp.Regexp
}

// NewPatternDetector creates a detector for a regular expression
func NewPatternDetector(meta RuleMeta, pattern string) *PatternDetector {
	return &PatternDetector{BaseDetector: BaseDetector{meta: meta}, re: regexp.MustCompile(pattern)}
}

// Detect runs the pattern test
func (d *PatternDetector) Detect(src Source) (model.Issue, bool) {
	if !d.re.MatchString(src.Text) {
		return model.Issue{}, false
	}
	line := util.FirstLine(src.Lines, d.re.MatchString)
	return d.issueAt(line), true
}
