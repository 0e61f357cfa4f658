// Package analyzer implements the heuristic code-analysis engine shared by
// every transport. Analysis is a pure function of the source text, the
// language tag and the supplied timestamp.
package analyzer

import (
	"time"

	"codetools/src/model"
	"codetools/src/service/detector"
)

var defaultRunner = detector.NewDefaultRunner()

// Engine analyses source texts. The zero value uses the built-in rules and
// the wall clock.
type Engine struct {
	// Clock supplies analyzed_at; nil means time.Now
	Clock  func() time.Time
	runner *detector.Runner
}

// New creates an engine with the built-in rules and the given clock
func New(clock func() time.Time) *Engine {
	return &Engine{Clock: clock, runner: defaultRunner}
}

// Analyze produces the report for a source input
func (e *Engine) Analyze(in model.SourceInput) *model.Report {
	now := time.Now
	if e.Clock != nil {
		now = e.Clock
	}
	runner := e.runner
	if runner == nil {
		runner = defaultRunner
	}
	return analyze(runner, in.Code, in.Language, now())
}

// Analyze produces the report for code using the built-in rules.
// An empty language tag means javascript.
func Analyze(code string, language model.Language, now time.Time) *model.Report {
	return analyze(defaultRunner, code, language, now)
}

func analyze(runner *detector.Runner, code string, language model.Language, now time.Time) *model.Report {
	if language == "" {
		language = model.DefaultLanguage
	}

	issues := runner.RunAll(detector.NewSource(code))

	return &model.Report{
		Language:   language,
		Metrics:    ComputeMetrics(code),
		Issues:     issues,
		Summary:    Summarize(issues),
		AnalyzedAt: now.UTC(),
	}
}

// Summarize counts issues by severity
func Summarize(issues []model.Issue) model.Summary {
	var s model.Summary
	for _, issue := range issues {
		switch issue.Severity {
		case model.SeverityHigh:
			s.High++
		case model.SeverityMedium:
			s.Medium++
		case model.SeverityLow:
			s.Low++
		case model.SeverityInfo:
			s.Info++
		}
	}
	s.TotalIssues = len(issues)
	return s
}
