// Package suggestion derives remediation hints from an analysis report.
package suggestion

import "codetools/src/model"

// RefactorThreshold is the complexity above which a refactor is suggested
const RefactorThreshold = 10

const refactorMessage = "Consider breaking this code into smaller functions to reduce complexity"

// Derive returns the suggestions for a report: one refactor hint when the
// complexity exceeds RefactorThreshold, then one security fix per
// high-severity issue in issue order.
func Derive(report *model.Report) []model.Suggestion {
	suggestions := make([]model.Suggestion, 0)
	if report == nil {
		return suggestions
	}

	if report.Metrics.Complexity > RefactorThreshold {
		suggestions = append(suggestions, model.Suggestion{
			Type:     model.SuggestionRefactor,
			Priority: model.SeverityMedium,
			Message:  refactorMessage,
		})
	}

	for _, issue := range report.Issues {
		if issue.Severity != model.SeverityHigh {
			continue
		}
		suggestions = append(suggestions, model.Suggestion{
			Type:     model.SuggestionSecurity,
			Priority: model.SeverityHigh,
			Message:  "Fix security issue: " + issue.Message,
			Line:     issue.Line,
		})
	}

	return suggestions
}
