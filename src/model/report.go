package model

import (
	"strings"
	"time"
)

// Language tags the dialect of the analysed source
type Language string

const (
	LanguageJavaScript Language = "javascript"
)

// DefaultLanguage is used when a caller does not name one
const DefaultLanguage = LanguageJavaScript

// ParseLanguage normalises a caller-supplied language tag.
// Unknown tags are kept as-is; they do not change detection rules.
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "js", "javascript", "node", "nodejs":
		return LanguageJavaScript
	default:
		return Language(strings.ToLower(strings.TrimSpace(s)))
	}
}

// Severity represents the severity level of an issue
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
	SeverityInfo   Severity = "info"
)

// Severities lists all severities from most to least severe
var Severities = []Severity{SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}

// Category represents the category of an issue
type Category string

const (
	CategorySecurity      Category = "security"
	CategoryBestPractices Category = "best-practices"
	CategoryStyle         Category = "style"
)

// ComplexityRating buckets the complexity score
type ComplexityRating string

const (
	RatingSimple      ComplexityRating = "simple"
	RatingModerate    ComplexityRating = "moderate"
	RatingComplex     ComplexityRating = "complex"
	RatingVeryComplex ComplexityRating = "very_complex"
)

// SourceInput is the immutable input of one analysis
type SourceInput struct {
	Code     string
	Language Language
}

// Metrics contains size and complexity measurements of a source text
type Metrics struct {
	Lines             int              `json:"lines"`
	Characters        int              `json:"characters"`
	Words             int              `json:"words"`
	Complexity        int              `json:"complexity"`
	ComplexityRating  ComplexityRating `json:"complexity_rating"`
	FunctionCount     int              `json:"function_count"`
	AverageLineLength int              `json:"average_line_length"`
}

// Issue represents a single pattern-based finding
type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
	// ApproximateLine is set when the rule matched the whole text but no
	// single line, so Line fell back to 1.
	ApproximateLine bool `json:"approximate_line,omitempty"`
}

// Summary contains issue counts by severity
type Summary struct {
	High        int `json:"high"`
	Medium      int `json:"medium"`
	Low         int `json:"low"`
	Info        int `json:"info"`
	TotalIssues int `json:"total_issues"`
}

// Count returns the number of issues with the given severity
func (s Summary) Count(sev Severity) int {
	switch sev {
	case SeverityHigh:
		return s.High
	case SeverityMedium:
		return s.Medium
	case SeverityLow:
		return s.Low
	case SeverityInfo:
		return s.Info
	default:
		return 0
	}
}

// Report represents the complete analysis output
type Report struct {
	Language   Language  `json:"language"`
	Metrics    Metrics   `json:"metrics"`
	Issues     []Issue   `json:"issues"`
	Summary    Summary   `json:"summary"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// SuggestionType classifies a derived suggestion
type SuggestionType string

const (
	SuggestionRefactor SuggestionType = "refactor"
	SuggestionSecurity SuggestionType = "security"
)

// Suggestion is a remediation hint derived from a report
type Suggestion struct {
	Type     SuggestionType `json:"type"`
	Priority Severity       `json:"priority"`
	Message  string         `json:"message"`
	Line     int            `json:"line,omitempty"`
}

// AnalysisResult is a report as returned to callers, optionally augmented
// with suggestions and transport metadata.
type AnalysisResult struct {
	Report
	Suggestions []Suggestion `json:"suggestions,omitzero"`
	Deep        bool         `json:"deep,omitempty"`
	RequestID   string       `json:"request_id,omitempty"`
}
