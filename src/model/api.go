package model

// AnalyzeRequest is the body of POST /analyze
type AnalyzeRequest struct {
	Code               *string `json:"code"`
	Language           string  `json:"language,omitempty"`
	Deep               bool    `json:"deep,omitempty"`
	IncludeSuggestions bool    `json:"include_suggestions,omitempty"`
}

// FormatRequest is the body of POST /format
type FormatRequest struct {
	Code *string `json:"code"`
}

// ValidateRequest is the body of POST /validate
type ValidateRequest struct {
	Code     *string `json:"code"`
	Language string  `json:"language,omitempty"`
}

// HealthResponse is the body returned by GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// CodePtr returns a pointer to s for request bodies
func CodePtr(s string) *string {
	return &s
}

// FormatResult is the output of a format run
type FormatResult struct {
	Formatted string   `json:"formatted"`
	Changed   bool     `json:"changed"`
	Applied   []string `json:"applied"`
}

// SyntaxError locates one problem found by the validator
type SyntaxError struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of a syntax validation
type ValidationResult struct {
	Valid    bool          `json:"valid"`
	Language Language      `json:"language"`
	Errors   []SyntaxError `json:"errors"`
}
