package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"codetools/src/config"
	"codetools/src/model"
	"codetools/src/util"
)

// Formats lists the supported output formats
var Formats = []string{"json", "markdown", "sarif", "text"}

// Generator generates reports in various formats
type Generator struct {
	cfg     config.OutputConfig
	version string
}

// NewGenerator creates a new report generator
func NewGenerator(cfg config.OutputConfig, version string) *Generator {
	return &Generator{cfg: cfg, version: version}
}

// Generate generates a report in the specified format
func (g *Generator) Generate(result *model.AnalysisResult, format string) (string, error) {
	util.Debug("Generating report in %s format (%d issues)", format, len(result.Issues))
	switch format {
	case "json":
		return g.generateJSON(result)
	case "markdown", "md":
		return g.generateMarkdown(result)
	case "sarif":
		return g.generateSARIF(result)
	case "text":
		return g.generateText(result), nil
	default:
		util.Warn("Unsupported report format requested: %s", format)
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (g *Generator) generateJSON(result *model.AnalysisResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (g *Generator) generateMarkdown(result *model.AnalysisResult) (string, error) {
	var sb strings.Builder
	m := result.Metrics

	// Header
	sb.WriteString("# Code Analysis Report\n\n")
	sb.WriteString(fmt.Sprintf("**Language:** %s\n", result.Language))
	sb.WriteString(fmt.Sprintf("**Analyzed:** %s\n\n", result.AnalyzedAt.Format("2006-01-02 15:04:05 UTC")))

	// Metrics
	sb.WriteString("## Metrics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Lines | %d |\n", m.Lines))
	sb.WriteString(fmt.Sprintf("| Characters | %d |\n", m.Characters))
	sb.WriteString(fmt.Sprintf("| Words | %d |\n", m.Words))
	sb.WriteString(fmt.Sprintf("| Complexity | %d (%s) |\n", m.Complexity, m.ComplexityRating))
	sb.WriteString(fmt.Sprintf("| Functions | %d |\n", m.FunctionCount))
	sb.WriteString(fmt.Sprintf("| Average line length | %d |\n\n", m.AverageLineLength))

	// By Severity
	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Total Issues:** %d\n\n", result.Summary.TotalIssues))
	sb.WriteString("| Severity | Count |\n")
	sb.WriteString("|----------|-------|\n")
	for _, sev := range model.Severities {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", sev, result.Summary.Count(sev)))
	}
	sb.WriteString("\n")

	if len(result.Issues) > 0 {
		sb.WriteString("## Issues\n\n")
		for _, issue := range result.Issues {
			line := fmt.Sprintf("%d", issue.Line)
			if issue.ApproximateLine {
				line += " (approximate)"
			}
			sb.WriteString(fmt.Sprintf("### %s `%s`\n\n", severityLabel(issue.Severity), issue.Rule))
			sb.WriteString(fmt.Sprintf("- **Line:** %s\n", line))
			sb.WriteString(fmt.Sprintf("- **Category:** %s\n", issue.Category))
			sb.WriteString(fmt.Sprintf("- **Message:** %s\n\n", issue.Message))
		}
	}

	if len(result.Suggestions) > 0 {
		sb.WriteString("## Suggestions\n\n")
		for _, s := range result.Suggestions {
			if s.Line > 0 {
				sb.WriteString(fmt.Sprintf("- **[%s]** %s (line %d)\n", s.Type, s.Message, s.Line))
			} else {
				sb.WriteString(fmt.Sprintf("- **[%s]** %s\n", s.Type, s.Message))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func (g *Generator) generateSARIF(result *model.AnalysisResult) (string, error) {
	sarif := map[string]any{
		"$schema": "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		"version": "2.1.0",
		"runs": []map[string]any{
			{
				"tool": map[string]any{
					"driver": map[string]any{
						"name":    "codetools",
						"version": g.version,
						"rules":   g.buildSARIFRules(result.Issues),
					},
				},
				"results": g.buildSARIFResults(result.Issues),
			},
		},
	}

	data, err := json.MarshalIndent(sarif, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (g *Generator) buildSARIFRules(issues []model.Issue) []map[string]any {
	ruleMap := make(map[string]bool)
	rules := make([]map[string]any, 0, len(issues))

	for _, issue := range issues {
		if ruleMap[issue.Rule] {
			continue
		}
		ruleMap[issue.Rule] = true

		rules = append(rules, map[string]any{
			"id":   issue.Rule,
			"name": issue.Rule,
			"shortDescription": map[string]any{
				"text": issue.Message,
			},
			"properties": map[string]any{
				"category": string(issue.Category),
			},
			"defaultConfiguration": map[string]any{
				"level": sarifLevel(issue.Severity),
			},
		})
	}

	return rules
}

func (g *Generator) buildSARIFResults(issues []model.Issue) []map[string]any {
	results := make([]map[string]any, 0, len(issues))

	for _, issue := range issues {
		results = append(results, map[string]any{
			"ruleId":  issue.Rule,
			"level":   sarifLevel(issue.Severity),
			"message": map[string]any{"text": issue.Message},
			"locations": []map[string]any{
				{
					"physicalLocation": map[string]any{
						"artifactLocation": map[string]any{
							"uri": "stdin",
						},
						"region": map[string]any{
							"startLine": issue.Line,
						},
					},
				},
			},
		})
	}

	return results
}

func (g *Generator) generateText(result *model.AnalysisResult) string {
	var (
		headerStyle = lipgloss.NewStyle().Bold(true)
		mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		sevStyles   = map[model.Severity]lipgloss.Style{
			model.SeverityHigh:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
			model.SeverityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
			model.SeverityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			model.SeverityInfo:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		}
	)
	render := func(style lipgloss.Style, s string) string {
		if !g.cfg.Color {
			return s
		}
		return style.Render(s)
	}

	var sb strings.Builder
	m := result.Metrics

	sb.WriteString(render(headerStyle, "CODE ANALYSIS"))
	sb.WriteString(render(mutedStyle, fmt.Sprintf("  %s", result.Language)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  lines %d  words %d  chars %d  functions %d  avg line %d\n",
		m.Lines, m.Words, m.Characters, m.FunctionCount, m.AverageLineLength))
	sb.WriteString(fmt.Sprintf("  complexity %d (%s)\n", m.Complexity, m.ComplexityRating))

	sb.WriteString("\n")
	sb.WriteString(render(headerStyle, fmt.Sprintf("ISSUES (%d)", result.Summary.TotalIssues)))
	sb.WriteString("\n")
	if len(result.Issues) == 0 {
		sb.WriteString(render(mutedStyle, "  no issues found"))
		sb.WriteString("\n")
	}
	for _, issue := range result.Issues {
		badge := fmt.Sprintf("%-6s", strings.ToUpper(string(issue.Severity)))
		loc := fmt.Sprintf("line %d", issue.Line)
		if issue.ApproximateLine {
			loc += "~"
		}
		sb.WriteString("  ")
		sb.WriteString(render(sevStyles[issue.Severity], badge))
		sb.WriteString(" ")
		sb.WriteString(render(mutedStyle, fmt.Sprintf("%-8s", loc)))
		sb.WriteString(fmt.Sprintf(" %s ", issue.Message))
		sb.WriteString(render(mutedStyle, "["+issue.Rule+"]"))
		sb.WriteString("\n")
	}

	if len(result.Suggestions) > 0 {
		sb.WriteString("\n")
		sb.WriteString(render(headerStyle, "SUGGESTIONS"))
		sb.WriteString("\n")
		for _, s := range result.Suggestions {
			sb.WriteString(fmt.Sprintf("  - %s\n", s.Message))
		}
	}

	return sb.String()
}

func severityLabel(s model.Severity) string {
	switch s {
	case model.SeverityHigh:
		return "[HIGH]"
	case model.SeverityMedium:
		return "[MEDIUM]"
	case model.SeverityLow:
		return "[LOW]"
	default:
		return "[INFO]"
	}
}

func sarifLevel(s model.Severity) string {
	switch s {
	case model.SeverityHigh:
		return "error"
	case model.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}
