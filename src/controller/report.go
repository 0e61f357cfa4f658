package controller

import (
	"os"
	"path/filepath"

	"codetools/src/config"
	"codetools/src/model"
	"codetools/src/service/report"
	"codetools/src/util"
)

// ReportController handles report generation
type ReportController struct {
	cfg *config.Config
}

// NewReportController creates a new report controller
func NewReportController(cfg *config.Config) *ReportController {
	return &ReportController{cfg: cfg}
}

// GenerateToString generates a report to a string
func (c *ReportController) GenerateToString(result *model.AnalysisResult, format string) (string, error) {
	reportGenerator := report.NewGenerator(c.cfg.Output, c.cfg.Agent.Version)
	return reportGenerator.Generate(result, format)
}

// WriteReport renders a report and writes it to path, creating parent directories
func (c *ReportController) WriteReport(result *model.AnalysisResult, format, path string) error {
	output, err := c.GenerateToString(result, format)
	if err != nil {
		util.Error("Failed to generate %s report: %v", format, err)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		util.Error("Failed to create output directory: %v", err)
		return err
	}

	if err := os.WriteFile(path, []byte(output+"\n"), 0644); err != nil {
		util.Error("Failed to write report to %s: %v", path, err)
		return err
	}

	util.Info("Report written: %s", path)
	return nil
}
