package controller

import (
	"context"
	"time"

	"codetools/src/config"
	"codetools/src/model"
	"codetools/src/service/analyzer"
	"codetools/src/service/suggestion"
	"codetools/src/util"
)

// AnalysisController is the single entry point to the analysis engine for
// every transport.
type AnalysisController struct {
	cfg    *config.Config
	engine *analyzer.Engine
}

// NewAnalysisController creates a new analysis controller using the wall clock
func NewAnalysisController(cfg *config.Config) *AnalysisController {
	return NewAnalysisControllerWithEngine(cfg, analyzer.New(time.Now))
}

// NewAnalysisControllerWithEngine creates a controller around a given engine
func NewAnalysisControllerWithEngine(cfg *config.Config, engine *analyzer.Engine) *AnalysisController {
	return &AnalysisController{cfg: cfg, engine: engine}
}

// AnalyzeRequest represents a request to analyze one source text
type AnalyzeRequest struct {
	Code               string
	Language           string // empty = analysis.default_language
	Deep               bool   // adds server.deep_delay and suggestions
	IncludeSuggestions bool
}

// Analyze runs the engine and augments the report as requested.
// Deep mode waits before analysing; a cancelled context ends the wait early.
func (c *AnalysisController) Analyze(ctx context.Context, req AnalyzeRequest) (*model.AnalysisResult, error) {
	startTime := time.Now()

	lang := req.Language
	if lang == "" {
		lang = c.cfg.Analysis.DefaultLanguage
	}
	language := model.ParseLanguage(lang)

	if req.Deep && c.cfg.Server.DeepDelay > 0 {
		util.Debug("Deep analysis requested, waiting %v", c.cfg.Server.DeepDelay)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.cfg.Server.DeepDelay):
		}
	}

	report := c.engine.Analyze(model.SourceInput{Code: req.Code, Language: language})

	result := &model.AnalysisResult{Report: *report, Deep: req.Deep}
	if req.Deep || req.IncludeSuggestions {
		result.Suggestions = suggestion.Derive(report)
	}

	util.Info("Analysis complete: %d lines, complexity %d, %d issues (took %v)",
		report.Metrics.Lines, report.Metrics.Complexity, report.Summary.TotalIssues, time.Since(startTime))

	return result, nil
}
