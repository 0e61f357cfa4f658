package controller

import (
	"context"

	"codetools/src/config"
	"codetools/src/model"
	"codetools/src/service/formatter"
	"codetools/src/service/validator"
	"codetools/src/util"
)

// ToolsController exposes the formatter and the syntax validator
type ToolsController struct {
	cfg       *config.Config
	formatter *formatter.Formatter
}

// NewToolsController creates a new tools controller
func NewToolsController(cfg *config.Config) *ToolsController {
	return &ToolsController{cfg: cfg, formatter: formatter.New()}
}

// Format normalises code
func (c *ToolsController) Format(code string) model.FormatResult {
	res := c.formatter.Format(code)
	util.Debug("Format applied %d rules (changed: %v)", len(res.Applied), res.Changed)
	return res
}

// Validate checks code for syntax errors
func (c *ToolsController) Validate(ctx context.Context, code, language string) (*model.ValidationResult, error) {
	if language == "" {
		language = c.cfg.Analysis.DefaultLanguage
	}
	res, err := validator.Validate(ctx, code, model.ParseLanguage(language))
	if err != nil {
		util.Warn("Validation failed: %v", err)
		return nil, err
	}
	util.Debug("Validation finished: valid=%v errors=%d", res.Valid, len(res.Errors))
	return res, nil
}
