package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"codetools/src/controller"
	"codetools/src/model"
	"codetools/src/service/apiclient"
	"codetools/src/util"
)

func (h *Handler) analyzeCmd() *cobra.Command {
	var (
		language    string
		file        string
		outputFile  string
		format      string
		remote      string
		suggestions bool
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "analyze [code]",
		Short: "Analyze source text for metrics and issues",
		Long:  "Computes metrics and runs every issue rule against the given code, a file, or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readCode(cmd, args, file)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			req := controller.AnalyzeRequest{
				Code:               code,
				Language:           h.languageFor(language, file),
				IncludeSuggestions: suggestions || h.cfg.Analysis.IncludeSuggestions,
			}

			var result *model.AnalysisResult
			if remote != "" {
				result, err = h.analyzeRemote(ctx, remote, req)
			} else {
				result, err = h.analyzeLocal(ctx, req)
			}
			if err != nil {
				util.Error("Analysis failed: %v", err)
				return fmt.Errorf("analysis failed: %w", err)
			}

			outputFormat := format
			if outputFormat == "" {
				outputFormat = h.cfg.Output.Format
			}

			reportCtrl := controller.NewReportController(h.cfg)
			if outputFile != "" {
				if err := reportCtrl.WriteReport(result, outputFormat, outputFile); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outputFile)
			} else {
				output, err := reportCtrl.GenerateToString(result, outputFormat)
				if err != nil {
					return fmt.Errorf("generating report: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), output)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "\nAnalysis complete:\n")
			fmt.Fprintf(cmd.ErrOrStderr(), "  Complexity: %d (%s)\n", result.Metrics.Complexity, result.Metrics.ComplexityRating)
			fmt.Fprintf(cmd.ErrOrStderr(), "  Total issues: %d\n", result.Summary.TotalIssues)

			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Source language (default from config)")
	cmd.Flags().StringVarP(&file, "file", "F", "", "Read code from a file, or - for stdin")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (json, markdown, sarif, text)")
	cmd.Flags().StringVar(&remote, "remote", "", "Analyze through a codetools server at this URL")
	cmd.Flags().BoolVar(&suggestions, "suggestions", false, "Include improvement suggestions")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", time.Minute, "Analysis timeout")

	return cmd
}

// analyzeLocal runs the engine in-process. A panic surfaces as *model.InternalFault.
func (h *Handler) analyzeLocal(ctx context.Context, req controller.AnalyzeRequest) (result *model.AnalysisResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result, err = nil, &model.InternalFault{Op: "analyze", Cause: rec}
		}
	}()
	return controller.NewAnalysisController(h.cfg).Analyze(ctx, req)
}

func (h *Handler) analyzeRemote(ctx context.Context, url string, req controller.AnalyzeRequest) (*model.AnalysisResult, error) {
	clientCfg := h.cfg.Client
	clientCfg.URL = url
	util.Debug("Sending analysis to %s", url)

	return apiclient.NewClient(clientCfg).Analyze(ctx, model.AnalyzeRequest{
		Code:               model.CodePtr(req.Code),
		Language:           req.Language,
		IncludeSuggestions: req.IncludeSuggestions,
	})
}
