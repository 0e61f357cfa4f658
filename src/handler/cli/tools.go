package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"codetools/src/controller"
)

func (h *Handler) formatCmd() *cobra.Command {
	var (
		file   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "format [code]",
		Short: "Normalise whitespace and punctuation spacing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readCode(cmd, args, file)
			if err != nil {
				return err
			}

			res := controller.NewToolsController(h.cfg).Format(code)
			if asJSON {
				data, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding result: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), res.Formatted)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "F", "", "Read code from a file, or - for stdin")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result including applied rules")

	return cmd
}

func (h *Handler) validateCmd() *cobra.Command {
	var (
		language string
		file     string
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "validate [code]",
		Short: "Check source text for syntax errors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readCode(cmd, args, file)
			if err != nil {
				return err
			}

			res, err := controller.NewToolsController(h.cfg).Validate(cmd.Context(), code, h.languageFor(language, file))
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			data, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))

			if strict && !res.Valid {
				return fmt.Errorf("found %d syntax errors", len(res.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Source language (default from config)")
	cmd.Flags().StringVarP(&file, "file", "F", "", "Read code from a file, or - for stdin")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when the code has syntax errors")

	return cmd
}
