package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codetools/src/service/detector"
)

func (h *Handler) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", h.cfg.Agent.Name, h.cfg.Agent.Version)
		},
	}
}

func (h *Handler) rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List issue rules in evaluation order",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Issue rules:")
			for _, rule := range detector.NewDefaultRunner().ListDetectors() {
				fmt.Fprintf(out, "  - %-16s: %-6s %-15s %s\n", rule.ID, rule.Severity, rule.Category, rule.Message)
			}
		},
	}
}
