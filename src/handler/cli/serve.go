package cli

import (
	"github.com/spf13/cobra"

	"codetools/src/handler/api"
)

func (h *Handler) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				h.cfg.Server.Addr = addr
			}
			return api.NewServer(h.cfg).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}
