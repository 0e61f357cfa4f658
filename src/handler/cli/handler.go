package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"codetools/src/config"
	"codetools/src/model"
	"codetools/src/util"
)

// Handler handles CLI commands
type Handler struct {
	cfg        *config.Config
	configPath string
	rootCmd    *cobra.Command
}

// New creates a new CLI handler
func New() *Handler {
	h := &Handler{}
	h.setupCommands()
	return h
}

func (h *Handler) setupCommands() {
	h.rootCmd = &cobra.Command{
		Use:           "codetools",
		Short:         "Static analysis, formatting and validation for source code",
		Long:          "Computes metrics and rule-based issues for source text, locally or through a codetools server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return h.loadConfig()
		},
	}

	// Global flags
	h.rootCmd.PersistentFlags().StringVarP(&h.configPath, "config", "c", "",
		"Path to configuration file")

	h.rootCmd.AddCommand(h.analyzeCmd())
	h.rootCmd.AddCommand(h.formatCmd())
	h.rootCmd.AddCommand(h.validateCmd())
	h.rootCmd.AddCommand(h.serveCmd())
	h.rootCmd.AddCommand(h.rulesCmd())
	h.rootCmd.AddCommand(h.versionCmd())
}

func (h *Handler) loadConfig() error {
	loader := config.NewLoader()
	cfg, err := loader.Load(h.configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	h.cfg = cfg

	util.SetDefaultLogger(cfg.Logging)
	util.Debug("Configuration loaded successfully")
	util.Debug("Log level set to: %s", cfg.Logging.Level)

	return nil
}

// readCode resolves the source text from --file, stdin or the first argument.
// Absence of all three is ErrInputMissing; an empty string is valid code.
func readCode(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case file == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", file, err)
		}
		return string(data), nil
	case len(args) > 0:
		return args[0], nil
	default:
		return "", model.ErrInputMissing
	}
}

// languageFor prefers an explicit flag, then the file extension, then config
func (h *Handler) languageFor(flag, file string) string {
	if flag != "" {
		return flag
	}
	switch {
	case strings.HasSuffix(file, ".js"), strings.HasSuffix(file, ".mjs"), strings.HasSuffix(file, ".cjs"):
		return string(model.LanguageJavaScript)
	}
	return h.cfg.Analysis.DefaultLanguage
}

// Execute runs the CLI
func (h *Handler) Execute() error {
	return h.ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI with a parent context
func (h *Handler) ExecuteContext(ctx context.Context) error {
	return h.rootCmd.ExecuteContext(ctx)
}

// Run is the main entry point
func Run() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := New()
	if err := handler.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
