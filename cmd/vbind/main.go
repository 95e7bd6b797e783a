package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vbind/internal/config"
	"github.com/vango-dev/vbind/internal/errors"
	"github.com/vango-dev/vbind/internal/source"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configDir string
	logLevel  string
	logFormat string
	noColor   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "vbind",
		Short: "Bind HTML templates to data",
		Long: `vbind compiles HTML templates against a data file.

Text interpolations ({{ user.name }}) and the v-text, v-html, v-model
and v-on directives are resolved once against the data, and the
result is written as HTML. Templates and data can come from files,
stdin ("-") or S3 (s3://bucket/key).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.configDir, "config", "c", ".", "Directory holding vbind.json or vbind.yaml")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "Disable colored error output")

	rootCmd.AddCommand(
		compileCmd(g),
		serveCmd(g),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig reads the project config and applies the global overrides.
func (g *globalFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(g.configDir)
	if err != nil {
		return nil, err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.logFormat != "" {
		cfg.Log.Format = g.logFormat
	}
	return cfg, nil
}

// newLogger builds the slog logger described by cfg. Logs go to w so that
// compiled output on stdout stays clean.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	if strings.EqualFold(cfg.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// newLoader returns a source loader. An S3 client is only created when one
// of the locations needs it.
func newLoader(stdin io.Reader, logger *slog.Logger, locations ...string) *source.Loader {
	opts := []source.Option{
		source.WithStdin(stdin),
		source.WithLogger(logger),
	}
	for _, l := range locations {
		if strings.HasPrefix(l, "s3://") {
			opts = append(opts, source.WithS3(source.NewS3Client(source.S3ConfigFromEnv())))
			break
		}
	}
	return source.NewLoader(opts...)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
