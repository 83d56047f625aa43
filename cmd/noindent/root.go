package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/noindent/internal/config"
	"github.com/dshills/noindent/internal/logging"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configFiles []string
	logLevel    string
	logFormat   string
	verbose     bool
	noEnv       bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "noindent",
		Short: "Insert newlines at every cursor without auto-indentation",
		Long: `noindent plans and applies the no-indent-newline editor commands
against a document: insert a bare newline before or after every cursor,
or split the selected text onto its own line above or below.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringArrayVarP(&opts.configFiles, "config", "c", nil, "Configuration file (TOML, YAML or JSON); may be repeated")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log format: console, json")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&opts.noEnv, "no-env", false, "Ignore "+config.EnvPrefix+" environment variables")

	cmd.AddCommand(newApplyCmd(opts))
	cmd.AddCommand(newFixtureCmd(opts))
	cmd.AddCommand(newManifestCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// load builds the configuration and logger for a subcommand. overrides
// take precedence over files and environment.
func (o *rootOptions) load(cmd *cobra.Command, overrides map[string]any) (*config.Config, *zap.Logger, error) {
	opts := []config.Option{config.WithEnv(!o.noEnv)}
	for _, path := range o.configFiles {
		opts = append(opts, config.WithFile(path))
	}

	level := o.logLevel
	if o.verbose {
		level = "debug"
	}
	if level != "" {
		opts = append(opts, config.WithOverride(config.PathLogLevel, level))
	}
	if o.logFormat != "" {
		opts = append(opts, config.WithOverride(config.PathLogFormat, o.logFormat))
	}
	for path, value := range overrides {
		opts = append(opts, config.WithOverride(path, value))
	}

	cfg := config.New(opts...)
	if err := cfg.Load(cmd.Context()); err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	lc := cfg.Logging()
	logger, err := logging.New(logging.Options{
		Level:  lc.Level,
		Format: lc.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}
	return cfg, logger, nil
}
