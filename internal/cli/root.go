package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alovak/directplus/directplus"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type globalFlags struct {
	configPath string
	envFile    string
	test       bool
	logLevel   string
}

// NewRootCommand builds the directplus command tree.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "directplus",
		Short: "Paybox Direct Plus client",
		Long: `directplus sends Direct Plus questions (authorizations, captures, refunds,
stored card profiles) to the processor and prints the classified answer as JSON.

It can also run a local sandbox processor for development.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "YAML configuration file")
	pf.StringVar(&flags.envFile, "env-file", "", "dotenv file loaded before reading DIRECTPLUS_* variables")
	pf.BoolVar(&flags.test, "test", true, "use the pre-production platform")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error (overrides the config)")

	root.AddCommand(newPaymentCommands(flags)...)
	root.AddCommand(newProfileCommand(flags))
	root.AddCommand(newScrubCommand())
	root.AddCommand(newSandboxCommand(flags))
	root.AddCommand(newConfigCommand())

	return root
}

// load reads the configuration and applies the flags that were set explicitly.
func (f *globalFlags) load(cmd *cobra.Command) (*Config, *slog.Logger, error) {
	cfg, err := Load(f.configPath, f.envFile)
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("test") {
		cfg.Gateway.Test = f.test
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func (f *globalFlags) gateway(cmd *cobra.Command) (*directplus.Gateway, *Config, error) {
	cfg, logger, err := f.load(cmd)
	if err != nil {
		return nil, nil, err
	}
	g, err := directplus.NewGateway(logger, &cfg.Gateway, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("creating gateway: %w", err)
	}
	return g, cfg, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
