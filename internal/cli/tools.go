package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alovak/directplus/directplus"
	"github.com/alovak/directplus/sandbox"
	"github.com/spf13/cobra"
)

func newScrubCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scrub",
		Short: "Mask credentials and card data in a transcript read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading transcript: %w", err)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), directplus.Scrub(string(in)))
			return err
		},
	}
}

func newSandboxCommand(global *globalFlags) *cobra.Command {
	var addr, outage string
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Run a local Direct Plus sandbox processor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := global.load(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Sandbox.HTTPAddr = addr
			}
			if outage != "" {
				cfg.Sandbox.OutageCode = outage
			}

			app := sandbox.NewApp(logger, &cfg.Sandbox, nil)
			if err := app.Start(); err != nil {
				return fmt.Errorf("starting sandbox: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.URL())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			app.Shutdown()
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&outage, "outage-code", "", "answer every question with this code")
	return cmd
}

func newConfigCommand() *cobra.Command {
	cfg := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "directplus.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cfg.AddCommand(initCmd)
	return cfg
}
