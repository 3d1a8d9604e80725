package commands

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"proxylens/internal/app"
)

var (
	configPath string
	directory  string
	scheme     string
	timeout    time.Duration
	logLevel   string

	wire *app.Wire
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRoot().ExecuteContext(ctx)
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "proxylens",
		Short:        "Hand a web login over to a paired device through a rendezvous channel",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("directory") {
				cfg.Directory = directory
			}
			if flags.Changed("scheme") {
				cfg.Scheme = scheme
			}
			if flags.Changed("timeout") {
				cfg.Timeout = timeout
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("qr-png") {
				cfg.QRPNG = qrPNG
			}

			logger, err := app.NewLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			wire, err = app.NewWire(cfg, logger)
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.StringVar(&directory, "directory", "", "rendezvous directory domain (default rendezvous.mypico.org)")
	pf.StringVar(&scheme, "scheme", "", "directory URL scheme: https, or http for a local dev server")
	pf.DurationVar(&timeout, "timeout", 0, "per-request rendezvous timeout (default 30s)")
	pf.StringVar(&logLevel, "log-level", "", "debug|info|warn|error")

	root.AddCommand(pairCmd(), commitCmd(), codeCmd())
	return root
}
