package cmd

import (
	"context"
	"time"

	"cosmossdk.io/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/provability/provability/x/bounty/client/cli"
)

type loggerKey struct{}

// NewRootCmd creates the provd root command. It is called once in main.
func NewRootCmd() *cobra.Command {
	var stopMetrics func()

	rootCmd := &cobra.Command{
		Use:   "provd",
		Short: "Provability bounty tooling",
		Long: `provd runs the off-ledger side of provability bounties: committing to
datasets, running and auditing the split kernel, and managing attestation keys.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := cfg.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			logger = logger.With("cmd", cmd.CommandPath(), "run", uuid.NewString())

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, loggerKey{}, logger))

			if cfg.MetricsPort > 0 {
				server := StartPrometheusServer(cfg.MetricsPort, logger)
				stopMetrics = func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = server.Shutdown(shutdownCtx)
				}
			}
			logger.Debug("config loaded", "home", cfg.Home, "metrics_port", cfg.MetricsPort)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if stopMetrics != nil {
				stopMetrics()
			}
		},
	}

	rootCmd.PersistentFlags().String(FlagHome, DefaultNodeHome, "Directory holding provd.toml")
	rootCmd.PersistentFlags().String(FlagLogLevel, "info", "Log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String(FlagLogFormat, "plain", "Log format (plain|json)")
	rootCmd.PersistentFlags().Int(FlagMetricsPort, 0, "Serve Go runtime and process metrics on this port while the command runs (0 disables). Ledger metrics are exported by the node hosting the bounty module, not by provd")

	rootCmd.AddCommand(
		cli.GetKernelCmd(),
		cli.GetAttestCmd(),
		GenesisCmd(),
	)

	return rootCmd
}

// Logger returns the logger installed by the root command, or a no-op logger
// when cmd did not run under it.
func Logger(cmd *cobra.Command) log.Logger {
	if ctx := cmd.Context(); ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(log.Logger); ok {
			return logger
		}
	}
	return log.NewNopLogger()
}
