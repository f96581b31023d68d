package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/nodefield/config"
	"github.com/lixenwraith/nodefield/physics"
)

var version = "0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nodefield",
		Short: "Floating node network with travelling pulses",
		Long: `nodefield simulates a field of floating nodes joined by a proximity graph,
with light pulses travelling along the connections.

Configuration is layered: built-in defaults, an optional YAML file (--config),
NODEFIELD_* environment variables, then command-line flags.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("mode", "", "Floating mode: kinematic or inertial")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed, 0 seeds from the clock")
	rootCmd.PersistentFlags().String("log", "", "Write debug log to this file")

	rootCmd.AddCommand(
		newRunCmd(),
		newStatsCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nodefield version %s\n", version)
		},
	}
}

// loadConfig resolves the layered configuration and applies flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("mode") {
		name, _ := cmd.Flags().GetString("mode")
		mode, err := physics.ParseMode(name)
		if err != nil {
			return nil, err
		}
		cfg.Physics.Mode = mode
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	return cfg, nil
}
