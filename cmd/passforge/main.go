package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/passforge/passforge/internal/config"
)

var (
	cfgPath string
	verbose bool
)

func main() {
	root := &cobra.Command{
		Use:   "passforge",
		Short: "Generate passwords on a bounded worker pool",
		Long: `passforge generates random, base64, memorable, and PIN passwords.
Requests run on a fixed pool of isolated execution contexts with
retries, timeouts, and order-preserving batch splitting.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to YAML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newEntropyCmd())
	root.AddCommand(newTypesCmd())
	root.AddCommand(newStatsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "passforge: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration for a command run.
func loadConfig() (config.Config, error) {
	if cfgPath == "" {
		cfg := config.Default()
		cfg.Verbose = verbose
		return cfg, nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, err
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Verbose {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}
