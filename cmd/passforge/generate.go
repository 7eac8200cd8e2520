package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/passforge/passforge"
	"github.com/passforge/passforge/generator"
	"github.com/passforge/passforge/internal/metrics"
	"github.com/passforge/passforge/pool"
)

type generateFlags struct {
	count       int
	typ         string
	length      int
	wordCount   int
	separator   string
	noUpper     bool
	noLower     bool
	noNumbers   bool
	symbols     bool
	noAmbiguous bool
	capitalize  bool
	withNumber  bool
	poolSize    int
	metricsAddr string
}

func newGenerateCmd() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one or more passwords",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.count, "count", "n", 1, "number of passwords to generate")
	cmd.Flags().StringVarP(&flags.typ, "type", "t", "", "password type (random, base64, memorable, pin)")
	cmd.Flags().IntVarP(&flags.length, "length", "l", 0, "password length")
	cmd.Flags().IntVarP(&flags.wordCount, "words", "w", 0, "word count for memorable passwords")
	cmd.Flags().StringVar(&flags.separator, "separator", "", "word separator for memorable passwords")
	cmd.Flags().BoolVar(&flags.noUpper, "no-uppercase", false, "exclude uppercase letters")
	cmd.Flags().BoolVar(&flags.noLower, "no-lowercase", false, "exclude lowercase letters")
	cmd.Flags().BoolVar(&flags.noNumbers, "no-numbers", false, "exclude digits")
	cmd.Flags().BoolVarP(&flags.symbols, "symbols", "s", false, "include symbols")
	cmd.Flags().BoolVar(&flags.noAmbiguous, "no-ambiguous", false, "exclude ambiguous characters like Il1O0")
	cmd.Flags().BoolVar(&flags.capitalize, "capitalize", false, "capitalize words in memorable passwords")
	cmd.Flags().BoolVar(&flags.withNumber, "with-number", false, "append a number to memorable passwords")
	cmd.Flags().IntVar(&flags.poolSize, "pool-size", 0, "execution contexts (default GOMAXPROCS)")
	cmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	return cmd
}

func runGenerate(cmd *cobra.Command, flags generateFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gcfg := applyGenerateFlags(cfg.Generator, flags)

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	opts := []pool.Option{
		pool.WithLogger(logger),
		pool.WithMaxRetries(cfg.Pool.MaxRetries),
		pool.WithTaskTimeout(time.Duration(cfg.Pool.TaskTimeout)),
	}
	size := cfg.Pool.Size
	if flags.poolSize > 0 {
		size = flags.poolSize
	}
	if size > 0 {
		opts = append(opts, pool.WithPoolSize(size))
	}

	var collector *metrics.Collector
	var svc *passforge.Service

	metricsAddr := flags.metricsAddr
	if metricsAddr == "" {
		metricsAddr = cfg.MetricsAddr
	}
	if metricsAddr != "" {
		collector = metrics.NewCollector(func() pool.StatsSnapshot { return svc.Stats() })
		opts = append(opts,
			pool.WithOnTaskEnd(collector.OnTaskEnd),
			pool.WithOnRetry(collector.OnRetry),
		)
	}

	svc, err = passforge.New(opts...)
	if err != nil {
		return err
	}
	defer svc.Terminate()

	if collector != nil {
		go func() {
			if err := collector.Serve(metricsAddr); err != nil {
				logger.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if res, err := svc.ValidateConfig(ctx, gcfg); err != nil {
		return err
	} else if !res.Valid {
		for _, msg := range res.Errors {
			color.New(color.FgRed).Fprintf(os.Stderr, "error: %s\n", msg)
		}
		return fmt.Errorf("invalid configuration")
	} else {
		for _, msg := range res.Warnings {
			color.New(color.FgYellow).Fprintf(os.Stderr, "warning: %s\n", msg)
		}
	}

	if flags.count <= 1 {
		pw, err := svc.GeneratePassword(ctx, gcfg)
		if err != nil {
			return err
		}
		fmt.Println(pw)
		return nil
	}

	cfgs := make([]generator.Config, flags.count)
	for i := range cfgs {
		cfgs[i] = gcfg
	}

	bar := progressbar.NewOptions(flags.count,
		progressbar.OptionSetDescription("generating"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowCount(),
	)

	passwords, err := svc.GenerateMultiple(ctx, cfgs, &pool.BatchOptions{
		OnProgress: func(p pool.Progress) {
			bar.Set(p.Completed)
		},
	})
	if err != nil {
		return err
	}
	bar.Finish()

	for _, pw := range passwords {
		fmt.Println(pw)
	}
	return nil
}

// applyGenerateFlags overlays command-line flags on the config defaults.
func applyGenerateFlags(gcfg generator.Config, flags generateFlags) generator.Config {
	if flags.typ != "" {
		gcfg.Type = flags.typ
	}
	if flags.length > 0 {
		gcfg.Length = flags.length
	}
	if flags.wordCount > 0 {
		gcfg.WordCount = flags.wordCount
	}
	if flags.separator != "" {
		gcfg.Separator = flags.separator
	}
	if flags.noUpper {
		gcfg.IncludeUppercase = false
	}
	if flags.noLower {
		gcfg.IncludeLowercase = false
	}
	if flags.noNumbers {
		gcfg.IncludeNumbers = false
	}
	if flags.symbols {
		gcfg.IncludeSymbols = true
	}
	if flags.noAmbiguous {
		gcfg.ExcludeAmbiguous = true
	}
	if flags.capitalize {
		gcfg.Capitalize = true
	}
	if flags.withNumber {
		gcfg.IncludeNumber = true
	}
	return gcfg
}
