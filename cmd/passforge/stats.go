package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/passforge/passforge"
	"github.com/passforge/passforge/generator"
	"github.com/passforge/passforge/pool"
)

func newStatsCmd() *cobra.Command {
	var count int
	var poolSize int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Run a sample workload and print pool statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			opts := []pool.Option{
				pool.WithMaxRetries(cfg.Pool.MaxRetries),
				pool.WithTaskTimeout(time.Duration(cfg.Pool.TaskTimeout)),
			}
			if poolSize > 0 {
				opts = append(opts, pool.WithPoolSize(poolSize))
			}

			svc, err := passforge.New(opts...)
			if err != nil {
				return err
			}
			defer svc.Terminate()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfgs := make([]generator.Config, count)
			for i := range cfgs {
				cfgs[i] = cfg.Generator
			}
			if _, err := svc.GenerateMultiple(ctx, cfgs, nil); err != nil {
				return err
			}

			snap := svc.Stats()
			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Statistic", "Value")
			table.Append("Pool size", fmt.Sprintf("%d", snap.PoolSize))
			table.Append("Tasks queued", fmt.Sprintf("%d", snap.TasksQueued))
			table.Append("Tasks completed", fmt.Sprintf("%d", snap.TasksCompleted))
			table.Append("Items generated", fmt.Sprintf("%d", snap.TotalItemsGenerated))
			table.Append("Errors", fmt.Sprintf("%d", snap.Errors))
			table.Append("Retries", fmt.Sprintf("%d", snap.Retries))
			table.Append("Avg task duration", snap.AverageTaskDuration.String())
			return table.Render()
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 100, "passwords to generate for the sample")
	cmd.Flags().IntVar(&poolSize, "pool-size", 0, "execution contexts (default GOMAXPROCS)")

	return cmd
}
