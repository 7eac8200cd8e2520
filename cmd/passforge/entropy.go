package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/passforge/passforge"
	"github.com/passforge/passforge/generator"
	"github.com/passforge/passforge/pool"
)

func newEntropyCmd() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "entropy",
		Short: "Report the theoretical strength of a configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntropy(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.typ, "type", "t", "", "password type (random, base64, memorable, pin)")
	cmd.Flags().IntVarP(&flags.length, "length", "l", 0, "password length")
	cmd.Flags().IntVarP(&flags.wordCount, "words", "w", 0, "word count for memorable passwords")
	cmd.Flags().BoolVarP(&flags.symbols, "symbols", "s", false, "include symbols")
	cmd.Flags().BoolVar(&flags.noAmbiguous, "no-ambiguous", false, "exclude ambiguous characters like Il1O0")
	cmd.Flags().BoolVar(&flags.capitalize, "capitalize", false, "capitalize words in memorable passwords")
	cmd.Flags().BoolVar(&flags.withNumber, "with-number", false, "append a number to memorable passwords")

	return cmd
}

func runEntropy(cmd *cobra.Command, flags generateFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gcfg := applyGenerateFlags(cfg.Generator, flags)

	svc, err := passforge.New(pool.WithPoolSize(1))
	if err != nil {
		return err
	}
	defer svc.Terminate()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := svc.CalculateEntropy(ctx, gcfg)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Metric", "Value")
	table.Append("Type", gcfg.Type)
	table.Append("Length", fmt.Sprintf("%d", report.Length))
	table.Append("Pool size", fmt.Sprintf("%d", report.PoolSize))
	table.Append("Entropy", fmt.Sprintf("%.1f bits", report.Bits))
	table.Append("Strength", colorStrength(report.Strength))
	table.Append("Crack time", report.CrackTimeDisplay)
	return table.Render()
}

func colorStrength(strength string) string {
	switch strength {
	case generator.StrengthVeryWeak, generator.StrengthWeak:
		return color.New(color.FgRed).Sprint(strength)
	case generator.StrengthReasonable:
		return color.New(color.FgYellow).Sprint(strength)
	default:
		return color.New(color.FgGreen).Sprint(strength)
	}
}
