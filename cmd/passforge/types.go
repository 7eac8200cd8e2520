package main

import (
	"context"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/passforge/passforge"
	"github.com/passforge/passforge/pool"
)

// descriptions gives each password type a one-line summary for the table.
var descriptions = map[string]string{
	"random":    "characters drawn from the configured classes",
	"base64":    "base64 text cut from random bytes",
	"memorable": "dictionary words joined by a separator",
	"pin":       "digits only",
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List supported password types",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := passforge.New(pool.WithPoolSize(1))
			if err != nil {
				return err
			}
			defer svc.Terminate()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			types, err := svc.SupportedTypes(ctx)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Type", "Description")
			for _, t := range types {
				table.Append(t, descriptions[t])
			}
			return table.Render()
		},
	}
}
